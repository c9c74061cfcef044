package enum

import (
	"database/sql/driver"
)

// TariffTier selects which base price column applies to a client
type TariffTier string

const (
	TariffTierT1 TariffTier = "T1"
	TariffTierT2 TariffTier = "T2"
)

func (t TariffTier) String() string {
	return string(t)
}

// IsValid reports whether t is a known tariff tier
func (t TariffTier) IsValid() bool {
	return t == TariffTierT1 || t == TariffTierT2
}

func (t TariffTier) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TariffTier) Scan(value interface{}) error {
	if value == nil {
		*t = TariffTierT1
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = TariffTier(v)
	case []byte:
		*t = TariffTier(string(v))
	}
	return nil
}

// PriceChangeType records what kind of operation produced a price history row
type PriceChangeType string

const (
	PriceChangeTypeManual     PriceChangeType = "MANUAL"
	PriceChangeTypeBulkUpdate PriceChangeType = "BULK_UPDATE"
)

func (t PriceChangeType) String() string {
	return string(t)
}

func (t PriceChangeType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PriceChangeType) Scan(value interface{}) error {
	if value == nil {
		*t = PriceChangeTypeManual
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PriceChangeType(v)
	case []byte:
		*t = PriceChangeType(string(v))
	}
	return nil
}

// BulkPriceAction represents the operation applied by a bulk price update
type BulkPriceAction string

const (
	BulkPriceActionIncrease BulkPriceAction = "increase"
	BulkPriceActionDecrease BulkPriceAction = "decrease"
	BulkPriceActionSet      BulkPriceAction = "set"
)

// IsValid reports whether a is a known bulk action
func (a BulkPriceAction) IsValid() bool {
	return a == BulkPriceActionIncrease || a == BulkPriceActionDecrease || a == BulkPriceActionSet
}

// BulkValueType represents how the bulk update value is interpreted
type BulkValueType string

const (
	BulkValueTypePercent  BulkValueType = "percent"
	BulkValueTypeAbsolute BulkValueType = "absolute"
)

// IsValid reports whether v is a known value type
func (v BulkValueType) IsValid() bool {
	return v == BulkValueTypePercent || v == BulkValueTypeAbsolute
}

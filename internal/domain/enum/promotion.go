package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PromotionType represents how a promotion discount is computed
type PromotionType string

const (
	PromotionTypePercentage   PromotionType = "PERCENTAGE"
	PromotionTypeFixedAmount  PromotionType = "FIXED_AMOUNT"
	PromotionTypeFreeShipping PromotionType = "FREE_SHIPPING"
)

func (t PromotionType) String() string {
	return string(t)
}

// IsValid reports whether t is a known promotion type
func (t PromotionType) IsValid() bool {
	switch t {
	case PromotionTypePercentage, PromotionTypeFixedAmount, PromotionTypeFreeShipping:
		return true
	}
	return false
}

func (t PromotionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PromotionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PromotionType(str)
	return nil
}

func (t PromotionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PromotionType) Scan(value interface{}) error {
	if value == nil {
		*t = PromotionTypePercentage
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PromotionType(v)
	case []byte:
		*t = PromotionType(string(v))
	}
	return nil
}

// PromotionScope represents what part of an order a promotion applies to
type PromotionScope string

const (
	PromotionScopeEntireOrder      PromotionScope = "ENTIRE_ORDER"
	PromotionScopeSpecificProducts PromotionScope = "SPECIFIC_PRODUCTS"
	PromotionScopeCategory         PromotionScope = "CATEGORY"
)

func (s PromotionScope) String() string {
	return string(s)
}

// IsValid reports whether s is a known promotion scope
func (s PromotionScope) IsValid() bool {
	switch s {
	case PromotionScopeEntireOrder, PromotionScopeSpecificProducts, PromotionScopeCategory:
		return true
	}
	return false
}

func (s PromotionScope) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PromotionScope) Scan(value interface{}) error {
	if value == nil {
		*s = PromotionScopeEntireOrder
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PromotionScope(v)
	case []byte:
		*s = PromotionScope(string(v))
	}
	return nil
}

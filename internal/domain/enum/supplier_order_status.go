package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SupplierOrderStatus represents the state of a purchase order sent to a supplier
type SupplierOrderStatus int

const (
	SupplierOrderStatusDraft     SupplierOrderStatus = 0
	SupplierOrderStatusOrdered   SupplierOrderStatus = 1
	SupplierOrderStatusReceived  SupplierOrderStatus = 2
	SupplierOrderStatusCancelled SupplierOrderStatus = 3
)

func (s SupplierOrderStatus) String() string {
	return [...]string{"DRAFT", "ORDERED", "RECEIVED", "CANCELLED"}[s]
}

func (s SupplierOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SupplierOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SupplierOrderStatus(i)
		return nil
	}
	switch str {
	case "DRAFT":
		*s = SupplierOrderStatusDraft
	case "ORDERED":
		*s = SupplierOrderStatusOrdered
	case "RECEIVED":
		*s = SupplierOrderStatusReceived
	case "CANCELLED":
		*s = SupplierOrderStatusCancelled
	}
	return nil
}

func (s SupplierOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SupplierOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SupplierOrderStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SupplierOrderStatus(v)
	case int:
		*s = SupplierOrderStatus(v)
	}
	return nil
}

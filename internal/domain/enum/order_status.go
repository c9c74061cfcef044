package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusPreparing  OrderStatus = 1
	OrderStatusDelivering OrderStatus = 2
	OrderStatusDelivered  OrderStatus = 3
	OrderStatusCancelled  OrderStatus = 4
)

func (s OrderStatus) String() string {
	return [...]string{"PENDING", "PREPARING", "DELIVERING", "DELIVERED", "CANCELLED"}[s]
}

// CanTransitionTo reports whether the transition s -> target is allowed.
// Orders move forward through the pipeline; cancellation is possible until
// delivery starts.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPreparing || target == OrderStatusCancelled
	case OrderStatusPreparing:
		return target == OrderStatusDelivering || target == OrderStatusCancelled
	case OrderStatusDelivering:
		return target == OrderStatusDelivered
	default:
		return false
	}
}

// ParseOrderStatus maps a status name to its value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch strings.ToUpper(s) {
	case "PENDING":
		return OrderStatusPending, true
	case "PREPARING":
		return OrderStatusPreparing, true
	case "DELIVERING":
		return OrderStatusDelivering, true
	case "DELIVERED":
		return OrderStatusDelivered, true
	case "CANCELLED":
		return OrderStatusCancelled, true
	default:
		return OrderStatusPending, false
	}
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "PENDING":
		*s = OrderStatusPending
	case "PREPARING":
		*s = OrderStatusPreparing
	case "DELIVERING":
		*s = OrderStatusDelivering
	case "DELIVERED":
		*s = OrderStatusDelivered
	case "CANCELLED":
		*s = OrderStatusCancelled
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}

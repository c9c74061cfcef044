package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// ReturnStatus represents the adjudication state of a merchandise return
type ReturnStatus int

const (
	ReturnStatusPending  ReturnStatus = 0
	ReturnStatusApproved ReturnStatus = 1
	ReturnStatusRejected ReturnStatus = 2
)

func (s ReturnStatus) String() string {
	return [...]string{"PENDING", "APPROVED", "REJECTED"}[s]
}

// ParseReturnStatus maps a status name to its value.
func ParseReturnStatus(s string) (ReturnStatus, bool) {
	switch strings.ToUpper(s) {
	case "PENDING":
		return ReturnStatusPending, true
	case "APPROVED":
		return ReturnStatusApproved, true
	case "REJECTED":
		return ReturnStatusRejected, true
	default:
		return ReturnStatusPending, false
	}
}

func (s ReturnStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReturnStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReturnStatus(i)
		return nil
	}
	switch str {
	case "PENDING":
		*s = ReturnStatusPending
	case "APPROVED":
		*s = ReturnStatusApproved
	case "REJECTED":
		*s = ReturnStatusRejected
	}
	return nil
}

func (s ReturnStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReturnStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReturnStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReturnStatus(v)
	case int:
		*s = ReturnStatus(v)
	}
	return nil
}

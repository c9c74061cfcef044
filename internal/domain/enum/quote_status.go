package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus int

const (
	QuoteStatusDraft     QuoteStatus = 0
	QuoteStatusSent      QuoteStatus = 1
	QuoteStatusAccepted  QuoteStatus = 2
	QuoteStatusRejected  QuoteStatus = 3
	QuoteStatusExpired   QuoteStatus = 4
	QuoteStatusConverted QuoteStatus = 5
)

func (s QuoteStatus) String() string {
	return [...]string{"DRAFT", "SENT", "ACCEPTED", "REJECTED", "EXPIRED", "CONVERTED"}[s]
}

// IsTerminal reports whether no further transition is allowed from this state
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusRejected || s == QuoteStatusExpired || s == QuoteStatusConverted
}

// CanTransitionTo reports whether the transition s -> target is allowed
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft:
		return target == QuoteStatusSent
	case QuoteStatusSent:
		return target == QuoteStatusAccepted || target == QuoteStatusRejected || target == QuoteStatusExpired
	case QuoteStatusAccepted:
		return target == QuoteStatusConverted
	default:
		return false
	}
}

// ParseQuoteStatus maps a status name to its value.
func ParseQuoteStatus(s string) (QuoteStatus, bool) {
	switch strings.ToUpper(s) {
	case "DRAFT":
		return QuoteStatusDraft, true
	case "SENT":
		return QuoteStatusSent, true
	case "ACCEPTED":
		return QuoteStatusAccepted, true
	case "REJECTED":
		return QuoteStatusRejected, true
	case "EXPIRED":
		return QuoteStatusExpired, true
	case "CONVERTED":
		return QuoteStatusConverted, true
	default:
		return QuoteStatusDraft, false
	}
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "DRAFT":
		*s = QuoteStatusDraft
	case "SENT":
		*s = QuoteStatusSent
	case "ACCEPTED":
		*s = QuoteStatusAccepted
	case "REJECTED":
		*s = QuoteStatusRejected
	case "EXPIRED":
		*s = QuoteStatusExpired
	case "CONVERTED":
		*s = QuoteStatusConverted
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}

package reference

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxAttempts bounds the collision retry loop. Uniqueness is ultimately
// guaranteed by the unique constraint on the number column; the retry only
// smooths over the occasional collision.
const MaxAttempts = 5

// Document number prefixes
const (
	QuotePrefix         = "QUO"
	OrderPrefix         = "ORD"
	ReturnPrefix        = "RET"
	CreditNotePrefix    = "AVR"
	SupplierOrderPrefix = "PO"
)

// New returns a document number of the form PREFIX-YYYYMM-NNNN with a
// random four-digit suffix.
func New(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, now.Format("200601"), rand.IntN(10000))
}

// NewExtended returns a number with an eight-character suffix, used as a
// fallback once New has collided MaxAttempts times in a row.
func NewExtended(prefix string, now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("200601"), suffix)
}

// CreateWithRetry feeds freshly generated numbers to create until one
// sticks. After MaxAttempts failures in a row it tries once more with the
// extended format; if that fails too, the last short-format error wins.
func CreateWithRetry(prefix string, now time.Time, create func(number string) error) error {
	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if err := create(New(prefix, now)); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if err := create(NewExtended(prefix, now)); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

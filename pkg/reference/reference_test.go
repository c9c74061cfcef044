package reference

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	number := New(QuotePrefix, now)
	assert.Regexp(t, regexp.MustCompile(`^QUO-202603-\d{4}$`), number)

	assert.True(t, strings.HasPrefix(New(OrderPrefix, now), "ORD-202603-"))
	assert.True(t, strings.HasPrefix(New(CreditNotePrefix, now), "AVR-202603-"))
	assert.True(t, strings.HasPrefix(New(SupplierOrderPrefix, now), "PO-202603-"))
}

func TestNewExtended(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	number := NewExtended(ReturnPrefix, now)
	assert.Regexp(t, regexp.MustCompile(`^RET-202603-[0-9A-F]{8}$`), number)

	// extended numbers must not collide in practice
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewExtended(ReturnPrefix, now)
		assert.False(t, seen[n])
		seen[n] = true
	}
}

func TestCreateWithRetry(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	short := regexp.MustCompile(`^ORD-202603-\d{4}$`)
	extended := regexp.MustCompile(`^ORD-202603-[0-9A-F]{8}$`)

	t.Run("first attempt succeeds", func(t *testing.T) {
		var numbers []string
		err := CreateWithRetry(OrderPrefix, now, func(number string) error {
			numbers = append(numbers, number)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, numbers, 1)
		assert.Regexp(t, short, numbers[0])
	})

	t.Run("fresh number on every attempt", func(t *testing.T) {
		var numbers []string
		err := CreateWithRetry(OrderPrefix, now, func(number string) error {
			numbers = append(numbers, number)
			if len(numbers) < 3 {
				return errors.New("UNIQUE constraint failed")
			}
			return nil
		})
		require.NoError(t, err)
		require.Len(t, numbers, 3)
		for _, n := range numbers {
			assert.Regexp(t, short, n)
		}
		assert.NotEqual(t, numbers[0], numbers[1])
	})

	t.Run("falls back to the extended format", func(t *testing.T) {
		var numbers []string
		err := CreateWithRetry(OrderPrefix, now, func(number string) error {
			numbers = append(numbers, number)
			if len(numbers) <= MaxAttempts {
				return errors.New("UNIQUE constraint failed")
			}
			return nil
		})
		require.NoError(t, err)
		require.Len(t, numbers, MaxAttempts+1)
		for _, n := range numbers[:MaxAttempts] {
			assert.Regexp(t, short, n)
		}
		assert.Regexp(t, extended, numbers[MaxAttempts])
	})

	t.Run("reports the last short-format error when everything fails", func(t *testing.T) {
		lastErr := errors.New("connection lost")
		attempts := 0
		err := CreateWithRetry(OrderPrefix, now, func(string) error {
			attempts++
			if attempts == MaxAttempts {
				return lastErr
			}
			return errors.New("UNIQUE constraint failed")
		})
		require.Error(t, err)
		assert.Equal(t, MaxAttempts+1, attempts)
		assert.ErrorIs(t, err, lastErr)
	})
}

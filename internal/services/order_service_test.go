package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tanksmart/internal/models"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, time.August, 29, 15, 4, 5, 0, time.UTC)
	pattern := regexp.MustCompile(`^TS-20260829-\d{4}$`)

	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber(now)
		require.Regexp(t, pattern, number)

		suffix := number[len(number)-4:]
		assert.GreaterOrEqual(t, suffix, "1000")
		assert.LessOrEqual(t, suffix, "9999")
	}
}

func TestApplyStatusChange(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	t.Run("delivered stamps payment received once", func(t *testing.T) {
		order := &models.Order{Status: models.StatusScheduled}

		ApplyStatusChange(order, models.StatusDelivered, now)
		require.NotNil(t, order.PaymentReceivedAt)
		assert.Equal(t, now, *order.PaymentReceivedAt)

		later := now.Add(48 * time.Hour)
		ApplyStatusChange(order, models.StatusDelivered, later)
		assert.Equal(t, now, *order.PaymentReceivedAt, "repeat transition must not overwrite the stamp")
	})

	t.Run("other transitions carry no side effect", func(t *testing.T) {
		order := &models.Order{Status: models.StatusPending}

		for _, status := range []string{models.StatusConfirmed, models.StatusScheduled, models.StatusCancelled, models.StatusPending} {
			ApplyStatusChange(order, status, now)
			assert.Equal(t, status, order.Status)
			assert.Nil(t, order.PaymentReceivedAt)
		}
	})

	t.Run("any status may follow any other", func(t *testing.T) {
		order := &models.Order{Status: models.StatusDelivered}
		stamp := now
		order.PaymentReceivedAt = &stamp

		ApplyStatusChange(order, models.StatusPending, now.Add(time.Hour))
		assert.Equal(t, models.StatusPending, order.Status)
		// Going backwards keeps the existing stamp.
		assert.Equal(t, now, *order.PaymentReceivedAt)
	})
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{"pending", "confirmed", "scheduled", "delivered", "cancelled"} {
		assert.True(t, models.ValidStatus(status))
	}
	assert.False(t, models.ValidStatus("shipped"))
	assert.False(t, models.ValidStatus(""))
}

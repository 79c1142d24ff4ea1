package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/tanksmart/internal/models"
)

func TestMapSMSStatus(t *testing.T) {
	tests := []struct {
		gateway string
		want    string
	}{
		{"DELIVERED", models.CommStatusDelivered},
		{"TRANSMITTED", models.CommStatusTransmitted},
		{"ACCEPTED", models.CommStatusTransmitted},
		{"BUFFERED", models.CommStatusTransmitted},
		{"NOTDELIVERED", models.CommStatusNotDelivered},
		{"EXPIRED", models.CommStatusNotDelivered},
		{"FAILED", models.CommStatusNotDelivered},
		{"REJECTED", models.CommStatusNotDelivered},
		{"UNKNOWN", models.CommStatusSent},
		{"SOMETHING-NEW", models.CommStatusSent},
		{"", models.CommStatusSent},
	}

	for _, tc := range tests {
		assert.Equalf(t, tc.want, MapSMSStatus(tc.gateway), "gateway status %q", tc.gateway)
	}
}

func TestShortTimeSlot(t *testing.T) {
	assert.Equal(t, "Vormittag", shortTimeSlot("morning"))
	assert.Equal(t, "Nachmittag", shortTimeSlot("afternoon"))
	assert.Equal(t, "Flexibel", shortTimeSlot("flexible"))
	assert.Equal(t, "other", shortTimeSlot("other"))
}

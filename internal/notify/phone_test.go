package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"national with leading zero", "0170 1234567", "+491701234567"},
		{"already international", "+49 170 1234567", "+491701234567"},
		{"double zero prefix", "0049 170 1234567", "+491701234567"},
		{"bare number", "170/1234567", "+491701234567"},
		{"with separators", "0170-123.45-67", "+491701234567"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePhone(tc.raw, "+49"))
		})
	}
}

package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		oilType       OilType
		multiplier    float64
		marketPrice   float64
		wantPerLiter  float64
		wantTotal     float64
	}{
		{
			name:         "standard without discount",
			quantity:     2000,
			oilType:      OilStandard,
			multiplier:   1.0,
			marketPrice:  0.89,
			wantPerLiter: 0.890,
			wantTotal:    1780.00,
		},
		{
			name:         "bio with large volume discount",
			quantity:     5000,
			oilType:      OilBio,
			multiplier:   1.05,
			marketPrice:  0.89,
			// 0.89 + 0.04 - 0.02 = 0.91, * 1.05 = 0.9555 -> rounds half up
			wantPerLiter: 0.956,
			wantTotal:    4780.00,
		},
		{
			name:         "premium with mid volume discount",
			quantity:     3000,
			oilType:      OilPremium,
			multiplier:   1.02,
			marketPrice:  0.89,
			// 0.89 + 0.02 - 0.01 = 0.90, * 1.02 = 0.918
			wantPerLiter: 0.918,
			wantTotal:    2754.00,
		},
		{
			name:         "discount threshold not reached",
			quantity:     2999,
			oilType:      OilStandard,
			multiplier:   1.0,
			marketPrice:  0.90,
			wantPerLiter: 0.900,
			wantTotal:    2699.10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			perLiter, total := ComputePrice(tc.quantity, tc.oilType, tc.multiplier, tc.marketPrice)
			assert.InDelta(t, tc.wantPerLiter, perLiter, 1e-9)
			assert.InDelta(t, tc.wantTotal, total, 1e-9)
		})
	}
}

func TestComputePriceTotalConsistency(t *testing.T) {
	for _, quantity := range []int{MinQuantity, 1500, 3000, 4999, 5000, MaxQuantity} {
		for _, oilType := range []OilType{OilStandard, OilPremium, OilBio} {
			perLiter, total := ComputePrice(quantity, oilType, 1.07, 0.89)

			expected := math.Round(perLiter*float64(quantity)*100) / 100
			assert.InDeltaf(t, expected, total, 1e-9, "quantity=%d oilType=%s", quantity, oilType)

			// Deterministic: same inputs, same outputs.
			perLiter2, total2 := ComputePrice(quantity, oilType, 1.07, 0.89)
			assert.Equal(t, perLiter, perLiter2)
			assert.Equal(t, total, total2)
		}
	}
}

func TestDefaultProviders(t *testing.T) {
	roster := DefaultProviders()
	require.Len(t, roster, 6)

	cheapest := roster[0]
	assert.Equal(t, "hoyer", cheapest.ID)
	assert.Equal(t, 1.0, cheapest.PriceMultiplier)

	for _, p := range roster {
		assert.NotEmpty(t, p.Name)
		assert.GreaterOrEqual(t, p.PriceMultiplier, 1.0)
	}

	_, ok := FindProvider(roster, "esso")
	assert.True(t, ok)
	_, ok = FindProvider(roster, "unknown")
	assert.False(t, ok)
}

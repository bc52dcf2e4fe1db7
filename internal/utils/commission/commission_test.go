package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	rate := DefaultOutOfCityBonusRate

	tests := []struct {
		name          string
		baseFee       string
		deliveryCity  string
		agentHomeCity string
		wantBonus     string
		wantTotal     string
	}{
		{"local delivery has no bonus", "100", "Pune", "Pune", "0", "100"},
		{"out of city earns 20 percent", "100", "Pune", "Mumbai", "20", "120"},
		{"city match is case insensitive", "50", "pune", "PUNE", "0", "50"},
		{"city match trims whitespace", "50", "  Pune ", "Pune", "0", "50"},
		{"missing delivery city applies bonus", "80", "", "Mumbai", "16", "96"},
		{"missing home city applies bonus", "80", "Mumbai", "", "16", "96"},
		{"both cities missing applies bonus", "80", "", "", "16", "96"},
		{"zero base fee", "0", "Pune", "Mumbai", "0", "0"},
		{"bonus rounds to two places", "33.33", "Pune", "Nashik", "6.67", "40.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(decimal.RequireFromString(tt.baseFee), tt.deliveryCity, tt.agentHomeCity, rate)
			assert.True(t, got.DistanceBonus.Equal(decimal.RequireFromString(tt.wantBonus)),
				"bonus = %s, want %s", got.DistanceBonus, tt.wantBonus)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s, want %s", got.Total, tt.wantTotal)
			assert.True(t, got.BaseFee.Equal(decimal.RequireFromString(tt.baseFee)))
		})
	}
}

func TestComputeConfigurableRate(t *testing.T) {
	rate := decimal.NewFromFloat(0.35)
	got := Compute(decimal.NewFromInt(200), "Delhi", "Jaipur", rate)
	assert.True(t, got.DistanceBonus.Equal(decimal.NewFromInt(70)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(270)))
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func tiersFixture() []EngineTier {
	return []EngineTier{
		{Name: "Up to 1400cc", MaxCc: intPtr(1400), PricePence: 18000},
		{Name: "1401-1600cc", MaxCc: intPtr(1600), PricePence: 19500},
		{Name: "1601-2000cc", MaxCc: intPtr(2000), PricePence: 21500},
		{Name: "Over 2000cc", MaxCc: nil, PricePence: 24500},
	}
}

func TestMatchTier(t *testing.T) {
	tiers := tiersFixture()

	tests := []struct {
		name     string
		engineCc int
		want     string
	}{
		{"well inside first tier", 1000, "Up to 1400cc"},
		{"exact boundary stays in tier", 1400, "Up to 1400cc"},
		{"one over boundary moves up", 1401, "1401-1600cc"},
		{"mid range", 1800, "1601-2000cc"},
		{"above all bounded tiers", 5000, "Over 2000cc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := MatchTier(tiers, tt.engineCc)
			require.NotNil(t, tier)
			assert.Equal(t, tt.want, tier.Name)
		})
	}
}

func TestMatchTierNoUnboundedTier(t *testing.T) {
	bounded := []EngineTier{
		{Name: "Up to 1400cc", MaxCc: intPtr(1400), PricePence: 18000},
		{Name: "1401-2000cc", MaxCc: intPtr(2000), PricePence: 21500},
	}

	assert.Nil(t, MatchTier(bounded, 2500))
	assert.Nil(t, MatchTier(nil, 1000))
}

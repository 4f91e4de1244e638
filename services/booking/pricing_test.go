package booking

import (
	"testing"

	"servicebook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogAddons = []models.ServiceAddon{
	{ID: "wash", Name: "Hair wash", Price: decimal.RequireFromString("10")},
	{ID: "beard", Name: "Beard trim", Price: decimal.RequireFromString("15.50")},
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		minutes  int
		selected []models.SelectedAddon
		policy   PricingPolicy
		want     string
	}{
		{"base only", "50", 60, nil, DefaultPricingPolicy(), "50"},
		{"ninety minutes bills two hours", "50", 90, []models.SelectedAddon{{AddonID: "wash", Quantity: 1}}, DefaultPricingPolicy(), "120.00"},
		{"exactly one hour is not multiplied", "50", 60, []models.SelectedAddon{{AddonID: "wash"}}, DefaultPricingPolicy(), "60"},
		{"short services are not multiplied", "40", 30, nil, DefaultPricingPolicy(), "40"},
		{"two and a half hours bills three", "20", 150, nil, DefaultPricingPolicy(), "60"},
		{"quantity aware", "50", 60, []models.SelectedAddon{{AddonID: "wash", Quantity: 3}}, DefaultPricingPolicy(), "80"},
		{"charge once ignores quantity", "50", 60, []models.SelectedAddon{{AddonID: "wash", Quantity: 3}}, PricingPolicy{}, "60"},
		{"unknown add-on ignored", "50", 60, []models.SelectedAddon{{AddonID: "nope", Quantity: 1}}, DefaultPricingPolicy(), "50"},
		{"fractional prices", "50", 60, []models.SelectedAddon{{AddonID: "beard", Quantity: 2}}, DefaultPricingPolicy(), "81.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(decimal.RequireFromString(tt.base), tt.minutes, tt.selected, catalogAddons, tt.policy)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestComputeTotal_Deterministic(t *testing.T) {
	selected := []models.SelectedAddon{{AddonID: "beard", Quantity: 2}, {AddonID: "wash", Quantity: 1}}
	first, err := ComputeTotal(decimal.RequireFromString("33.33"), 120, selected, catalogAddons, DefaultPricingPolicy())
	require.NoError(t, err)
	for range 10 {
		again, err := ComputeTotal(decimal.RequireFromString("33.33"), 120, selected, catalogAddons, DefaultPricingPolicy())
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
	assert.False(t, first.IsNegative())
}

func TestComputeTotal_Validation(t *testing.T) {
	_, err := ComputeTotal(decimal.RequireFromString("-1"), 60, nil, catalogAddons, DefaultPricingPolicy())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ComputeTotal(decimal.RequireFromString("10"), 0, nil, catalogAddons, DefaultPricingPolicy())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ComputeTotal(decimal.RequireFromString("10"), 60, []models.SelectedAddon{{AddonID: "wash", Quantity: -2}}, catalogAddons, DefaultPricingPolicy())
	assert.ErrorIs(t, err, ErrValidation)

	bad := []models.ServiceAddon{{ID: "x", Price: decimal.RequireFromString("-5")}}
	_, err = ComputeTotal(decimal.RequireFromString("10"), 60, []models.SelectedAddon{{AddonID: "x"}}, bad, DefaultPricingPolicy())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSnapshotAddons(t *testing.T) {
	got, err := SnapshotAddons([]models.SelectedAddon{
		{AddonID: "beard", Quantity: 1},
		{AddonID: "missing", Quantity: 4},
		{AddonID: "wash"},
		{AddonID: "beard", Quantity: 2},
	}, catalogAddons)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "beard", got[0].AddonID)
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, "Beard trim", got[0].NameAtBooking)
	assert.True(t, decimal.RequireFromString("15.50").Equal(got[0].PriceAtBooking))
	assert.Equal(t, "wash", got[1].AddonID)
	assert.Equal(t, 1, got[1].Quantity)
}

func TestHoursMultiplier(t *testing.T) {
	for minutes, want := range map[int]int{15: 1, 60: 1, 61: 2, 90: 2, 120: 2, 121: 3, 240: 4} {
		assert.Equal(t, want, HoursMultiplier(minutes), "minutes=%d", minutes)
	}
}

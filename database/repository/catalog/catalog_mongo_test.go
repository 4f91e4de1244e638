package catalogRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustDecimal128(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

func TestServiceFromDocument(t *testing.T) {
	svc, err := serviceFromDocument(serviceDocument{
		ID:              "massage",
		Name:            "Massage",
		DurationMinutes: 90,
		BasePrice:       mustDecimal128(t, "49.99"),
		Addons: []addonDocument{
			{ID: "oil", Name: "Aroma oil", Price: mustDecimal128(t, "10.50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "massage", svc.ID)
	assert.Equal(t, 90, svc.Duration())
	assert.Equal(t, "49.99", svc.BasePrice.String())
	require.Len(t, svc.Addons, 1)
	assert.Equal(t, "10.5", svc.Addons[0].Price.String())
}

func TestServiceFromDocument_DefaultsDuration(t *testing.T) {
	svc, err := serviceFromDocument(serviceDocument{ID: "s", BasePrice: mustDecimal128(t, "10")})
	require.NoError(t, err)
	assert.Equal(t, 60, svc.Duration())
	assert.Empty(t, svc.Addons)
}

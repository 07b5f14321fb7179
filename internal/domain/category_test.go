package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogd/products-api/internal/domain"
)

func TestParseCategoryKnownTokens(t *testing.T) {
	for token, want := range map[string]domain.Category{
		"UNKNOWN":    domain.CategoryUnknown,
		"CLOTHS":     domain.CategoryCloths,
		"FOOD":       domain.CategoryFood,
		"HOUSEWARES": domain.CategoryHousewares,
		"AUTOMOTIVE": domain.CategoryAutomotive,
		"TOOLS":      domain.CategoryTools,
	} {
		got, err := domain.ParseCategory(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
		assert.Equal(t, token, got.String())
	}
}

func TestParseCategoryUnknownToken(t *testing.T) {
	_, err := domain.ParseCategory("INVALID")
	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
}

func TestParseCategoryIsCaseSensitive(t *testing.T) {
	_, err := domain.ParseCategory("cloths")
	require.Error(t, err)
}

func TestCategoryScanValue(t *testing.T) {
	value, err := domain.CategoryTools.Value()
	require.NoError(t, err)
	assert.Equal(t, "TOOLS", value)

	var c domain.Category
	require.NoError(t, c.Scan("TOOLS"))
	assert.Equal(t, domain.CategoryTools, c)

	require.NoError(t, c.Scan([]byte("FOOD")))
	assert.Equal(t, domain.CategoryFood, c)

	require.Error(t, c.Scan(7))
}

package dto_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogd/products-api/internal/app/dto"
	"github.com/catalogd/products-api/internal/domain"
)

func TestFilterFromQueryEmpty(t *testing.T) {
	filter, err := dto.FilterFromQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, filter.Name)
	assert.Nil(t, filter.Category)
	assert.Nil(t, filter.Available)
}

func TestFilterFromQueryName(t *testing.T) {
	filter, err := dto.FilterFromQuery(url.Values{"name": {"Fedora"}})
	require.NoError(t, err)
	require.NotNil(t, filter.Name)
	assert.Equal(t, "Fedora", *filter.Name)
}

func TestFilterFromQueryCategory(t *testing.T) {
	filter, err := dto.FilterFromQuery(url.Values{"category": {"TOOLS"}})
	require.NoError(t, err)
	require.NotNil(t, filter.Category)
	assert.Equal(t, domain.CategoryTools, *filter.Category)

	_, err = dto.FilterFromQuery(url.Values{"category": {"INVALID"}})
	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
}

func TestFilterFromQueryAvailable(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "TRUE": true, "False": false} {
		filter, err := dto.FilterFromQuery(url.Values{"available": {raw}})
		require.NoError(t, err, raw)
		require.NotNil(t, filter.Available)
		assert.Equal(t, want, *filter.Available)
	}

	_, err := dto.FilterFromQuery(url.Values{"available": {"yes"}})
	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
}

func TestFilterFromQueryNameTakesPrecedence(t *testing.T) {
	filter, err := dto.FilterFromQuery(url.Values{
		"name":      {"Fedora"},
		"available": {"not-a-bool"},
	})
	require.NoError(t, err)
	require.NotNil(t, filter.Name)
	assert.Nil(t, filter.Available)
}

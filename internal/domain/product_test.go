package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogd/products-api/internal/domain"
)

func validPayload() map[string]any {
	return map[string]any{
		"name":        "Fedora",
		"description": "A red hat",
		"price":       "12.50",
		"available":   true,
		"category":    "CLOTHS",
	}
}

func TestDeserializeValidPayload(t *testing.T) {
	var product domain.Product
	require.NoError(t, product.Deserialize(validPayload()))

	assert.Zero(t, product.ID)
	assert.Equal(t, "Fedora", product.Name)
	assert.Equal(t, "A red hat", product.Description)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, product.Available)
	assert.Equal(t, domain.CategoryCloths, product.Category)
}

func TestDeserializeFromDecodedJSON(t *testing.T) {
	// Same decoding path the HTTP handler uses: UseNumber keeps the price
	// exact instead of forcing it through a float64.
	body := `{"name":"Fedora","description":"A red hat","price":12.50,"available":true,"category":"CLOTHS"}`
	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	var data map[string]any
	require.NoError(t, decoder.Decode(&data))

	var product domain.Product
	require.NoError(t, product.Deserialize(data))
	assert.True(t, product.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestDeserializeOptionalDescription(t *testing.T) {
	payload := validPayload()
	delete(payload, "description")

	var product domain.Product
	require.NoError(t, product.Deserialize(payload))
	assert.Equal(t, "", product.Description)
}

func TestSerializeRoundTrip(t *testing.T) {
	var original domain.Product
	require.NoError(t, original.Deserialize(validPayload()))

	var restored domain.Product
	require.NoError(t, restored.Deserialize(original.Serialize()))

	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Description, restored.Description)
	assert.Equal(t, original.Available, restored.Available)
	assert.Equal(t, original.Category, restored.Category)
	assert.True(t, original.Price.Equal(restored.Price), "price must be decimal-equal after a round trip")
}

func TestSerializeID(t *testing.T) {
	var product domain.Product
	require.NoError(t, product.Deserialize(validPayload()))

	assert.Nil(t, product.Serialize()["id"], "unpersisted product serializes a nil id")

	product.ID = 42
	assert.Equal(t, uint(42), product.Serialize()["id"])
}

func TestDeserializeNilData(t *testing.T) {
	var product domain.Product
	err := product.Deserialize(nil)

	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
	assert.Contains(t, err.Error(), "bad or no data")
}

func TestDeserializeMissingName(t *testing.T) {
	payload := validPayload()
	delete(payload, "name")

	var product domain.Product
	err := product.Deserialize(payload)

	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
	assert.Contains(t, err.Error(), "name")
}

func TestDeserializeInvalidPrice(t *testing.T) {
	payload := validPayload()
	payload["price"] = "free"

	var product domain.Product
	err := product.Deserialize(payload)

	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
	assert.Contains(t, err.Error(), "price")
}

func TestDeserializeInvalidAvailable(t *testing.T) {
	payload := validPayload()
	payload["available"] = "yes"

	var product domain.Product
	err := product.Deserialize(payload)

	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
	assert.Contains(t, err.Error(), "available")
}

func TestDeserializeInvalidCategory(t *testing.T) {
	payload := validPayload()
	payload["category"] = "INVALID"

	var product domain.Product
	err := product.Deserialize(payload)

	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
	assert.Contains(t, err.Error(), "INVALID")
}

func TestDeserializeFailureLeavesProductUntouched(t *testing.T) {
	var product domain.Product
	require.NoError(t, product.Deserialize(validPayload()))

	payload := validPayload()
	payload["name"] = "Hammer"
	payload["category"] = "INVALID"
	require.Error(t, product.Deserialize(payload))

	// All-or-nothing: the earlier fields of the bad payload must not have
	// been assigned.
	assert.Equal(t, "Fedora", product.Name)
	assert.Equal(t, domain.CategoryCloths, product.Category)
}

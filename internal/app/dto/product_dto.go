package dto

import (
	"net/url"
	"strings"

	"github.com/catalogd/products-api/internal/domain"
)

// ProductFilter carries at most one query predicate for listing products.
// When no field is set the listing is unrestricted.
type ProductFilter struct {
	Name      *string
	Category  *domain.Category
	Available *bool
}

// FilterFromQuery parses the supported query parameters into a ProductFilter.
// At most one predicate is honored per request: name wins over category,
// category over available. The available value is parsed case-insensitively
// as true/false; anything else is a DataValidationError, as is an unknown
// category token.
func FilterFromQuery(query url.Values) (ProductFilter, error) {
	var filter ProductFilter

	if query.Has("name") {
		name := query.Get("name")
		filter.Name = &name
		return filter, nil
	}

	if query.Has("category") {
		category, err := domain.ParseCategory(query.Get("category"))
		if err != nil {
			return ProductFilter{}, err
		}
		filter.Category = &category
		return filter, nil
	}

	if query.Has("available") {
		raw := query.Get("available")
		switch strings.ToLower(raw) {
		case "true":
			available := true
			filter.Available = &available
		case "false":
			available := false
			filter.Available = &available
		default:
			return ProductFilter{}, domain.NewDataValidationError("invalid availability: %s", raw)
		}
	}

	return filter, nil
}

// ToProductResponse converts a domain Product to its wire mapping
func ToProductResponse(p *domain.Product) map[string]any {
	return p.Serialize()
}

// ToProductResponseList converts a list of domain Products to wire mappings
func ToProductResponseList(products []*domain.Product) []map[string]any {
	responses := make([]map[string]any, len(products))
	for i, p := range products {
		responses[i] = p.Serialize()
	}
	return responses
}

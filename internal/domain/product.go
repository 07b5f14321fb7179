package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product represents one catalog item. ID is zero until the product has been
// persisted; the storage layer assigns it on create and it is immutable after
// that. Price is an exact decimal, never a binary float, so monetary values
// survive round trips without rounding error.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Available   bool            `gorm:"not null" json:"available"`
	Category    Category        `gorm:"type:varchar(63);not null" json:"category"`
}

func (Product) TableName() string {
	return "products"
}

// Serialize projects the product into its wire mapping. Price is rendered as
// exact decimal text, category as its name token, and id as nil while the
// product is not yet persisted.
func (p *Product) Serialize() map[string]any {
	var id any
	if p.ID != 0 {
		id = p.ID
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize validates data and populates the product from it. Validation is
// all-or-nothing: every field is checked into a local first and assignment
// happens only once all of them pass, so a failed call never leaves the
// product half-populated.
func (p *Product) Deserialize(data map[string]any) error {
	if data == nil {
		return NewDataValidationError("invalid product: body of request contained bad or no data")
	}

	rawName, ok := data["name"]
	if !ok {
		return NewDataValidationError("invalid product: missing name")
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return NewDataValidationError("invalid product: name must be a non-empty string")
	}

	description := ""
	if raw, ok := data["description"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return NewDataValidationError("invalid product: description must be a string")
		}
		description = s
	}

	price, err := deserializePrice(data)
	if err != nil {
		return err
	}

	rawAvailable, ok := data["available"]
	if !ok {
		return NewDataValidationError("invalid product: missing available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return NewDataValidationError("invalid product: invalid type for boolean [available]: %T", rawAvailable)
	}

	rawCategory, ok := data["category"]
	if !ok {
		return NewDataValidationError("invalid product: missing category")
	}
	token, ok := rawCategory.(string)
	if !ok {
		return NewDataValidationError("invalid product: category must be a string")
	}
	category, err := ParseCategory(token)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Available = available
	p.Category = category
	return nil
}

// deserializePrice accepts both textual and numeric wire representations of
// the price and rejects anything that does not parse as a decimal.
func deserializePrice(data map[string]any) (decimal.Decimal, error) {
	raw, ok := data["price"]
	if !ok {
		return decimal.Zero, NewDataValidationError("invalid product: missing price")
	}

	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, NewDataValidationError("invalid product: invalid price: %s", v)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, NewDataValidationError("invalid product: invalid price: %s", v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Zero, NewDataValidationError("invalid product: invalid price: %v", raw)
	}
}

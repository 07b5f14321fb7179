package domain

import (
	"database/sql/driver"
	"fmt"
)

// Category is the closed set of classification labels a product can belong to.
// The zero value is CategoryUnknown.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

// String returns the wire token for the category.
func (c Category) String() string {
	switch c {
	case CategoryCloths:
		return "CLOTHS"
	case CategoryFood:
		return "FOOD"
	case CategoryHousewares:
		return "HOUSEWARES"
	case CategoryAutomotive:
		return "AUTOMOTIVE"
	case CategoryTools:
		return "TOOLS"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory maps a wire token to its Category. Tokens are case-sensitive;
// anything outside the closed set is a DataValidationError.
func ParseCategory(token string) (Category, error) {
	switch token {
	case "UNKNOWN":
		return CategoryUnknown, nil
	case "CLOTHS":
		return CategoryCloths, nil
	case "FOOD":
		return CategoryFood, nil
	case "HOUSEWARES":
		return CategoryHousewares, nil
	case "AUTOMOTIVE":
		return CategoryAutomotive, nil
	case "TOOLS":
		return CategoryTools, nil
	default:
		return CategoryUnknown, NewDataValidationError("invalid category: %s", token)
	}
}

// Value stores the category as its token so rows stay readable in the database.
func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner for reading the token column back.
func (c *Category) Scan(src any) error {
	var token string
	switch v := src.(type) {
	case string:
		token = v
	case []byte:
		token = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", src)
	}

	parsed, err := ParseCategory(token)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

package shared

import "strings"

// Brand identifies one of the operated retail brands. Records from every
// channel carry a brand tag; the engine computes brand-by-brand and never
// mixes buckets across brands.
type Brand string

// IsZero returns true if the brand is empty (cross-brand scope)
func (b Brand) IsZero() bool {
	return strings.TrimSpace(string(b)) == ""
}

// String returns the string representation
func (b Brand) String() string {
	return string(b)
}

// Normalize trims surrounding whitespace and lowercases the brand slug
func (b Brand) Normalize() Brand {
	return Brand(strings.ToLower(strings.TrimSpace(string(b))))
}

// Equal compares two brands after normalization
func (b Brand) Equal(other Brand) bool {
	return b.Normalize() == other.Normalize()
}

// BrandEntity provides common fields for brand-scoped entities
type BrandEntity struct {
	BaseEntity
	Brand Brand
}

// NewBrandEntity creates a new brand-scoped entity
func NewBrandEntity(brand Brand) BrandEntity {
	return BrandEntity{
		BaseEntity: NewBaseEntity(),
		Brand:      brand,
	}
}

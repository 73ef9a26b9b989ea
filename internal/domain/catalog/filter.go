package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel that disables category filtering
const CategoryAll = "all"

// PriceBucket is one of a fixed set of price intervals used to filter
// products. Buckets are mutually exclusive with fixed boundaries.
type PriceBucket string

const (
	PriceBucketAll    PriceBucket = "all"
	PriceBucket0To25  PriceBucket = "0-25"   // [0, 25]
	PriceBucket25To50 PriceBucket = "25-50"  // (25, 50]
	PriceBucket50To100 PriceBucket = "50-100" // (50, 100]
	PriceBucketOver   PriceBucket = "100+"   // (100, ∞)
)

var (
	bound25  = decimal.NewFromInt(25)
	bound50  = decimal.NewFromInt(50)
	bound100 = decimal.NewFromInt(100)
)

// IsValid reports whether the bucket is one of the fixed set
func (b PriceBucket) IsValid() bool {
	switch b {
	case PriceBucketAll, PriceBucket0To25, PriceBucket25To50, PriceBucket50To100, PriceBucketOver:
		return true
	}
	return false
}

// Contains reports whether a price falls inside the bucket
func (b PriceBucket) Contains(precio decimal.Decimal) bool {
	switch b {
	case PriceBucketAll:
		return true
	case PriceBucket0To25:
		return precio.Sign() >= 0 && precio.LessThanOrEqual(bound25)
	case PriceBucket25To50:
		return precio.GreaterThan(bound25) && precio.LessThanOrEqual(bound50)
	case PriceBucket50To100:
		return precio.GreaterThan(bound50) && precio.LessThanOrEqual(bound100)
	case PriceBucketOver:
		return precio.GreaterThan(bound100)
	}
	return false
}

// Filter holds the three independent catalog filter criteria. The zero
// value matches everything.
type Filter struct {
	Category string
	Search   string
	Price    PriceBucket
}

// Matches evaluates all three predicates, combined with logical AND.
// Predicates are side-effect-free, so evaluation order is irrelevant.
func (f Filter) Matches(p Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Categoria != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(f.Search)) {
		return false
	}
	if f.Price != "" && !f.Price.Contains(p.Precio) {
		return false
	}
	return true
}

// Apply returns the subset of products matching the filter. The source
// slice is never mutated.
func (f Filter) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

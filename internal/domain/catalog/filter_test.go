package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func product(id, nombre, categoria, precio string) Product {
	return Product{
		ID:        id,
		Nombre:    nombre,
		Categoria: categoria,
		Precio:    decimal.RequireFromString(precio),
		Activo:    true,
	}
}

// Fixture with products matching 0, 1, 2, and all 3 of the predicates
// category=Electronics, search=phone, price=25-50.
var fixture = []Product{
	product("p1", "Smartphone Case", "Electronics", "30.00"), // all 3
	product("p2", "Phone Charger", "Electronics", "75.00"),   // category+search, wrong bucket
	product("p3", "Desk Lamp", "Electronics", "40.00"),       // category+price, no "phone"
	product("p4", "Phone Holder", "Accessories", "26.50"),    // search+price, wrong category
	product("p5", "Garden Hose", "Home", "12.00"),            // none
}

func TestFilter_AllPredicatesAnded(t *testing.T) {
	f := Filter{Category: "Electronics", Search: "phone", Price: PriceBucket25To50}
	got := f.Apply(fixture)

	assert.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFilter_CategoryOnly(t *testing.T) {
	f := Filter{Category: "Electronics"}
	got := f.Apply(fixture)
	assert.Len(t, got, 3)
}

func TestFilter_CategoryAllSentinel(t *testing.T) {
	f := Filter{Category: CategoryAll}
	assert.Len(t, f.Apply(fixture), len(fixture))
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	f := Filter{Search: "PHONE"}
	got := f.Apply(fixture)
	assert.Len(t, got, 3)
	for _, p := range got {
		assert.Contains(t, []string{"p1", "p2", "p4"}, p.ID)
	}
}

func TestFilter_ZeroValueMatchesEverything(t *testing.T) {
	var f Filter
	assert.Len(t, f.Apply(fixture), len(fixture))
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	src := append([]Product(nil), fixture...)
	f := Filter{Category: "Home"}
	_ = f.Apply(src)
	assert.Equal(t, fixture, src)
}

func TestPriceBucket_BoundariesAreExclusiveBetweenBuckets(t *testing.T) {
	cases := []struct {
		precio string
		bucket PriceBucket
		want   bool
	}{
		{"0", PriceBucket0To25, true},
		{"25", PriceBucket0To25, true},
		{"25", PriceBucket25To50, false}, // 25 belongs to the lower bucket only
		{"25.01", PriceBucket25To50, true},
		{"50", PriceBucket25To50, true},
		{"50", PriceBucket50To100, false},
		{"100", PriceBucket50To100, true},
		{"100", PriceBucketOver, false},
		{"100.01", PriceBucketOver, true},
		{"12", PriceBucketAll, true},
	}
	for _, tc := range cases {
		got := tc.bucket.Contains(decimal.RequireFromString(tc.precio))
		assert.Equal(t, tc.want, got, "bucket %s precio %s", tc.bucket, tc.precio)
	}
}

func TestPriceBucket_IsValid(t *testing.T) {
	assert.True(t, PriceBucket25To50.IsValid())
	assert.True(t, PriceBucketAll.IsValid())
	assert.False(t, PriceBucket("10-20").IsValid())
}

func TestViewMode_NeverChangesFilteredSet(t *testing.T) {
	// The view mode lives next to the filter in requests but only shapes
	// rendering. Sanity-check validity here.
	for _, m := range []ViewMode{ViewModeGrid, ViewModeList, ViewModeMasonry, ViewModeDetailed} {
		assert.True(t, m.IsValid())
	}
	assert.False(t, ViewMode("carousel").IsValid())
}

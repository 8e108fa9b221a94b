package model

// SortOrder determines how property query results are ordered
type SortOrder string

const (
	SortNewest      SortOrder = "newest"        // created_at DESC
	SortPriceAsc    SortOrder = "price_asc"     // price ASC
	SortBHKPriceAsc SortOrder = "bhk_price_asc" // bhk ASC, price ASC
)

// PropertyFilter represents a structured query against the property store.
// Nil fields are not applied; conditions combine with AND.
type PropertyFilter struct {
	BHK      *int     // bhk equality
	BHKIn    []int    // bhk IN (...), used by the adjacent-BHK strategy
	PriceMin *float64 // price >=
	PriceMax *float64 // price <=
	City     *string  // case-insensitive substring match
	Sort     SortOrder
	Limit    int
	Offset   int
}

// HasConditions reports whether any filter condition is set
func (f PropertyFilter) HasConditions() bool {
	return f.BHK != nil || len(f.BHKIn) > 0 || f.PriceMin != nil || f.PriceMax != nil || f.City != nil
}

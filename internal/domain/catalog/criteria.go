// internal/domain/catalog/criteria.go
package catalog

import (
	"fmt"
	"net/url"
	"strconv"
)

// SortMode selects the ordering of a catalog query result
type SortMode string

// Supported sort modes
const (
	SortTitle     SortMode = "title" // lexicographic ascending, the default
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortRating    SortMode = "rating" // descending by average rating
	SortNewest    SortMode = "newest" // descending by release date
)

// ParseSortMode validates a sort mode string. The empty string maps
// to the default title ordering.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortTitle:
		return SortTitle, nil
	case SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// Criteria is the set of user-selected catalog narrowing and sorting
// parameters for one query. Every field is independently optional.
type Criteria struct {
	Search   string
	Category string
	Platform string
	Genre    string
	PriceMin *float64
	PriceMax *float64
	Sort     SortMode
}

// ParseCriteria builds a Criteria from a URL query string, validating
// the loosely-typed form values at the boundary. Unknown keys are
// ignored.
func ParseCriteria(values url.Values) (Criteria, error) {
	c := Criteria{
		Search:   values.Get("search"),
		Category: values.Get("category"),
		Platform: values.Get("platform"),
		Genre:    values.Get("genre"),
	}

	sort, err := ParseSortMode(values.Get("sortBy"))
	if err != nil {
		return Criteria{}, err
	}
	c.Sort = sort

	if raw := values.Get("priceMin"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid priceMin %q", raw)
		}
		c.PriceMin = &min
	}
	if raw := values.Get("priceMax"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid priceMax %q", raw)
		}
		c.PriceMax = &max
	}

	return c, nil
}

// Values encodes the criteria back into a URL query string for
// shareable links. Unset fields and the default sort are omitted.
func (c Criteria) Values() url.Values {
	values := url.Values{}
	if c.Search != "" {
		values.Set("search", c.Search)
	}
	if c.Category != "" {
		values.Set("category", c.Category)
	}
	if c.Platform != "" {
		values.Set("platform", c.Platform)
	}
	if c.Genre != "" {
		values.Set("genre", c.Genre)
	}
	if c.PriceMin != nil {
		values.Set("priceMin", strconv.FormatFloat(*c.PriceMin, 'f', -1, 64))
	}
	if c.PriceMax != nil {
		values.Set("priceMax", strconv.FormatFloat(*c.PriceMax, 'f', -1, 64))
	}
	if c.Sort != "" && c.Sort != SortTitle {
		values.Set("sortBy", string(c.Sort))
	}
	return values
}

package highlights

import (
	"net/url"
	"strconv"

	"github.com/hmercer/marginalia/pkg/query"
)

// Filters contains optional criteria for searching highlights within a
// document. All provided filters combine with logical AND.
type Filters struct {
	Query *string
	Color *string
	Page  *int
}

// FiltersFromQuery extracts search filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if q := values.Get("q"); q != "" {
		f.Query = &q
	}

	if c := values.Get("color"); c != "" {
		f.Color = &c
	}

	if p := values.Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil {
			f.Page = &page
		}
	}

	return f
}

// Apply adds filter conditions to the query builder. The free-text query
// matches text or note case-insensitively; color and page match exactly.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereSearch(f.Query, "Text", "Note")

	if f.Color != nil {
		b.WhereEquals("Color", *f.Color)
	}
	if f.Page != nil {
		b.WhereEquals("PageNumber", *f.Page)
	}

	return b
}

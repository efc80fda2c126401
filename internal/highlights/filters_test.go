package highlights_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/hmercer/marginalia/internal/highlights"
	"github.com/hmercer/marginalia/pkg/query"
)

func filterProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "highlights", "h").
		Project("text", "Text").
		Project("note", "Note").
		Project("color", "Color").
		Project("page_number", "PageNumber")
}

func TestFiltersFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		wantQuery *string
		wantColor *string
		wantPage  *int
	}{
		{
			"empty query",
			"",
			nil, nil, nil,
		},
		{
			"text query",
			"q=budget",
			strPtr("budget"), nil, nil,
		},
		{
			"color filter",
			"color=%23ff0000",
			nil, strPtr("#ff0000"), nil,
		},
		{
			"page filter",
			"page=7",
			nil, nil, intPtr(7),
		},
		{
			"all filters",
			"q=budget&color=%23ff0000&page=2",
			strPtr("budget"), strPtr("#ff0000"), intPtr(2),
		},
		{
			"non numeric page ignored",
			"page=seven",
			nil, nil, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}

			f := highlights.FiltersFromQuery(values)

			comparePtr(t, "query", f.Query, tt.wantQuery)
			comparePtr(t, "color", f.Color, tt.wantColor)
			comparePtr(t, "page", f.Page, tt.wantPage)
		})
	}
}

func comparePtr[T comparable](t *testing.T, field string, got, want *T) {
	t.Helper()

	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", field, got, want)
	case *got != *want:
		t.Errorf("%s = %v, want %v", field, *got, *want)
	}
}

func TestFiltersApply(t *testing.T) {
	f := highlights.Filters{
		Query: strPtr("invoice"),
		Color: strPtr("#ff0000"),
		Page:  intPtr(3),
	}

	sql, args := f.Apply(query.NewBuilder(filterProjection())).BuildSelect()

	for _, clause := range []string{
		"(h.text ILIKE $1 OR h.note ILIKE $2)",
		"h.color = $3",
		"h.page_number = $4",
	} {
		if !strings.Contains(sql, clause) {
			t.Errorf("sql %q missing %q", sql, clause)
		}
	}

	if len(args) != 4 {
		t.Fatalf("args = %d, want 4", len(args))
	}
	if args[0] != "%invoice%" || args[1] != "%invoice%" {
		t.Errorf("search args = %v, want wrapped pattern", args[:2])
	}
}

func TestFiltersApplyEmpty(t *testing.T) {
	sql, args := highlights.Filters{}.Apply(query.NewBuilder(filterProjection())).BuildSelect()

	if strings.Contains(sql, "WHERE") {
		t.Errorf("sql %q contains WHERE, want no conditions", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

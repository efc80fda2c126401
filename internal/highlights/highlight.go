// Package highlights provides user-scoped highlight annotations attached to
// positions within PDF pages: bounding box, color, optional note, and tags.
package highlights

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultColor is applied when a creation request omits the color.
const DefaultColor = "#ffff00"

// Highlight represents one annotation tied to a single page of one document.
type Highlight struct {
	ID          uuid.UUID   `json:"uuid"`
	PDFID       uuid.UUID   `json:"pdfUuid"`
	UserID      string      `json:"-"`
	PageNumber  int         `json:"pageNumber"`
	Text        string      `json:"text"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Color       string      `json:"color"`
	Note        string      `json:"note"`
	Tags        []string    `json:"tags"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// BoundingBox is a rectangle in the coordinate space of the rendered page at
// selection time: x/y offset from the top-left rendering origin, width/height
// the selection's rendered extent. PageWidth/PageHeight optionally capture
// the page's rendered dimensions so a client can rescale proportionally at a
// different zoom level. The server treats all five values as opaque numbers.
type BoundingBox struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	PageWidth  *float64 `json:"pageWidth,omitempty"`
	PageHeight *float64 `json:"pageHeight,omitempty"`
}

// PageHighlight is the per-page view of a highlight. The grouping key
// already carries the page number and the surrounding response carries the
// document id, so neither is repeated per entry.
type PageHighlight struct {
	ID          uuid.UUID   `json:"uuid"`
	Text        string      `json:"text"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Color       string      `json:"color"`
	Note        string      `json:"note"`
	Tags        []string    `json:"tags"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// GroupByPage builds the derived per-page view of a highlight list,
// keyed by the decimal page number.
func GroupByPage(hs []Highlight) map[string][]PageHighlight {
	grouped := make(map[string][]PageHighlight)
	for _, h := range hs {
		key := strconv.Itoa(h.PageNumber)
		grouped[key] = append(grouped[key], PageHighlight{
			ID:          h.ID,
			Text:        h.Text,
			BoundingBox: h.BoundingBox,
			Color:       h.Color,
			Note:        h.Note,
			Tags:        h.Tags,
			CreatedAt:   h.CreatedAt,
			UpdatedAt:   h.UpdatedAt,
		})
	}
	return grouped
}

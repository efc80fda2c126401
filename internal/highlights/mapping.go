package highlights

import (
	"encoding/json"
	"fmt"

	"github.com/hmercer/marginalia/pkg/query"
	"github.com/hmercer/marginalia/pkg/repository"
)

var projection = query.NewProjectionMap("public", "highlights", "h").
	Project("id", "Id").
	Project("pdf_id", "PdfId").
	Project("user_id", "UserId").
	Project("page_number", "PageNumber").
	Project("text", "Text").
	Project("x", "X").
	Project("y", "Y").
	Project("width", "Width").
	Project("height", "Height").
	Project("page_width", "PageWidth").
	Project("page_height", "PageHeight").
	Project("color", "Color").
	Project("note", "Note").
	Project("tags", "Tags").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Highlights always list page ascending, then creation time ascending.
var defaultSort = []query.SortField{
	{Field: "PageNumber"},
	{Field: "CreatedAt"},
}

func scanHighlight(s repository.Scanner) (Highlight, error) {
	var h Highlight
	var tags []byte

	err := s.Scan(
		&h.ID,
		&h.PDFID,
		&h.UserID,
		&h.PageNumber,
		&h.Text,
		&h.BoundingBox.X,
		&h.BoundingBox.Y,
		&h.BoundingBox.Width,
		&h.BoundingBox.Height,
		&h.BoundingBox.PageWidth,
		&h.BoundingBox.PageHeight,
		&h.Color,
		&h.Note,
		&tags,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return h, err
	}

	h.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &h.Tags); err != nil {
			return h, fmt.Errorf("decode tags: %w", err)
		}
	}

	return h, nil
}

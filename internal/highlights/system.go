package highlights

import (
	"context"

	"github.com/google/uuid"
)

// DocumentResolver reports whether a document exists and belongs to a user.
// The pdfs system satisfies it; highlight writes use it to re-validate the
// parent document on every creation.
type DocumentResolver interface {
	ResolveOwned(ctx context.Context, userID string, id uuid.UUID) (bool, error)
}

// CreateCommand contains validated data for one highlight creation.
type CreateCommand struct {
	PageNumber int
	Text       string
	Box        BoundingBox
	Color      string
	Note       string
}

// BoxUpdate replaces the stored bounding box coordinates. Nil page
// dimensions preserve whatever the stored box already carries.
type BoxUpdate struct {
	X          float64
	Y          float64
	Width      float64
	Height     float64
	PageWidth  *float64
	PageHeight *float64
}

// UpdateCommand contains the optional fields of a partial update.
// Nil fields are left untouched.
type UpdateCommand struct {
	Color *string
	Note  *string
	Box   *BoxUpdate
	Tags  *[]string
}

// BatchError records one failed item of a batch creation.
type BatchError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchResult summarizes a batch creation: everything that persisted plus an
// itemized account of what did not.
type BatchResult struct {
	Created []Highlight
	Errors  []BatchError
}

// System defines the highlight management operations. Reads and writes are
// scoped to the requesting user; creation additionally re-validates the
// parent document's existence and ownership.
type System interface {
	Create(ctx context.Context, userID string, pdfID uuid.UUID, cmd CreateCommand) (*Highlight, error)
	CreateBatch(ctx context.Context, userID string, pdfID uuid.UUID, items []Item) (*BatchResult, error)
	ForPDF(ctx context.Context, userID string, pdfID uuid.UUID) ([]Highlight, error)
	Find(ctx context.Context, userID string, id uuid.UUID) (*Highlight, error)
	Update(ctx context.Context, userID string, id uuid.UUID, cmd UpdateCommand) (*Highlight, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) (*Highlight, error)
	Search(ctx context.Context, userID string, pdfID uuid.UUID, filters Filters) ([]Highlight, error)
}

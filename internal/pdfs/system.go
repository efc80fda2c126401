package pdfs

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// System defines the document management operations.
// Implementations handle blob storage and database persistence.
// Every method takes the requesting user's identity and folds it
// into the lookup rather than performing a separate authorization step.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*PDF, error)
	List(ctx context.Context, userID string) ([]PDF, error)
	Find(ctx context.Context, userID string, id uuid.UUID) (*PDF, error)
	Open(ctx context.Context, userID string, id uuid.UUID) (*PDF, io.ReadCloser, error)
	Rename(ctx context.Context, userID string, id uuid.UUID, name string) (*PDF, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error

	// ResolveOwned reports whether the document exists and belongs to the
	// user. The highlight system uses it to validate parent documents.
	ResolveOwned(ctx context.Context, userID string, id uuid.UUID) (bool, error)
}

package highlights

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hmercer/marginalia/pkg/query"
	"github.com/hmercer/marginalia/pkg/repository"
)

const returningColumns = `id, pdf_id, user_id, page_number, text, x, y, width, height, page_width, page_height, color, note, tags, created_at, updated_at`

type repo struct {
	db       *sql.DB
	resolver DocumentResolver
	logger   *slog.Logger
}

// New creates a highlight repository. The resolver re-validates parent
// document ownership on every write path.
func New(db *sql.DB, resolver DocumentResolver, logger *slog.Logger) System {
	return &repo{
		db:       db,
		resolver: resolver,
		logger:   logger.With("system", "highlights"),
	}
}

func (r *repo) Create(ctx context.Context, userID string, pdfID uuid.UUID, cmd CreateCommand) (*Highlight, error) {
	if err := r.resolvePDF(ctx, userID, pdfID); err != nil {
		return nil, err
	}

	h, err := r.insert(ctx, userID, pdfID, cmd)
	if err != nil {
		return nil, err
	}

	r.logger.Info("highlight created", "id", h.ID, "pdf", pdfID, "page", h.PageNumber)
	return h, nil
}

// CreateBatch resolves the target document once, then processes items
// independently and sequentially: a failed item is recorded by index and
// processing continues. There is no all-or-nothing guarantee.
func (r *repo) CreateBatch(ctx context.Context, userID string, pdfID uuid.UUID, items []Item) (*BatchResult, error) {
	if err := r.resolvePDF(ctx, userID, pdfID); err != nil {
		return nil, err
	}

	result := &BatchResult{
		Created: []Highlight{},
		Errors:  []BatchError{},
	}

	for i, item := range items {
		cmd, err := item.Validate()
		if err != nil {
			result.Errors = append(result.Errors, BatchError{Index: i, Error: err.Error()})
			continue
		}

		h, err := r.insert(ctx, userID, pdfID, cmd)
		if err != nil {
			result.Errors = append(result.Errors, BatchError{Index: i, Error: err.Error()})
			continue
		}

		result.Created = append(result.Created, *h)
	}

	r.logger.Info("highlight batch processed", "pdf", pdfID, "created", len(result.Created), "errors", len(result.Errors))
	return result, nil
}

func (r *repo) ForPDF(ctx context.Context, userID string, pdfID uuid.UUID) ([]Highlight, error) {
	if err := r.resolvePDF(ctx, userID, pdfID); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("PdfId", pdfID).
		WhereEquals("UserId", userID).
		BuildSelect()

	hs, err := repository.QueryMany(ctx, r.db, q, args, scanHighlight)
	if err != nil {
		return nil, fmt.Errorf("query highlights: %w", err)
	}

	return hs, nil
}

func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*Highlight, error) {
	return r.find(ctx, userID, id)
}

func (r *repo) Update(ctx context.Context, userID string, id uuid.UUID, cmd UpdateCommand) (*Highlight, error) {
	h, err := r.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	color := h.Color
	if cmd.Color != nil {
		color = *cmd.Color
	}

	note := h.Note
	if cmd.Note != nil {
		note = *cmd.Note
	}

	box := h.BoundingBox
	if cmd.Box != nil {
		// A box update replaces the coordinates but keeps the stored page
		// dimensions when the update omits them.
		box.X = cmd.Box.X
		box.Y = cmd.Box.Y
		box.Width = cmd.Box.Width
		box.Height = cmd.Box.Height
		if cmd.Box.PageWidth != nil {
			box.PageWidth = cmd.Box.PageWidth
		}
		if cmd.Box.PageHeight != nil {
			box.PageHeight = cmd.Box.PageHeight
		}
	}

	tags := h.Tags
	if cmd.Tags != nil {
		tags = *cmd.Tags
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := `UPDATE highlights
		SET color = $1, note = $2, x = $3, y = $4, width = $5, height = $6,
			page_width = $7, page_height = $8, tags = $9, updated_at = NOW()
		WHERE id = $10 AND user_id = $11
		RETURNING ` + returningColumns

	updated, err := repository.QueryOne(ctx, r.db, q, []any{
		color, note, box.X, box.Y, box.Width, box.Height,
		box.PageWidth, box.PageHeight, tagsJSON, id, userID,
	}, scanHighlight)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("highlight updated", "id", updated.ID)
	return &updated, nil
}

func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) (*Highlight, error) {
	h, err := r.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	err = repository.ExecExpectOne(ctx, r.db, `DELETE FROM highlights WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("highlight deleted", "id", id)
	return h, nil
}

func (r *repo) Search(ctx context.Context, userID string, pdfID uuid.UUID, filters Filters) ([]Highlight, error) {
	if err := r.resolvePDF(ctx, userID, pdfID); err != nil {
		return nil, err
	}

	b := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("PdfId", pdfID).
		WhereEquals("UserId", userID)

	q, args := filters.Apply(b).BuildSelect()

	hs, err := repository.QueryMany(ctx, r.db, q, args, scanHighlight)
	if err != nil {
		return nil, fmt.Errorf("search highlights: %w", err)
	}

	return hs, nil
}

func (r *repo) resolvePDF(ctx context.Context, userID string, pdfID uuid.UUID) error {
	found, err := r.resolver.ResolveOwned(ctx, userID, pdfID)
	if err != nil {
		return fmt.Errorf("resolve pdf: %w", err)
	}
	if !found {
		return ErrPDFNotFound
	}
	return nil
}

func (r *repo) insert(ctx context.Context, userID string, pdfID uuid.UUID, cmd CreateCommand) (*Highlight, error) {
	tagsJSON, err := json.Marshal([]string{})
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	q := `INSERT INTO highlights(id, pdf_id, user_id, page_number, text, x, y, width, height, page_width, page_height, color, note, tags)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + returningColumns

	h, err := repository.QueryOne(ctx, r.db, q, []any{
		uuid.New(), pdfID, userID, cmd.PageNumber, cmd.Text,
		cmd.Box.X, cmd.Box.Y, cmd.Box.Width, cmd.Box.Height,
		cmd.Box.PageWidth, cmd.Box.PageHeight, cmd.Color, cmd.Note, tagsJSON,
	}, scanHighlight)
	if err != nil {
		return nil, fmt.Errorf("insert highlight: %w", err)
	}

	return &h, nil
}

func (r *repo) find(ctx context.Context, userID string, id uuid.UUID) (*Highlight, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Id", id).
		WhereEquals("UserId", userID).
		BuildSingle()

	h, err := repository.QueryOne(ctx, r.db, q, args, scanHighlight)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &h, nil
}

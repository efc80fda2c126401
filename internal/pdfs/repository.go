package pdfs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hmercer/marginalia/internal/storage"
	"github.com/hmercer/marginalia/pkg/query"
	"github.com/hmercer/marginalia/pkg/repository"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a document repository with database and blob storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: storage,
		logger:  logger.With("system", "pdfs"),
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*PDF, error) {
	if cmd.MimeType != "application/pdf" {
		return nil, ErrNotPDF
	}

	id := uuid.New()
	storageKey := buildStorageKey(id, cmd.OriginalName)

	if err := r.storage.Store(ctx, storageKey, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	q := `INSERT INTO documents(id, original_name, storage_key, file_size, mime_type, user_id, total_pages)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, original_name, storage_key, file_size, mime_type, user_id, total_pages, metadata, created_at, updated_at`

	pdf, err := repository.QueryOne(ctx, r.db, q, []any{
		id, cmd.OriginalName, storageKey, int64(len(cmd.Data)), cmd.MimeType, cmd.UserID, cmd.TotalPages,
	}, scanPDF)

	if err != nil {
		if delErr := r.storage.Delete(ctx, storageKey); delErr != nil {
			r.logger.Error("cleanup failed after db error", "storage_key", storageKey, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("pdf uploaded", "id", pdf.ID, "name", pdf.OriginalName, "size", pdf.FileSize, "user", cmd.UserID)
	return &pdf, nil
}

func (r *repo) List(ctx context.Context, userID string) ([]PDF, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserId", userID).
		BuildSelect()

	pdfs, err := repository.QueryMany(ctx, r.db, q, args, scanPDF)
	if err != nil {
		return nil, fmt.Errorf("query pdfs: %w", err)
	}

	return pdfs, nil
}

// Find returns the document and lazily verifies the stored binary still
// exists, so a record whose file vanished reads the same as no record.
func (r *repo) Find(ctx context.Context, userID string, id uuid.UUID) (*PDF, error) {
	pdf, err := r.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	exists, err := r.storage.Validate(ctx, pdf.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("validate storage: %w", err)
	}
	if !exists {
		return nil, ErrFileMissing
	}

	return pdf, nil
}

func (r *repo) Open(ctx context.Context, userID string, id uuid.UUID) (*PDF, io.ReadCloser, error) {
	pdf, err := r.find(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := r.storage.Open(ctx, pdf.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileMissing
		}
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	return pdf, reader, nil
}

func (r *repo) Rename(ctx context.Context, userID string, id uuid.UUID, name string) (*PDF, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	q := `UPDATE documents SET original_name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, original_name, storage_key, file_size, mime_type, user_id, total_pages, metadata, created_at, updated_at`

	pdf, err := repository.QueryOne(ctx, r.db, q, []any{name, id, userID}, scanPDF)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("pdf renamed", "id", pdf.ID, "name", pdf.OriginalName)
	return &pdf, nil
}

// Delete removes the stored binary best-effort, then deletes the record and
// every highlight referencing it in one transaction. A partial failure rolls
// back the record deletion so no orphaned highlights survive.
func (r *repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	pdf, err := r.find(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := r.storage.Delete(ctx, pdf.StorageKey); err != nil {
		r.logger.Error("storage cleanup failed", "storage_key", pdf.StorageKey, "error", err)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM highlights WHERE pdf_id = $1`, id); err != nil {
			return struct{}{}, fmt.Errorf("cascade highlights: %w", err)
		}
		return struct{}{}, repository.ExecExpectOne(ctx, tx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("pdf deleted", "id", id, "user", userID)
	return nil
}

func (r *repo) ResolveOwned(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	var exists bool
	q := `SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, q, id, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("resolve pdf: %w", err)
	}
	return exists, nil
}

func (r *repo) find(ctx context.Context, userID string, id uuid.UUID) (*PDF, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Id", id).
		WhereEquals("UserId", userID).
		BuildSingle()

	pdf, err := repository.QueryOne(ctx, r.db, q, args, scanPDF)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &pdf, nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("pdfs/%s/%s", id.String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}

package pdfs

import (
	"encoding/json"
	"fmt"

	"github.com/hmercer/marginalia/pkg/query"
	"github.com/hmercer/marginalia/pkg/repository"
)

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "Id").
	Project("original_name", "OriginalName").
	Project("storage_key", "StorageKey").
	Project("file_size", "FileSize").
	Project("mime_type", "MimeType").
	Project("user_id", "UserId").
	Project("total_pages", "TotalPages").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanPDF(s repository.Scanner) (PDF, error) {
	var p PDF
	var metadata []byte

	err := s.Scan(
		&p.ID,
		&p.OriginalName,
		&p.StorageKey,
		&p.FileSize,
		&p.MimeType,
		&p.UserID,
		&p.TotalPages,
		&metadata,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return p, fmt.Errorf("decode metadata: %w", err)
		}
	}

	return p, nil
}

// Package pdfs provides upload, storage, and management of PDF documents.
// Every operation is scoped to the owning user: lookups filter on both the
// document identifier and the requester identity in a single step.
package pdfs

import (
	"time"

	"github.com/google/uuid"
)

// PDF represents one uploaded document and its metadata.
// The storage key and owner are never serialized to clients.
type PDF struct {
	ID           uuid.UUID `json:"uuid"`
	OriginalName string    `json:"originalName"`
	StorageKey   string    `json:"-"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	UserID       string    `json:"-"`
	TotalPages   int       `json:"totalPages"`
	Metadata     *Metadata `json:"metadata,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Metadata holds descriptive document properties. All fields are optional
// and may be populated externally after upload.
type Metadata struct {
	Title            string     `json:"title,omitempty"`
	Author           string     `json:"author,omitempty"`
	Subject          string     `json:"subject,omitempty"`
	Creator          string     `json:"creator,omitempty"`
	Producer         string     `json:"producer,omitempty"`
	CreationDate     *time.Time `json:"creationDate,omitempty"`
	ModificationDate *time.Time `json:"modificationDate,omitempty"`
}

// CreateCommand contains the data required to register an uploaded document.
// Data holds the raw file bytes to be stored.
type CreateCommand struct {
	UserID       string
	OriginalName string
	MimeType     string
	TotalPages   int
	Data         []byte
}

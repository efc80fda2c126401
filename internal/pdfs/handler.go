package pdfs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hmercer/marginalia/internal/auth"
	"github.com/hmercer/marginalia/pkg/handlers"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a document handler with the specified configuration.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "pdfs"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the document endpoint router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.Upload)
	r.Get("/my-pdfs", h.List)
	r.Get("/view/{uuid}", h.View)
	r.Get("/{uuid}", h.Details)
	r.Put("/{uuid}", h.Rename)
	r.Delete("/{uuid}", h.Delete)
	return r
}

type pdfCreated struct {
	UUID         uuid.UUID `json:"uuid"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	UploadDate   time.Time `json:"uploadDate"`
}

type pdfSummary struct {
	UUID         uuid.UUID `json:"uuid"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	TotalPages   int       `json:"totalPages"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type pdfDetails struct {
	UUID         uuid.UUID `json:"uuid"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	TotalPages   int       `json:"totalPages"`
	UploadDate   time.Time `json:"uploadDate"`
	Metadata     *Metadata `json:"metadata,omitempty"`
}

type pdfRenamed struct {
	UUID         uuid.UUID `json:"uuid"`
	OriginalName string    `json:"originalName"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrFileTooLarge.Error(), err)
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "No PDF file uploaded", nil)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrFileTooLarge.Error(), nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "Unable to read uploaded file", err)
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)
	if contentType != "application/pdf" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotPDF.Error(), nil)
		return
	}

	totalPages := 0
	if count, err := extractPageCount(data); err != nil {
		h.logger.Warn("failed to extract pdf page count", "filename", header.Filename, "error", err)
	} else {
		totalPages = count
	}

	pdf, err := h.sys.Create(r.Context(), CreateCommand{
		UserID:       userID,
		OriginalName: header.Filename,
		MimeType:     contentType,
		TotalPages:   totalPages,
		Data:         data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), "Error uploading PDF", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, struct {
		Success bool       `json:"success"`
		Message string     `json:"message"`
		PDF     pdfCreated `json:"pdf"`
	}{
		Success: true,
		Message: "PDF uploaded successfully",
		PDF: pdfCreated{
			UUID:         pdf.ID,
			OriginalName: pdf.OriginalName,
			FileSize:     pdf.FileSize,
			UploadDate:   pdf.CreatedAt,
		},
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	pdfs, err := h.sys.List(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, "Error fetching PDFs", err)
		return
	}

	summaries := make([]pdfSummary, len(pdfs))
	for i, p := range pdfs {
		summaries[i] = pdfSummary{
			UUID:         p.ID,
			OriginalName: p.OriginalName,
			FileSize:     p.FileSize,
			TotalPages:   p.TotalPages,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success bool         `json:"success"`
		Count   int          `json:"count"`
		PDFs    []pdfSummary `json:"pdfs"`
	}{
		Success: true,
		Count:   len(summaries),
		PDFs:    summaries,
	})
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound.Error(), nil)
		return
	}

	pdf, err := h.sys.Find(r.Context(), userID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), friendlyMessage(err, "Error fetching PDF details"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success bool       `json:"success"`
		PDF     pdfDetails `json:"pdf"`
	}{
		Success: true,
		PDF: pdfDetails{
			UUID:         pdf.ID,
			OriginalName: pdf.OriginalName,
			FileSize:     pdf.FileSize,
			TotalPages:   pdf.TotalPages,
			UploadDate:   pdf.CreatedAt,
			Metadata:     pdf.Metadata,
		},
	})
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound.Error(), nil)
		return
	}

	pdf, reader, err := h.sys.Open(r.Context(), userID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), friendlyMessage(err, "Error serving PDF file"), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", pdf.OriginalName))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("pdf stream interrupted", "id", pdf.ID, "error", err)
	}
}

func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound.Error(), nil)
		return
	}

	var body struct {
		OriginalName string `json:"originalName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pdf, err := h.sys.Rename(r.Context(), userID, id, body.OriginalName)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), friendlyMessage(err, "Error updating PDF"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success bool       `json:"success"`
		Message string     `json:"message"`
		PDF     pdfRenamed `json:"pdf"`
	}{
		Success: true,
		Message: "PDF renamed successfully",
		PDF: pdfRenamed{
			UUID:         pdf.ID,
			OriginalName: pdf.OriginalName,
			UpdatedAt:    pdf.UpdatedAt,
		},
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound.Error(), nil)
		return
	}

	if err := h.sys.Delete(r.Context(), userID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), friendlyMessage(err, "Error deleting PDF"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{
		Success: true,
		Message: "PDF deleted successfully",
	})
}

// friendlyMessage surfaces domain error text for client errors and keeps a
// generic message for unexpected failures.
func friendlyMessage(err error, fallback string) string {
	if MapHTTPStatus(err) < http.StatusInternalServerError {
		return err.Error()
	}
	return fallback
}

func detectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPageCount(data []byte) (int, error) {
	return api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
}

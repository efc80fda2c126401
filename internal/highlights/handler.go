package highlights

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hmercer/marginalia/internal/auth"
	"github.com/hmercer/marginalia/pkg/handlers"
)

// Handler provides HTTP endpoints for highlight operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a highlight handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "highlights"),
	}
}

// Routes returns the highlight endpoint router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Post("/batch", h.CreateBatch)
	r.Get("/pdf/{pdfUuid}", h.ForPDF)
	r.Get("/search/{pdfUuid}", h.Search)
	r.Get("/{uuid}", h.Details)
	r.Put("/{uuid}", h.Update)
	r.Delete("/{uuid}", h.Delete)
	return r
}

type highlightUpdated struct {
	UUID        uuid.UUID   `json:"uuid"`
	Color       string      `json:"color"`
	Note        string      `json:"note"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Tags        []string    `json:"tags"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type highlightDeleted struct {
	UUID    uuid.UUID `json:"uuid"`
	Text    string    `json:"text"`
	PDFUUID uuid.UUID `json:"pdfUuid"`
}

type batchCreated struct {
	UUID       uuid.UUID `json:"uuid"`
	PageNumber int       `json:"pageNumber"`
	Text       string    `json:"text"`
	Color      string    `json:"color"`
}

// searchQuery echoes the request's raw search parameters; absent parameters
// are omitted from the response.
type searchQuery struct {
	Q     string `json:"q,omitempty"`
	Color string `json:"color,omitempty"`
	Page  string `json:"page,omitempty"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pdfID, cmd, err := req.Validate()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err.Error(), nil)
		return
	}

	created, err := h.sys.Create(r.Context(), userID, pdfID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error creating highlight"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, struct {
		Success   bool       `json:"success"`
		Message   string     `json:"message"`
		Highlight *Highlight `json:"highlight"`
	}{
		Success:   true,
		Message:   "Highlight created successfully",
		Highlight: created,
	})
}

func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// An empty array is a valid batch; only an absent field is rejected.
	if req.PDFUUID == "" || req.Highlights == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "pdfUuid and a highlights array are required", nil)
		return
	}

	pdfID, err := uuid.Parse(req.PDFUUID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrPDFNotFound.Error(), nil)
		return
	}

	result, err := h.sys.CreateBatch(r.Context(), userID, pdfID, req.Highlights)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error creating highlights"), err)
		return
	}

	created := make([]batchCreated, len(result.Created))
	for i, c := range result.Created {
		created[i] = batchCreated{
			UUID:       c.ID,
			PageNumber: c.PageNumber,
			Text:       c.Text,
			Color:      c.Color,
		}
	}

	handlers.RespondJSON(w, http.StatusCreated, struct {
		Success      bool           `json:"success"`
		Message      string         `json:"message"`
		Created      int            `json:"created"`
		Errors       int            `json:"errors"`
		ErrorDetails []BatchError   `json:"errorDetails"`
		Highlights   []batchCreated `json:"highlights"`
	}{
		Success:      true,
		Message:      fmt.Sprintf("Created %d highlights", len(result.Created)),
		Created:      len(result.Created),
		Errors:       len(result.Errors),
		ErrorDetails: result.Errors,
		Highlights:   created,
	})
}

func (h *Handler) ForPDF(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	pdfID, err := uuid.Parse(chi.URLParam(r, "pdfUuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrPDFNotFound.Error(), nil)
		return
	}

	hs, err := h.sys.ForPDF(r.Context(), userID, pdfID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error fetching highlights"), err)
		return
	}
	if hs == nil {
		hs = []Highlight{}
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success          bool                       `json:"success"`
		PDFUUID          uuid.UUID                  `json:"pdfUuid"`
		TotalHighlights  int                        `json:"totalHighlights"`
		HighlightsByPage map[string][]PageHighlight `json:"highlightsByPage"`
		Highlights       []Highlight                `json:"highlights"`
	}{
		Success:          true,
		PDFUUID:          pdfID,
		TotalHighlights:  len(hs),
		HighlightsByPage: GroupByPage(hs),
		Highlights:       hs,
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

	found, err := h.sys.Find(r.Context(), userID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error fetching highlight"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success   bool       `json:"success"`
		Highlight *Highlight `json:"highlight"`
	}{
		Success:   true,
		Highlight: found,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cmd, err := req.Validate()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err.Error(), nil)
		return
	}

	updated, err := h.sys.Update(r.Context(), userID, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error updating highlight"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success   bool             `json:"success"`
		Message   string           `json:"message"`
		Highlight highlightUpdated `json:"highlight"`
	}{
		Success: true,
		Message: "Highlight updated successfully",
		Highlight: highlightUpdated{
			UUID:        updated.ID,
			Color:       updated.Color,
			Note:        updated.Note,
			BoundingBox: updated.BoundingBox,
			Tags:        updated.Tags,
			UpdatedAt:   updated.UpdatedAt,
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

	deleted, err := h.sys.Delete(r.Context(), userID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error deleting highlight"), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success          bool             `json:"success"`
		Message          string           `json:"message"`
		DeletedHighlight highlightDeleted `json:"deletedHighlight"`
	}{
		Success: true,
		Message: "Highlight deleted successfully",
		DeletedHighlight: highlightDeleted{
			UUID:    deleted.ID,
			Text:    deleted.Text,
			PDFUUID: deleted.PDFID,
		},
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	pdfID, err := uuid.Parse(chi.URLParam(r, "pdfUuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrPDFNotFound.Error(), nil)
		return
	}

	values := r.URL.Query()
	filters := FiltersFromQuery(values)

	hs, err := h.sys.Search(r.Context(), userID, pdfID, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), message(err, "Error searching highlights"), err)
		return
	}
	if hs == nil {
		hs = []Highlight{}
	}

	handlers.RespondJSON(w, http.StatusOK, struct {
		Success    bool        `json:"success"`
		Query      searchQuery `json:"query"`
		Results    int         `json:"results"`
		Highlights []Highlight `json:"highlights"`
	}{
		Success: true,
		Query: searchQuery{
			Q:     values.Get("q"),
			Color: values.Get("color"),
			Page:  values.Get("page"),
		},
		Results:    len(hs),
		Highlights: hs,
	})
}

// message surfaces domain error text for client errors and keeps a generic
// message for unexpected failures.
func message(err error, fallback string) string {
	if MapHTTPStatus(err) < http.StatusInternalServerError {
		return err.Error()
	}
	return fallback
}

package highlights

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxNoteLength bounds the optional note attached to a highlight.
const MaxNoteLength = 1000

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidationError carries a client-facing message and matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func validationError(msg string) error { return &ValidationError{Msg: msg} }

// BoxPayload is the wire form of a bounding box. Pointer fields distinguish
// absent values from zero so presence and numeric type can be validated.
type BoxPayload struct {
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
	PageWidth  *float64 `json:"pageWidth"`
	PageHeight *float64 `json:"pageHeight"`
}

// Complete reports whether all four required coordinates are present.
func (b *BoxPayload) Complete() bool {
	return b != nil && b.X != nil && b.Y != nil && b.Width != nil && b.Height != nil
}

func (b *BoxPayload) toBox() BoundingBox {
	return BoundingBox{
		X:          *b.X,
		Y:          *b.Y,
		Width:      *b.Width,
		Height:     *b.Height,
		PageWidth:  b.PageWidth,
		PageHeight: b.PageHeight,
	}
}

// Item is one highlight creation payload, shared by the single and batch
// creation endpoints.
type Item struct {
	PageNumber  *int        `json:"pageNumber"`
	Text        string      `json:"text"`
	BoundingBox *BoxPayload `json:"boundingBox"`
	Color       string      `json:"color"`
	Note        string      `json:"note"`
}

// Validate checks the payload and converts it into a CreateCommand with
// trimmed text/note and the default color applied.
func (it Item) Validate() (CreateCommand, error) {
	var cmd CreateCommand

	if it.PageNumber == nil || strings.TrimSpace(it.Text) == "" || it.BoundingBox == nil {
		return cmd, validationError("pageNumber, text, and boundingBox are required")
	}
	if *it.PageNumber < 1 {
		return cmd, validationError("pageNumber must be at least 1")
	}
	if !it.BoundingBox.Complete() {
		return cmd, validationError("Invalid bounding box coordinates")
	}

	color := it.Color
	if color == "" {
		color = DefaultColor
	}
	if !colorPattern.MatchString(color) {
		return cmd, validationError("Invalid color format. Use hex format like #ffff00")
	}

	note := strings.TrimSpace(it.Note)
	if len(note) > MaxNoteLength {
		return cmd, validationError("Note must be at most 1000 characters")
	}

	cmd = CreateCommand{
		PageNumber: *it.PageNumber,
		Text:       strings.TrimSpace(it.Text),
		Box:        it.BoundingBox.toBox(),
		Color:      color,
		Note:       note,
	}
	return cmd, nil
}

// CreateRequest is the body of the single highlight creation endpoint.
type CreateRequest struct {
	PDFUUID     string      `json:"pdfUuid"`
	PageNumber  *int        `json:"pageNumber"`
	Text        string      `json:"text"`
	BoundingBox *BoxPayload `json:"boundingBox"`
	Color       string      `json:"color"`
	Note        string      `json:"note"`
}

// Validate checks the request and splits it into the target document id and
// the item command.
func (r CreateRequest) Validate() (uuid.UUID, CreateCommand, error) {
	if r.PDFUUID == "" || r.PageNumber == nil || strings.TrimSpace(r.Text) == "" || r.BoundingBox == nil {
		return uuid.Nil, CreateCommand{}, validationError("pdfUuid, pageNumber, text, and boundingBox are required")
	}

	pdfID, err := uuid.Parse(r.PDFUUID)
	if err != nil {
		return uuid.Nil, CreateCommand{}, ErrPDFNotFound
	}

	item := Item{
		PageNumber:  r.PageNumber,
		Text:        r.Text,
		BoundingBox: r.BoundingBox,
		Color:       r.Color,
		Note:        r.Note,
	}
	cmd, err := item.Validate()
	if err != nil {
		return uuid.Nil, CreateCommand{}, err
	}

	return pdfID, cmd, nil
}

// BatchRequest is the body of the batch creation endpoint.
type BatchRequest struct {
	PDFUUID    string `json:"pdfUuid"`
	Highlights []Item `json:"highlights"`
}

// UpdateRequest is the body of the partial update endpoint. Every field is
// optional; only supplied fields are applied.
type UpdateRequest struct {
	Color       *string     `json:"color"`
	Note        *string     `json:"note"`
	BoundingBox *BoxPayload `json:"boundingBox"`
	Tags        *[]string   `json:"tags"`
}

// Validate checks the supplied fields and converts them into an UpdateCommand.
// An incomplete bounding box is silently ignored rather than rejected, and a
// supplied tag list replaces the stored tags wholesale.
func (r UpdateRequest) Validate() (UpdateCommand, error) {
	var cmd UpdateCommand

	if r.Color != nil {
		if !colorPattern.MatchString(*r.Color) {
			return cmd, validationError("Invalid color format. Use hex format like #ffff00")
		}
		cmd.Color = r.Color
	}

	if r.Note != nil {
		note := strings.TrimSpace(*r.Note)
		if len(note) > MaxNoteLength {
			return cmd, validationError("Note must be at most 1000 characters")
		}
		cmd.Note = &note
	}

	if r.BoundingBox.Complete() {
		cmd.Box = &BoxUpdate{
			X:          *r.BoundingBox.X,
			Y:          *r.BoundingBox.Y,
			Width:      *r.BoundingBox.Width,
			Height:     *r.BoundingBox.Height,
			PageWidth:  r.BoundingBox.PageWidth,
			PageHeight: r.BoundingBox.PageHeight,
		}
	}

	if r.Tags != nil {
		tags := normalizeTags(*r.Tags)
		cmd.Tags = &tags
	}

	return cmd, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

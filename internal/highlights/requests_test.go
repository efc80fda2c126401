package highlights_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hmercer/marginalia/internal/highlights"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func validBox() *highlights.BoxPayload {
	return &highlights.BoxPayload{
		X:      floatPtr(10),
		Y:      floatPtr(20),
		Width:  floatPtr(100),
		Height: floatPtr(15),
	}
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    highlights.Item
		wantErr bool
		check   func(t *testing.T, cmd highlights.CreateCommand)
	}{
		{
			name: "valid with defaults",
			item: highlights.Item{
				PageNumber:  intPtr(3),
				Text:        "  selected passage  ",
				BoundingBox: validBox(),
			},
			check: func(t *testing.T, cmd highlights.CreateCommand) {
				if cmd.Text != "selected passage" {
					t.Errorf("text = %q, want trimmed", cmd.Text)
				}
				if cmd.Color != highlights.DefaultColor {
					t.Errorf("color = %q, want default %q", cmd.Color, highlights.DefaultColor)
				}
				if cmd.PageNumber != 3 {
					t.Errorf("page = %d, want 3", cmd.PageNumber)
				}
			},
		},
		{
			name: "explicit color uppercase hex",
			item: highlights.Item{
				PageNumber:  intPtr(1),
				Text:        "text",
				BoundingBox: validBox(),
				Color:       "#FF00AA",
			},
			check: func(t *testing.T, cmd highlights.CreateCommand) {
				if cmd.Color != "#FF00AA" {
					t.Errorf("color = %q, want #FF00AA", cmd.Color)
				}
			},
		},
		{
			name: "missing page number",
			item: highlights.Item{
				Text:        "text",
				BoundingBox: validBox(),
			},
			wantErr: true,
		},
		{
			name: "blank text",
			item: highlights.Item{
				PageNumber:  intPtr(1),
				Text:        "   ",
				BoundingBox: validBox(),
			},
			wantErr: true,
		},
		{
			name: "missing bounding box",
			item: highlights.Item{
				PageNumber: intPtr(1),
				Text:       "text",
			},
			wantErr: true,
		},
		{
			name: "page number below one",
			item: highlights.Item{
				PageNumber:  intPtr(0),
				Text:        "text",
				BoundingBox: validBox(),
			},
			wantErr: true,
		},
		{
			name: "incomplete bounding box",
			item: highlights.Item{
				PageNumber: intPtr(1),
				Text:       "text",
				BoundingBox: &highlights.BoxPayload{
					X: floatPtr(10),
					Y: floatPtr(20),
				},
			},
			wantErr: true,
		},
		{
			name: "invalid color",
			item: highlights.Item{
				PageNumber:  intPtr(1),
				Text:        "text",
				BoundingBox: validBox(),
				Color:       "yellow",
			},
			wantErr: true,
		},
		{
			name: "three digit hex rejected",
			item: highlights.Item{
				PageNumber:  intPtr(1),
				Text:        "text",
				BoundingBox: validBox(),
				Color:       "#ff0",
			},
			wantErr: true,
		},
		{
			name: "note too long",
			item: highlights.Item{
				PageNumber:  intPtr(1),
				Text:        "text",
				BoundingBox: validBox(),
				Note:        strings.Repeat("a", highlights.MaxNoteLength+1),
			},
			wantErr: true,
		},
		{
			name: "note at limit",
			item: highlights.Item{
				PageNumber:  intPtr(1),
				Text:        "text",
				BoundingBox: validBox(),
				Note:        strings.Repeat("a", highlights.MaxNoteLength),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.item.Validate()

			if tt.wantErr {
				if !errors.Is(err, highlights.ErrValidation) {
					t.Errorf("err = %v, want validation error", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cmd)
			}
		})
	}
}

func TestCreateRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := highlights.CreateRequest{
			PDFUUID:     "11111111-1111-1111-1111-111111111111",
			PageNumber:  intPtr(2),
			Text:        "passage",
			BoundingBox: validBox(),
		}

		pdfID, cmd, err := req.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if pdfID.String() != req.PDFUUID {
			t.Errorf("pdf id = %s, want %s", pdfID, req.PDFUUID)
		}
		if cmd.PageNumber != 2 {
			t.Errorf("page = %d, want 2", cmd.PageNumber)
		}
	})

	t.Run("missing pdf uuid", func(t *testing.T) {
		req := highlights.CreateRequest{
			PageNumber:  intPtr(2),
			Text:        "passage",
			BoundingBox: validBox(),
		}

		if _, _, err := req.Validate(); !errors.Is(err, highlights.ErrValidation) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("malformed pdf uuid maps to not found", func(t *testing.T) {
		req := highlights.CreateRequest{
			PDFUUID:     "not-a-uuid",
			PageNumber:  intPtr(2),
			Text:        "passage",
			BoundingBox: validBox(),
		}

		if _, _, err := req.Validate(); !errors.Is(err, highlights.ErrPDFNotFound) {
			t.Errorf("err = %v, want ErrPDFNotFound", err)
		}
	})
}

func TestUpdateRequestValidate(t *testing.T) {
	t.Run("empty request yields empty command", func(t *testing.T) {
		cmd, err := highlights.UpdateRequest{}.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cmd.Color != nil || cmd.Note != nil || cmd.Box != nil || cmd.Tags != nil {
			t.Errorf("cmd = %+v, want all nil fields", cmd)
		}
	})

	t.Run("invalid color rejected", func(t *testing.T) {
		req := highlights.UpdateRequest{Color: strPtr("#12345")}
		if _, err := req.Validate(); !errors.Is(err, highlights.ErrValidation) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("note trimmed", func(t *testing.T) {
		req := highlights.UpdateRequest{Note: strPtr("  remember this  ")}
		cmd, err := req.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cmd.Note == nil || *cmd.Note != "remember this" {
			t.Errorf("note = %v, want trimmed", cmd.Note)
		}
	})

	t.Run("oversized note rejected", func(t *testing.T) {
		req := highlights.UpdateRequest{Note: strPtr(strings.Repeat("x", highlights.MaxNoteLength+1))}
		if _, err := req.Validate(); !errors.Is(err, highlights.ErrValidation) {
			t.Errorf("err = %v, want validation error", err)
		}
	})

	t.Run("incomplete box ignored", func(t *testing.T) {
		req := highlights.UpdateRequest{
			BoundingBox: &highlights.BoxPayload{X: floatPtr(1)},
		}
		cmd, err := req.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cmd.Box != nil {
			t.Errorf("box = %+v, want nil", cmd.Box)
		}
	})

	t.Run("complete box applied", func(t *testing.T) {
		req := highlights.UpdateRequest{BoundingBox: validBox()}
		cmd, err := req.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cmd.Box == nil {
			t.Fatal("box = nil, want coordinates")
		}
		if cmd.Box.X != 10 || cmd.Box.Height != 15 {
			t.Errorf("box = %+v, want x=10 height=15", cmd.Box)
		}
		if cmd.Box.PageWidth != nil {
			t.Error("page width set, want nil to preserve stored value")
		}
	})

	t.Run("tags normalized", func(t *testing.T) {
		req := highlights.UpdateRequest{
			Tags: &[]string{"  research ", "", "todo", "   "},
		}
		cmd, err := req.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cmd.Tags == nil {
			t.Fatal("tags = nil, want normalized list")
		}
		if diff := cmp.Diff([]string{"research", "todo"}, *cmd.Tags); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty tag list clears tags", func(t *testing.T) {
		req := highlights.UpdateRequest{Tags: &[]string{}}
		cmd, err := req.Validate()
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cmd.Tags == nil || len(*cmd.Tags) != 0 {
			t.Errorf("tags = %v, want empty non-nil list", cmd.Tags)
		}
	})
}

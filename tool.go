package sheetstore

import (
	"fmt"
	"strings"
	"time"
)

// Anonymous is recorded as the submitter when none is known.
const Anonymous = "anonymous"

// Default sheet names.
const (
	ToolsSheet       = "Tools"
	ReviewsSheet     = "Reviews"
	ExamplesSheet    = "Examples"
	CollectionsSheet = "Collections"
)

// Tool is a directory entry.
type Tool struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Link          string   `json:"link"`
	Logo          string   `json:"logo,omitempty"`
	Description   string   `json:"description"`
	GeneralRating *float64 `json:"generalRating,omitempty"`
	Pros          string   `json:"pros,omitempty"`
	Cons          string   `json:"cons,omitempty"`
	Limitations   string   `json:"limitations,omitempty"`
	UploadedBy    string   `json:"uploadedBy"`
	CreatedAt     string   `json:"createdAt"`
	Tags          []string `json:"tags,omitempty"`
}

// ToolSchema returns the Tool layout for version, stored on sheet.
//
// v1 is 11 columns (A:K):
//
//	id, name, link, logo, generalRating, description, cons, pros, limitations, uploadedBy, timestamp
//
// v2 is 22 columns (A:V). The creation timestamp doubles as the id, F:T are
// reserved, tags sit in U and createdBy in V:
//
//	timestamp, name, link, logo, description, ..., tags, createdBy
//
// v1 does not store tags. v2 does not store the rating, pros, cons or
// limitations.
func ToolSchema(version SchemaVersion, sheet string) (*Schema[Tool], error) {
	if sheet == "" {
		sheet = ToolsSheet
	}
	switch version {
	case SchemaV1:
		return toolSchemaV1(sheet), nil
	case SchemaV2:
		return toolSchemaV2(sheet), nil
	}
	return nil, &ConfigurationError{Setting: "schema version", Err: fmt.Errorf("unknown version %q", version)}
}

func toolSchemaV1(sheet string) *Schema[Tool] {
	return &Schema[Tool]{
		Sheet:        sheet,
		Version:      SchemaV1,
		Width:        11,
		HeaderLabels: []string{"id"},
		Columns: []Column[Tool]{
			TextColumn(0, "id", func(t *Tool) string { return t.ID }, func(t *Tool, v string) { t.ID = v }),
			TextColumn(1, "name", func(t *Tool) string { return t.Name }, func(t *Tool, v string) { t.Name = v }),
			TextColumn(2, "link", func(t *Tool) string { return t.Link }, func(t *Tool, v string) { t.Link = v }),
			TextColumn(3, "logo", func(t *Tool) string { return t.Logo }, func(t *Tool, v string) { t.Logo = v }),
			NumberColumn(4, "generalRating", toolRating, setToolRating),
			TextColumn(5, "description", func(t *Tool) string { return t.Description }, func(t *Tool, v string) { t.Description = v }),
			TextColumn(6, "cons", func(t *Tool) string { return t.Cons }, func(t *Tool, v string) { t.Cons = v }),
			TextColumn(7, "pros", func(t *Tool) string { return t.Pros }, func(t *Tool, v string) { t.Pros = v }),
			TextColumn(8, "limitations", func(t *Tool) string { return t.Limitations }, func(t *Tool, v string) { t.Limitations = v }),
			TextColumn(9, "uploadedBy", func(t *Tool) string { return t.UploadedBy }, func(t *Tool, v string) { t.UploadedBy = v }),
			TextColumn(10, "createdAt", func(t *Tool) string { return t.CreatedAt }, func(t *Tool, v string) { t.CreatedAt = v }),
		},
		ID:        func(t *Tool) string { return t.ID },
		Complete:  toolComplete,
		Normalize: normalizeTool,
		Stamp: func(t *Tool, id string, now time.Time) {
			t.ID = id
			t.CreatedAt = FormatTime(now)
		},
	}
}

func toolSchemaV2(sheet string) *Schema[Tool] {
	return &Schema[Tool]{
		Sheet:        sheet,
		Version:      SchemaV2,
		Width:        22,
		HeaderLabels: []string{"timestamp"},
		Columns: []Column[Tool]{
			TextColumn(0, "id", func(t *Tool) string { return t.ID }, func(t *Tool, v string) {
				t.ID = v
				t.CreatedAt = v
			}),
			TextColumn(1, "name", func(t *Tool) string { return t.Name }, func(t *Tool, v string) { t.Name = v }),
			TextColumn(2, "link", func(t *Tool) string { return t.Link }, func(t *Tool, v string) { t.Link = v }),
			TextColumn(3, "logo", func(t *Tool) string { return t.Logo }, func(t *Tool, v string) { t.Logo = v }),
			TextColumn(4, "description", func(t *Tool) string { return t.Description }, func(t *Tool, v string) { t.Description = v }),
			ListColumn(20, "tags", func(t *Tool) []string { return t.Tags }, func(t *Tool, v []string) { t.Tags = v }),
			TextColumn(21, "uploadedBy", func(t *Tool) string { return t.UploadedBy }, func(t *Tool, v string) { t.UploadedBy = v }),
		},
		ID:        func(t *Tool) string { return t.ID },
		Complete:  toolComplete,
		Normalize: normalizeTool,
		// The id column holds the creation time, so two appends inside the
		// same millisecond share an id.
		Stamp: func(t *Tool, _ string, now time.Time) {
			t.CreatedAt = FormatTime(now)
			t.ID = t.CreatedAt
		},
	}
}

func toolRating(t *Tool) (float64, bool) {
	if t.GeneralRating == nil {
		return 0, false
	}
	return *t.GeneralRating, true
}

func setToolRating(t *Tool, v float64) {
	t.GeneralRating = &v
}

func toolComplete(t *Tool) bool {
	return present(t.ID) && present(t.Name)
}

func normalizeTool(t *Tool) {
	if !present(t.UploadedBy) {
		t.UploadedBy = Anonymous
	}
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

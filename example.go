package sheetstore

import "time"

// Example is a worked example of using a tool: a title, a description and
// an optional file or link.
type Example struct {
	ID          string `json:"id"`
	ToolID      string `json:"toolId"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl,omitempty"`
	Link        string `json:"link,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// ExampleSchema is the 8-column layout (A:H):
//
//	id, toolId, userId, title, description, fileUrl, link, createdAt
func ExampleSchema(sheet string) *Schema[Example] {
	if sheet == "" {
		sheet = ExamplesSheet
	}
	return &Schema[Example]{
		Sheet:        sheet,
		Version:      SchemaV1,
		Width:        8,
		HeaderLabels: []string{"id"},
		Columns: []Column[Example]{
			TextColumn(0, "id", func(x *Example) string { return x.ID }, func(x *Example, v string) { x.ID = v }),
			TextColumn(1, "toolId", func(x *Example) string { return x.ToolID }, func(x *Example, v string) { x.ToolID = v }),
			TextColumn(2, "userId", func(x *Example) string { return x.UserID }, func(x *Example, v string) { x.UserID = v }),
			TextColumn(3, "title", func(x *Example) string { return x.Title }, func(x *Example, v string) { x.Title = v }),
			TextColumn(4, "description", func(x *Example) string { return x.Description }, func(x *Example, v string) { x.Description = v }),
			TextColumn(5, "fileUrl", func(x *Example) string { return x.FileURL }, func(x *Example, v string) { x.FileURL = v }),
			TextColumn(6, "link", func(x *Example) string { return x.Link }, func(x *Example, v string) { x.Link = v }),
			TextColumn(7, "createdAt", func(x *Example) string { return x.CreatedAt }, func(x *Example, v string) { x.CreatedAt = v }),
		},
		ID: func(x *Example) string { return x.ID },
		Complete: func(x *Example) bool {
			return present(x.ID) && present(x.ToolID) && present(x.Title)
		},
		Normalize: func(x *Example) {
			if !present(x.UserID) {
				x.UserID = Anonymous
			}
		},
		Stamp: func(x *Example, id string, now time.Time) {
			x.ID = id
			x.CreatedAt = FormatTime(now)
		},
	}
}

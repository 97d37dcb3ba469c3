package sheetstore

import "time"

// Collection is a user's named group of tools.
type Collection struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	ToolIDs   []string `json:"toolIds"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// CollectionSchema is the 6-column layout (A:F):
//
//	id, userId, name, toolIds, createdAt, updatedAt
//
// Collections are never updated in place, so updatedAt equals createdAt.
func CollectionSchema(sheet string) *Schema[Collection] {
	if sheet == "" {
		sheet = CollectionsSheet
	}
	return &Schema[Collection]{
		Sheet:        sheet,
		Version:      SchemaV1,
		Width:        6,
		HeaderLabels: []string{"id"},
		Columns: []Column[Collection]{
			TextColumn(0, "id", func(c *Collection) string { return c.ID }, func(c *Collection, v string) { c.ID = v }),
			TextColumn(1, "userId", func(c *Collection) string { return c.UserID }, func(c *Collection, v string) { c.UserID = v }),
			TextColumn(2, "name", func(c *Collection) string { return c.Name }, func(c *Collection, v string) { c.Name = v }),
			ListColumn(3, "toolIds", func(c *Collection) []string { return c.ToolIDs }, func(c *Collection, v []string) { c.ToolIDs = v }),
			TextColumn(4, "createdAt", func(c *Collection) string { return c.CreatedAt }, func(c *Collection, v string) { c.CreatedAt = v }),
			TextColumn(5, "updatedAt", func(c *Collection) string { return c.UpdatedAt }, func(c *Collection, v string) { c.UpdatedAt = v }),
		},
		ID: func(c *Collection) string { return c.ID },
		Complete: func(c *Collection) bool {
			return present(c.ID) && present(c.Name)
		},
		Stamp: func(c *Collection, id string, now time.Time) {
			c.ID = id
			c.CreatedAt = FormatTime(now)
			c.UpdatedAt = c.CreatedAt
		},
	}
}

package sheetstore

import "time"

// Review is a user's rating of a tool.
type Review struct {
	ID        string  `json:"id"`
	ToolID    string  `json:"toolId"`
	UserID    string  `json:"userId"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	CreatedAt string  `json:"createdAt"`
}

// ReviewSchema is the 6-column layout (A:F):
//
//	id, toolId, userId, rating, comment, createdAt
func ReviewSchema(sheet string) *Schema[Review] {
	if sheet == "" {
		sheet = ReviewsSheet
	}
	return &Schema[Review]{
		Sheet:        sheet,
		Version:      SchemaV1,
		Width:        6,
		HeaderLabels: []string{"id"},
		Columns: []Column[Review]{
			TextColumn(0, "id", func(r *Review) string { return r.ID }, func(r *Review, v string) { r.ID = v }),
			TextColumn(1, "toolId", func(r *Review) string { return r.ToolID }, func(r *Review, v string) { r.ToolID = v }),
			TextColumn(2, "userId", func(r *Review) string { return r.UserID }, func(r *Review, v string) { r.UserID = v }),
			NumberColumn(3, "rating",
				func(r *Review) (float64, bool) { return r.Rating, r.Rating != 0 },
				func(r *Review, v float64) { r.Rating = v }),
			TextColumn(4, "comment", func(r *Review) string { return r.Comment }, func(r *Review, v string) { r.Comment = v }),
			TextColumn(5, "createdAt", func(r *Review) string { return r.CreatedAt }, func(r *Review, v string) { r.CreatedAt = v }),
		},
		ID: func(r *Review) string { return r.ID },
		Complete: func(r *Review) bool {
			return present(r.ID) && present(r.ToolID) && present(r.Comment)
		},
		Normalize: func(r *Review) {
			if !present(r.UserID) {
				r.UserID = Anonymous
			}
		},
		Stamp: func(r *Review, id string, now time.Time) {
			r.ID = id
			r.CreatedAt = FormatTime(now)
		},
	}
}

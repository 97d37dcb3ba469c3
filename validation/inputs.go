package validation

import (
	"strings"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// ToolInput is a tool as submitted through a form or API call.
type ToolInput struct {
	Name          string   `json:"name" validate:"min=2,max=100"`
	Link          string   `json:"link" validate:"required,url"`
	Logo          string   `json:"logo,omitempty" validate:"omitempty,url"`
	Description   string   `json:"description" validate:"min=10,max=2000"`
	GeneralRating *float64 `json:"generalRating,omitempty" validate:"omitempty,min=1,max=5"`
	Pros          string   `json:"pros,omitempty" validate:"max=1000"`
	Cons          string   `json:"cons,omitempty" validate:"max=1000"`
	Limitations   string   `json:"limitations,omitempty" validate:"max=1000"`
	Tags          []string `json:"tags,omitempty" validate:"max=20,dive,required,nocomma"`
}

// Validate trims surrounding whitespace and checks the input.
func (in *ToolInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Link = strings.TrimSpace(in.Link)
	in.Logo = strings.TrimSpace(in.Logo)
	in.Description = strings.TrimSpace(in.Description)
	for i, tag := range in.Tags {
		in.Tags[i] = strings.TrimSpace(tag)
	}
	return Struct(in)
}

// Tool converts the input into a record ready to append.
func (in *ToolInput) Tool(uploadedBy string) *sheetstore.Tool {
	t := &sheetstore.Tool{
		Name:        in.Name,
		Link:        in.Link,
		Logo:        in.Logo,
		Description: in.Description,
		Pros:        in.Pros,
		Cons:        in.Cons,
		Limitations: in.Limitations,
		UploadedBy:  uploadedBy,
	}
	if in.GeneralRating != nil {
		r := *in.GeneralRating
		t.GeneralRating = &r
	}
	if len(in.Tags) > 0 {
		t.Tags = append([]string(nil), in.Tags...)
	}
	return t
}

// ReviewInput is a review of one tool.
type ReviewInput struct {
	ToolID  string  `json:"toolId" validate:"required"`
	Rating  float64 `json:"rating" validate:"min=1,max=5"`
	Comment string  `json:"comment" validate:"required,max=1000"`
}

func (in *ReviewInput) Validate() error {
	in.ToolID = strings.TrimSpace(in.ToolID)
	in.Comment = strings.TrimSpace(in.Comment)
	return Struct(in)
}

func (in *ReviewInput) Review(userID string) *sheetstore.Review {
	return &sheetstore.Review{
		ToolID:  in.ToolID,
		UserID:  userID,
		Rating:  in.Rating,
		Comment: in.Comment,
	}
}

// ExampleInput is a usage example attached to a tool.
type ExampleInput struct {
	ToolID      string `json:"toolId" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	FileURL     string `json:"fileUrl,omitempty" validate:"omitempty,url"`
	Link        string `json:"link,omitempty" validate:"omitempty,url"`
}

func (in *ExampleInput) Validate() error {
	in.ToolID = strings.TrimSpace(in.ToolID)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.FileURL = strings.TrimSpace(in.FileURL)
	in.Link = strings.TrimSpace(in.Link)
	return Struct(in)
}

func (in *ExampleInput) Example(userID string) *sheetstore.Example {
	return &sheetstore.Example{
		ToolID:      in.ToolID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		FileURL:     in.FileURL,
		Link:        in.Link,
	}
}

// CollectionInput is a named list of tools owned by a user.
type CollectionInput struct {
	Name    string   `json:"name" validate:"required,max=100"`
	ToolIDs []string `json:"toolIds,omitempty" validate:"dive,required,nocomma"`
}

func (in *CollectionInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	for i, id := range in.ToolIDs {
		in.ToolIDs[i] = strings.TrimSpace(id)
	}
	return Struct(in)
}

func (in *CollectionInput) Collection(userID string) *sheetstore.Collection {
	return &sheetstore.Collection{
		UserID:  userID,
		Name:    in.Name,
		ToolIDs: append([]string(nil), in.ToolIDs...),
	}
}

package directory_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/ideamans/go-sheetstore/adapters/excel"
	"github.com/ideamans/go-sheetstore/config"
	"github.com/ideamans/go-sheetstore/directory"
	"github.com/ideamans/go-sheetstore/validation"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newDirectory(t *testing.T, version sheetstore.SchemaVersion) *directory.Directory {
	t.Helper()
	adapter, err := excel.New(&excel.Config{FilePath: filepath.Join(t.TempDir(), "directory.xlsx")})
	require.NoError(t, err)

	dir, err := directory.New(adapter, directory.Options{
		SchemaVersion: version,
		NewID:         sequentialIDs(),
		Now:           func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return dir
}

func toolInput(name string) validation.ToolInput {
	return validation.ToolInput{
		Name:        name,
		Link:        "https://" + name + ".example",
		Description: "A tool for teachers and students",
		Tags:        []string{"education"},
	}
}

func TestSubmitTool(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	tool, err := dir.SubmitTool(ctx, toolInput("quizlet"), " user_1 ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", tool.ID)
	assert.Equal(t, "user_1", tool.UploadedBy)
	assert.Equal(t, "2024-05-06T07:08:09.123Z", tool.CreatedAt)
	assert.Nil(t, tool.Tags, "v1 does not store tags")

	anonymous, err := dir.SubmitTool(ctx, toolInput("kahoot"), "")
	require.NoError(t, err)
	assert.Equal(t, sheetstore.Anonymous, anonymous.UploadedBy)

	got, ok, err := dir.GetTool(ctx, tool.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tool, got)

	_, ok, err = dir.GetTool(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	tools, err := dir.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "quizlet", tools[0].Name)
	assert.Equal(t, "kahoot", tools[1].Name)

	filtered, err := dir.ListTools(ctx, sheetstore.Contains("name", "KAH"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, anonymous.ID, filtered[0].ID)
}

func TestSubmitTool_V2KeepsTags(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV2)

	tool, err := dir.SubmitTool(ctx, toolInput("quizlet"), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06T07:08:09.123Z", tool.ID)
	assert.Equal(t, []string{"education"}, tool.Tags)

	tagged, err := dir.ListTools(ctx, sheetstore.Equal("tags", "education"))
	require.NoError(t, err)
	assert.Len(t, tagged, 1)
}

func TestSubmitTool_Invalid(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	in := toolInput("q")
	in.Link = "not a url"
	_, err := dir.SubmitTool(ctx, in, "user_1")

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message("name"))
	assert.NotEmpty(t, verr.Message("link"))
	assert.ErrorIs(t, err, sheetstore.ErrInvalidRecord)

	tools, err := dir.ListTools(ctx)
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestUpdateDeleteTool_Unsupported(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	tool, err := dir.SubmitTool(ctx, toolInput("quizlet"), "user_1")
	require.NoError(t, err)

	_, err = dir.UpdateTool(ctx, tool.ID, toolInput("renamed"))
	assert.ErrorIs(t, err, sheetstore.ErrUnsupportedOperation)

	err = dir.DeleteTool(ctx, tool.ID)
	assert.ErrorIs(t, err, sheetstore.ErrUnsupportedOperation)

	got, ok, err := dir.GetTool(ctx, tool.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "quizlet", got.Name)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	quizlet, err := dir.SubmitTool(ctx, toolInput("quizlet"), "user_1")
	require.NoError(t, err)
	kahoot, err := dir.SubmitTool(ctx, toolInput("kahoot"), "user_1")
	require.NoError(t, err)

	review, err := dir.AddReview(ctx, validation.ReviewInput{ToolID: quizlet.ID, Rating: 4.5, Comment: "Great for revision"}, "user_2")
	require.NoError(t, err)
	assert.Equal(t, quizlet.ID, review.ToolID)
	assert.Equal(t, "user_2", review.UserID)
	assert.Equal(t, 4.5, review.Rating)
	assert.NotEmpty(t, review.ID)

	_, err = dir.AddReview(ctx, validation.ReviewInput{ToolID: kahoot.ID, Rating: 3, Comment: "Noisy"}, "")
	require.NoError(t, err)

	reviews, err := dir.ReviewsForTool(ctx, quizlet.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, review, reviews[0])

	kahootReviews, err := dir.ReviewsForTool(ctx, kahoot.ID)
	require.NoError(t, err)
	require.Len(t, kahootReviews, 1)
	assert.Equal(t, sheetstore.Anonymous, kahootReviews[0].UserID)
}

func TestAddReview_Rejections(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	_, err := dir.AddReview(ctx, validation.ReviewInput{ToolID: "missing", Rating: 5, Comment: "?"}, "user_1")
	assert.ErrorIs(t, err, directory.ErrToolNotFound)

	_, err = dir.AddReview(ctx, validation.ReviewInput{ToolID: "missing", Rating: 9, Comment: "?"}, "user_1")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message("rating"))
}

func TestExamples(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	tool, err := dir.SubmitTool(ctx, toolInput("quizlet"), "user_1")
	require.NoError(t, err)

	example, err := dir.AddExample(ctx, validation.ExampleInput{
		ToolID:      tool.ID,
		Title:       "Vocabulary deck",
		Description: "Spanish words for year 7",
		Link:        "https://quizlet.example/deck",
	}, "user_3")
	require.NoError(t, err)
	assert.Equal(t, "https://quizlet.example/deck", example.Link)

	examples, err := dir.ExamplesForTool(ctx, tool.ID)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, example, examples[0])

	_, err = dir.AddExample(ctx, validation.ExampleInput{ToolID: "missing", Title: "x", Description: "y"}, "user_3")
	assert.ErrorIs(t, err, directory.ErrToolNotFound)
}

func TestCollections(t *testing.T) {
	ctx := context.Background()
	dir := newDirectory(t, sheetstore.SchemaV1)

	created, err := dir.CreateCollection(ctx, validation.CollectionInput{Name: "Favourites", ToolIDs: []string{"t1", "t2"}}, "user_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, created.ToolIDs)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	_, err = dir.CreateCollection(ctx, validation.CollectionInput{Name: "Other"}, "user_2")
	require.NoError(t, err)

	mine, err := dir.CollectionsForUser(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created, mine[0])

	none, err := dir.CollectionsForUser(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = dir.CreateCollection(ctx, validation.CollectionInput{Name: "Nobody"}, " ")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Message("userId"))
}

// brokenAdapter fails every call.
type brokenAdapter struct{ err error }

func (b brokenAdapter) ReadRange(context.Context, string) ([]sheetstore.Row, error) {
	return nil, b.err
}

func (b brokenAdapter) AppendRow(context.Context, string, sheetstore.Row) error {
	return b.err
}

func TestBackendFailure(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("quota exceeded")
	dir, err := directory.New(brokenAdapter{err: cause}, directory.Options{})
	require.NoError(t, err)

	_, err = dir.ListTools(ctx)
	assert.ErrorIs(t, err, sheetstore.ErrBackendUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = dir.AddReview(ctx, validation.ReviewInput{ToolID: "t1", Rating: 5, Comment: "ok"}, "user_1")
	assert.ErrorIs(t, err, sheetstore.ErrBackendUnavailable)
	assert.NotErrorIs(t, err, directory.ErrToolNotFound)
}

func TestNew_UnknownVersion(t *testing.T) {
	_, err := directory.New(brokenAdapter{}, directory.Options{SchemaVersion: "v9"})
	assert.ErrorIs(t, err, sheetstore.ErrConfiguration)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("excel", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tools.xlsx")
		cfg := &config.Config{
			Backend:          config.BackendExcel,
			ExcelPath:        path,
			SchemaVersion:    "v2",
			ToolsSheet:       "Catalog",
			ReviewsSheet:     "Reviews",
			ExamplesSheet:    "Examples",
			CollectionsSheet: "Collections",
		}
		dir, err := directory.Open(ctx, cfg, nil)
		require.NoError(t, err)

		tool, err := dir.SubmitTool(ctx, toolInput("quizlet"), "user_1")
		require.NoError(t, err)

		// A second Directory over the same workbook sees the row.
		again, err := directory.Open(ctx, cfg, nil)
		require.NoError(t, err)
		got, ok, err := again.GetTool(ctx, tool.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, tool.Name, got.Name)
	})

	t.Run("google sheets", func(t *testing.T) {
		key, err := os.ReadFile("../adapters/googlesheets/testdata/service_account.json")
		require.NoError(t, err)

		cfg := &config.Config{
			Backend:          config.BackendGoogleSheets,
			SpreadsheetID:    "sheet-123",
			CredentialsJSON:  string(key),
			SchemaVersion:    "v1",
			ToolsSheet:       "Tools",
			ReviewsSheet:     "Reviews",
			ExamplesSheet:    "Examples",
			CollectionsSheet: "Collections",
		}
		dir, err := directory.Open(ctx, cfg, nil)
		require.NoError(t, err)
		assert.NotNil(t, dir)
	})

	t.Run("configuration errors", func(t *testing.T) {
		_, err := directory.Open(ctx, nil, nil)
		assert.ErrorIs(t, err, sheetstore.ErrConfiguration)

		_, err = directory.Open(ctx, &config.Config{Backend: config.BackendGoogleSheets, SchemaVersion: "v1"}, nil)
		assert.ErrorIs(t, err, sheetstore.ErrConfiguration)
		assert.NotErrorIs(t, err, sheetstore.ErrBackendUnavailable)
	})
}

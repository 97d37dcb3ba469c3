// Package adaptertest runs the same behavioral checks against every
// sheetstore.Adapter implementation.
package adaptertest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// Options tunes the suite for slow backends.
type Options struct {
	// LargeTableRows is the row count of the large table check. Zero
	// means 100; negative skips the check.
	LargeTableRows int
}

// Run exercises an adapter through Store. newAdapter must return an
// adapter over an empty backend on every call.
func Run(t *testing.T, newAdapter func(t *testing.T) sheetstore.Adapter, opts Options) {
	if opts.LargeTableRows == 0 {
		opts.LargeTableRows = 100
	}

	t.Run("EmptyTable", func(t *testing.T) {
		testEmptyTable(t, newAdapter(t))
	})

	t.Run("ToolRoundTrip/v1", func(t *testing.T) {
		testToolRoundTrip(t, newAdapter(t), sheetstore.SchemaV1)
	})

	t.Run("ToolRoundTrip/v2", func(t *testing.T) {
		testToolRoundTrip(t, newAdapter(t), sheetstore.SchemaV2)
	})

	t.Run("HeaderAndInvalidRows", func(t *testing.T) {
		testHeaderAndInvalidRows(t, newAdapter(t))
	})

	t.Run("SecondaryTables", func(t *testing.T) {
		testSecondaryTables(t, newAdapter(t))
	})

	t.Run("ConcurrentAppends", func(t *testing.T) {
		testConcurrentAppends(t, newAdapter(t))
	})

	if opts.LargeTableRows > 0 {
		t.Run("LargeTable", func(t *testing.T) {
			testLargeTable(t, newAdapter(t), opts.LargeTableRows)
		})
	}
}

func newStore[T any](t *testing.T, adapter sheetstore.Adapter, schema *sheetstore.Schema[T]) *sheetstore.Store[T] {
	t.Helper()
	var (
		mu sync.Mutex
		n  int
	)
	store, err := sheetstore.New(adapter, schema, &sheetstore.Config{
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("%s-%d", schema.Sheet, n)
		},
	})
	require.NoError(t, err)
	return store
}

func toolSchema(t *testing.T, version sheetstore.SchemaVersion) *sheetstore.Schema[sheetstore.Tool] {
	t.Helper()
	schema, err := sheetstore.ToolSchema(version, "")
	require.NoError(t, err)
	return schema
}

func testEmptyTable(t *testing.T, adapter sheetstore.Adapter) {
	ctx := context.Background()
	store := newStore(t, adapter, toolSchema(t, sheetstore.SchemaV1))

	tools, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tools)
	assert.Empty(t, tools)

	got, ok, err := store.Get(ctx, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func testToolRoundTrip(t *testing.T, adapter sheetstore.Adapter, version sheetstore.SchemaVersion) {
	ctx := context.Background()
	store := newStore(t, adapter, toolSchema(t, version))

	rating := 4.5
	in := &sheetstore.Tool{
		Name:          "Quizlet",
		Link:          "https://quizlet.com",
		Logo:          "https://quizlet.com/logo.png",
		Description:   "Flashcards and study sets",
		GeneralRating: &rating,
		Pros:          "Fast",
		Cons:          "Ads",
		Limitations:   "Offline mode",
		UploadedBy:    "user_1",
		Tags:          []string{"flashcards", "study sets"},
	}

	appended, err := store.Append(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, appended.ID)
	require.NotEmpty(t, appended.CreatedAt)

	got, ok, err := store.Get(ctx, appended.ID)
	require.NoError(t, err)
	require.True(t, ok, "appended tool %s not found", appended.ID)
	assert.Equal(t, appended, got)

	switch version {
	case sheetstore.SchemaV1:
		require.NotNil(t, got.GeneralRating)
		assert.Equal(t, 4.5, *got.GeneralRating)
		assert.Equal(t, "Ads", got.Cons)
		assert.Nil(t, got.Tags)
	case sheetstore.SchemaV2:
		assert.Equal(t, got.CreatedAt, got.ID)
		assert.Equal(t, []string{"flashcards", "study sets"}, got.Tags)
		assert.Nil(t, got.GeneralRating)
	}
}

func testHeaderAndInvalidRows(t *testing.T, adapter sheetstore.Adapter) {
	ctx := context.Background()
	schema := sheetstore.ReviewSchema("")
	rangeSpec := schema.Range()

	rows := []sheetstore.Row{
		sheetstore.RowOf([]interface{}{"id", "toolId", "userId", "rating", "comment", "createdAt"}),
		sheetstore.RowOf([]interface{}{"r1", "t1", "user_1", 5, "Great", "2024-01-01T00:00:00.000Z"}),
		sheetstore.RowOf([]interface{}{"", "t1", "user_1", 5, "No id", "2024-01-01T00:00:00.000Z"}),
		sheetstore.RowOf([]interface{}{"r2", "t1", "", "not a number", "Rating dropped", "2024-01-02T00:00:00.000Z"}),
	}
	for _, row := range rows {
		require.NoError(t, adapter.AppendRow(ctx, rangeSpec, row))
	}

	store := newStore(t, adapter, schema)
	reviews, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	assert.Equal(t, "r1", reviews[0].ID)
	assert.Equal(t, 5.0, reviews[0].Rating)
	assert.Equal(t, "r2", reviews[1].ID)
	assert.Equal(t, 0.0, reviews[1].Rating)
	assert.Equal(t, sheetstore.Anonymous, reviews[1].UserID)
}

func testSecondaryTables(t *testing.T, adapter sheetstore.Adapter) {
	ctx := context.Background()

	examples := newStore(t, adapter, sheetstore.ExampleSchema(""))
	example, err := examples.Append(ctx, &sheetstore.Example{
		ToolID:      "t1",
		UserID:      "user_1",
		Title:       "Vocabulary deck",
		Description: "Year 7 Spanish",
		FileURL:     "https://files.example/deck.pdf",
	})
	require.NoError(t, err)

	collections := newStore(t, adapter, sheetstore.CollectionSchema(""))
	collection, err := collections.Append(ctx, &sheetstore.Collection{
		UserID:  "user_1",
		Name:    "Favourites",
		ToolIDs: []string{"t1", "t2"},
	})
	require.NoError(t, err)

	gotExamples, err := examples.List(ctx, sheetstore.Equal("toolId", "t1"))
	require.NoError(t, err)
	require.Len(t, gotExamples, 1)
	assert.Equal(t, example, gotExamples[0])

	gotCollections, err := collections.List(ctx, sheetstore.Equal("toolIds", "t2"))
	require.NoError(t, err)
	require.Len(t, gotCollections, 1)
	assert.Equal(t, collection, gotCollections[0])

	// Tables do not leak into each other.
	tools := newStore(t, adapter, toolSchema(t, sheetstore.SchemaV1))
	none, err := tools.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testConcurrentAppends(t *testing.T, adapter sheetstore.Adapter) {
	ctx := context.Background()
	store := newStore(t, adapter, sheetstore.ReviewSchema(""))

	const writers = 10
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := store.Append(gctx, &sheetstore.Review{
				ToolID:  "t1",
				Rating:  float64(i%5 + 1),
				Comment: fmt.Sprintf("review %d", i),
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, writers)

	seen := make(map[string]bool, writers)
	for _, r := range reviews {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func testLargeTable(t *testing.T, adapter sheetstore.Adapter, n int) {
	ctx := context.Background()
	store := newStore(t, adapter, toolSchema(t, sheetstore.SchemaV1))

	start := time.Now()
	for i := 1; i <= n; i++ {
		_, err := store.Append(ctx, &sheetstore.Tool{
			Name:        fmt.Sprintf("Tool %d", i),
			Link:        fmt.Sprintf("https://tool%d.example", i),
			Description: fmt.Sprintf("Category %d", i%5),
		})
		require.NoError(t, err, "append %d", i)
	}
	t.Logf("appended %d rows in %v", n, time.Since(start))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	assert.Equal(t, "Tool 1", all[0].Name)
	assert.Equal(t, fmt.Sprintf("Tool %d", n), all[n-1].Name)

	category, err := store.List(ctx, sheetstore.Equal("description", "Category 1"))
	require.NoError(t, err)
	want := 0
	for i := 1; i <= n; i++ {
		if i%5 == 1 {
			want++
		}
	}
	assert.Len(t, category, want)
}

// Package directory is the tool directory built on sheetstore: tools,
// their reviews and examples, and user collections.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/ideamans/go-sheetstore/adapters/excel"
	"github.com/ideamans/go-sheetstore/adapters/googlesheets"
	"github.com/ideamans/go-sheetstore/config"
	"github.com/ideamans/go-sheetstore/validation"
)

// ErrToolNotFound is returned when a review or example names a tool that
// does not exist.
var ErrToolNotFound = errors.New("tool not found")

// Options configures New. Zero values select the defaults.
type Options struct {
	SchemaVersion    sheetstore.SchemaVersion
	ToolsSheet       string
	ReviewsSheet     string
	ExamplesSheet    string
	CollectionsSheet string

	Logger *slog.Logger
	NewID  func() string
	Now    func() time.Time
}

// Directory holds one store per table on a shared adapter. It is safe for
// concurrent use.
type Directory struct {
	tools       *sheetstore.Store[sheetstore.Tool]
	reviews     *sheetstore.Store[sheetstore.Review]
	examples    *sheetstore.Store[sheetstore.Example]
	collections *sheetstore.Store[sheetstore.Collection]
	logger      *slog.Logger
}

// New builds a Directory on adapter.
func New(adapter sheetstore.Adapter, opts Options) (*Directory, error) {
	if opts.SchemaVersion == "" {
		opts.SchemaVersion = sheetstore.SchemaV1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	storeConfig := &sheetstore.Config{Logger: opts.Logger, NewID: opts.NewID, Now: opts.Now}

	toolSchema, err := sheetstore.ToolSchema(opts.SchemaVersion, opts.ToolsSheet)
	if err != nil {
		return nil, err
	}

	d := &Directory{logger: opts.Logger}
	if d.tools, err = sheetstore.New(adapter, toolSchema, storeConfig); err != nil {
		return nil, err
	}
	if d.reviews, err = sheetstore.New(adapter, sheetstore.ReviewSchema(opts.ReviewsSheet), storeConfig); err != nil {
		return nil, err
	}
	if d.examples, err = sheetstore.New(adapter, sheetstore.ExampleSchema(opts.ExamplesSheet), storeConfig); err != nil {
		return nil, err
	}
	if d.collections, err = sheetstore.New(adapter, sheetstore.CollectionSchema(opts.CollectionsSheet), storeConfig); err != nil {
		return nil, err
	}
	return d, nil
}

// Open connects to the backend named in cfg and builds a Directory on it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Directory, error) {
	if cfg == nil {
		return nil, &sheetstore.ConfigurationError{Setting: "config"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	version, err := cfg.Version()
	if err != nil {
		return nil, err
	}

	var adapter sheetstore.Adapter
	switch cfg.Backend {
	case config.BackendGoogleSheets:
		gs, err := googlesheets.Connect(ctx, cfg.GoogleSheets())
		if err != nil {
			return nil, err
		}
		adapter = gs
	case config.BackendExcel:
		xc := cfg.Excel()
		xa, err := excel.New(&xc)
		if err != nil {
			return nil, err
		}
		adapter = xa
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "opened directory", "backend", cfg.Backend, "schema", version)

	return New(adapter, Options{
		SchemaVersion:    version,
		ToolsSheet:       cfg.ToolsSheet,
		ReviewsSheet:     cfg.ReviewsSheet,
		ExamplesSheet:    cfg.ExamplesSheet,
		CollectionsSheet: cfg.CollectionsSheet,
		Logger:           logger,
	})
}

// ListTools returns every tool matching all conds, in sheet order.
func (d *Directory) ListTools(ctx context.Context, conds ...sheetstore.Condition) ([]*sheetstore.Tool, error) {
	return d.tools.List(ctx, conds...)
}

// GetTool looks a tool up by id. It reports false when there is none.
func (d *Directory) GetTool(ctx context.Context, id string) (*sheetstore.Tool, bool, error) {
	return d.tools.Get(ctx, id)
}

// SubmitTool validates in and appends it as a new tool credited to
// userID, or to sheetstore.Anonymous when userID is empty.
func (d *Directory) SubmitTool(ctx context.Context, in validation.ToolInput, userID string) (*sheetstore.Tool, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	tool, err := d.tools.Append(ctx, in.Tool(strings.TrimSpace(userID)))
	if err != nil {
		return nil, err
	}
	d.logger.InfoContext(ctx, "tool submitted", "id", tool.ID, "name", tool.Name)
	return tool, nil
}

// UpdateTool always fails: the tools table is append-only.
func (d *Directory) UpdateTool(ctx context.Context, id string, in validation.ToolInput) (*sheetstore.Tool, error) {
	return d.tools.Update(ctx, id, in.Tool(""))
}

// DeleteTool always fails: the tools table is append-only.
func (d *Directory) DeleteTool(ctx context.Context, id string) error {
	return d.tools.Delete(ctx, id)
}

// AddReview validates in and records it against an existing tool.
func (d *Directory) AddReview(ctx context.Context, in validation.ReviewInput, userID string) (*sheetstore.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := d.requireTool(ctx, in.ToolID); err != nil {
		return nil, err
	}
	return d.reviews.Append(ctx, in.Review(strings.TrimSpace(userID)))
}

// ReviewsForTool returns the reviews of one tool, oldest first.
func (d *Directory) ReviewsForTool(ctx context.Context, toolID string) ([]*sheetstore.Review, error) {
	return d.reviews.List(ctx, sheetstore.Equal("toolId", toolID))
}

// AddExample validates in and records it against an existing tool.
func (d *Directory) AddExample(ctx context.Context, in validation.ExampleInput, userID string) (*sheetstore.Example, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := d.requireTool(ctx, in.ToolID); err != nil {
		return nil, err
	}
	return d.examples.Append(ctx, in.Example(strings.TrimSpace(userID)))
}

// ExamplesForTool returns the examples of one tool, oldest first.
func (d *Directory) ExamplesForTool(ctx context.Context, toolID string) ([]*sheetstore.Example, error) {
	return d.examples.List(ctx, sheetstore.Equal("toolId", toolID))
}

// CreateCollection stores a new collection owned by userID. Collections
// are private, so an owner is required.
func (d *Directory) CreateCollection(ctx context.Context, in validation.CollectionInput, userID string) (*sheetstore.Collection, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &validation.Error{Fields: []validation.FieldError{{Field: "userId", Message: "is required"}}}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return d.collections.Append(ctx, in.Collection(userID))
}

// CollectionsForUser returns the collections owned by userID.
func (d *Directory) CollectionsForUser(ctx context.Context, userID string) ([]*sheetstore.Collection, error) {
	if strings.TrimSpace(userID) == "" {
		return []*sheetstore.Collection{}, nil
	}
	return d.collections.List(ctx, sheetstore.Equal("userId", userID))
}

func (d *Directory) requireTool(ctx context.Context, id string) error {
	_, ok, err := d.tools.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return nil
}

package sheetstore

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Config represents optional collaborators of a Store
type Config struct {
	Logger *slog.Logger     // default: slog.Default()
	NewID  func() string    // identity for appended records (default: random UUID)
	Now    func() time.Time // creation clock (default: time.Now)
}

func (c *Config) withDefaults() Config {
	var cfg Config
	if c != nil {
		cfg = *c
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}

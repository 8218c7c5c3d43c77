package logsift

import (
	"log/slog"

	"github.com/logsift/logsift-go/pkg/logsift/record"
)

// Discipline controls what happens to lines the template does not fully
// match.
type Discipline int

const (
	// Strict drops unmatched lines. A run in which no line matched at all is
	// reported as a failure instead of an empty success.
	Strict Discipline = iota

	// BestEffort emits exactly one record per considered line, falling back
	// to a catch-all representation for unmatched lines. A best-effort run
	// never fails on match rate.
	BestEffort
)

// Convenience aliases so callers configure fallback shapes without importing
// the record package.
const (
	FallbackPlaceholders = record.FallbackPlaceholders
	FallbackFullLine     = record.FallbackFullLine
)

// Option configures Extract and Suggest behavior using the functional
// options pattern.
type Option func(*config)

// config holds internal configuration for one call.
type config struct {
	discipline Discipline
	fallback   record.FallbackShape
	logger     *slog.Logger
}

// defaultConfig returns a config with the defaults: strict extraction with
// the placeholder fallback shape and no diagnostic logging.
func defaultConfig() *config {
	return &config{
		discipline: Strict,
		fallback:   record.FallbackPlaceholders,
	}
}

// applyOptions applies functional options to a fresh config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithDiscipline sets the extraction discipline. Default: Strict.
func WithDiscipline(d Discipline) Option {
	return func(c *config) {
		c.discipline = d
	}
}

// WithFallbackShape sets the best-effort fallback shape. The shape applies
// uniformly to the whole run. Default: FallbackPlaceholders.
// It has no effect under Strict.
func WithFallbackShape(shape record.FallbackShape) Option {
	return func(c *config) {
		c.fallback = shape
	}
}

// WithLogger sets a logger for diagnostic messages (e.g. why a suggestion
// fell back to the first catalog entry). Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

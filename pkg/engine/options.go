package engine

import (
	"log/slog"

	"github.com/go-drift/immediate/pkg/config"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/resource"
)

type options struct {
	config        *config.Config
	logger        *slog.Logger
	glyphs        glyph.Provider
	resources     *resource.Registry
	recoverPanics *bool
	viewport      geometry.Size
	timingSamples int
}

// Option configures an Interface.
type Option func(*options)

// WithConfig sets the theme and engine settings. Without it the defaults
// from config.Default apply.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithLogger sets the logger. Without it the package logger from
// errors.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithGlyphs sets the default glyph provider.
func WithGlyphs(p glyph.Provider) Option {
	return func(o *options) { o.glyphs = p }
}

// WithResources shares a backend resource registry with the engine.
func WithResources(r *resource.Registry) Option {
	return func(o *options) { o.resources = r }
}

// WithRecoverPanics overrides engine.recover_panics from the config. When
// enabled, a panic in layout, draw or event dispatch is reported through
// errors.ReportPanic instead of unwinding into the host. Build passes are
// never recovered.
func WithRecoverPanics(enabled bool) Option {
	return func(o *options) { o.recoverPanics = &enabled }
}

// WithViewport sets the initial viewport; see Interface.SetViewport.
func WithViewport(size geometry.Size) Option {
	return func(o *options) { o.viewport = size }
}

// WithFrameTimings sets how many build durations Timings keeps.
func WithFrameTimings(samples int) Option {
	return func(o *options) { o.timingSamples = samples }
}

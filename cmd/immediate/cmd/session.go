package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/immediate/pkg/config"
	"github.com/go-drift/immediate/pkg/engine"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/resource"
)

// sessionOptions are the flags shared by commands that run the demo.
type sessionOptions struct {
	width, height float32
	frames        int
	font          string
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{width: 480, height: 320, frames: 2, font: "basic"}
}

// parseSessionFlag consumes a shared flag at args[i]. It reports how many
// arguments it used, or 0 if args[i] is not a shared flag.
func parseSessionFlag(opts *sessionOptions, args []string, i int) (int, error) {
	name, value, inline := strings.Cut(args[i], "=")
	switch name {
	case "--width", "--height", "--frames", "--font":
	default:
		return 0, nil
	}
	used := 1
	if !inline {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("%s requires a value", name)
		}
		value = args[i+1]
		used = 2
	}

	switch name {
	case "--font":
		if value != "basic" && value != "goregular" {
			return 0, fmt.Errorf("unknown font %q (use basic or goregular)", value)
		}
		opts.font = value
	case "--frames":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("--frames must be a positive integer (got %q)", value)
		}
		opts.frames = n
	default:
		f, err := strconv.ParseFloat(value, 32)
		if err != nil || f <= 0 {
			return 0, fmt.Errorf("%s must be a positive number (got %q)", name, value)
		}
		if name == "--width" {
			opts.width = float32(f)
		} else {
			opts.height = float32(f)
		}
	}
	return used, nil
}

// session is an engine running the demo scene.
type session struct {
	ui        *engine.Interface
	resources *resource.Registry
	logger    *slog.Logger
	title     string
	size      geometry.Size
	demo      *demo
}

func newSession(g *Globals, opts sessionOptions) (*session, error) {
	dir := g.Dir
	root, rootErr := config.FindProjectRoot(dir)
	if rootErr == nil {
		dir = root
	}
	cfg, err := config.LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Engine.LogLevel
	if g.LogLevel != "" {
		levelName = g.LogLevel
	}
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	errors.SetLogger(logger)

	title := cfg.App.Name
	if title == "" && rootErr == nil {
		if resolved, err := config.Resolve(root); err == nil {
			title = resolved.AppName
		}
	}
	if title == "" {
		title = "immediate"
	}

	provider, err := loadFont(opts.font)
	if err != nil {
		return nil, err
	}
	resources := resource.NewRegistry()
	font := resources.Add(resource.Font, opts.font, provider)

	size := geometry.Size{Width: opts.width, Height: opts.height}
	ui, err := engine.New(
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithGlyphs(provider),
		engine.WithResources(resources),
		engine.WithViewport(size),
	)
	if err != nil {
		return nil, err
	}
	return &session{
		ui:        ui,
		resources: resources,
		logger:    logger,
		title:     title,
		size:      size,
		demo:      newDemo(title, font),
	}, nil
}

func loadFont(name string) (glyph.Provider, error) {
	if name == "goregular" {
		return glyph.Default()
	}
	return glyph.Basic(), nil
}

// run builds, lays out and draws n frames of the demo.
func (s *session) run(n int) error {
	for range n {
		s.ui.NewFrame()
		err := s.demo.build(s.ui.Root())
		s.ui.EndFrame()
		if err != nil {
			return err
		}
		s.ui.GenerateLayout()
		s.ui.Draw(geometry.Point{}, s.size)
	}
	return nil
}

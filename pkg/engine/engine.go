package engine

import (
	"log/slog"
	"time"

	"github.com/go-drift/immediate/pkg/config"
	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/focus"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/go-drift/immediate/pkg/widgets"
)

// Interface drives the frame lifecycle of one retained tree:
//
//	ui.NewFrame()
//	widgets.ButtonOf("X").Build(identity.Here(), ui.Root())
//	ui.EndFrame()
//	ui.GenerateLayout()
//	list := ui.Draw(origin, size)
//
// Events may be registered with RegisterEvent between frames. Interface is
// not safe for concurrent use; one goroutine owns it for its lifetime.
type Interface struct {
	owner *core.Owner
	root  node.ID

	// ctx is the root build context, non-nil between NewFrame and EndFrame.
	ctx   *core.Context
	frame uint64

	objective     layout.Objective
	viewport      geometry.Size
	recoverPanics bool
	logger        *slog.Logger

	// captured is the node that registered the last left press. It
	// receives the matching release wherever the pointer is.
	captured node.ID

	timings    *FrameTimingBuffer
	frameStart time.Time
	last       Stats
}

// New returns an Interface with an empty root window. It fails only when a
// supplied configuration does not validate.
func New(opts ...Option) (*Interface, error) {
	o := options{timingSamples: 60}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	theme, err := cfg.Theme.Parse()
	if err != nil {
		return nil, err
	}
	objective, err := layout.ParseObjective(cfg.Engine.RootObjective)
	if err != nil {
		return nil, &errors.FrameError{Op: "engine.New", Kind: errors.KindConfig, Err: err}
	}
	recoverPanics := cfg.Engine.RecoverPanics
	if o.recoverPanics != nil {
		recoverPanics = *o.recoverPanics
	}

	logger := o.logger
	if logger == nil {
		logger = errors.Logger()
	}
	fm := focus.NewManager()
	fm.OnChange = func(prev, next node.ID) {
		logger.Debug("focus changed", slog.String("from", prev.String()), slog.String("to", next.String()))
	}

	arena := node.NewArena()
	owner := core.NewOwner(arena, core.Services{
		Logger:    logger,
		Resources: o.resources,
		Glyphs:    o.glyphs,
		Focus:     fm,
		Theme:     theme,
	})
	root := arena.Alloc(identity.Identity{Kind: widgets.KindWindow}, node.Nil)
	arena.Install(root, widgets.NewWindowPayload(theme.Background))

	return &Interface{
		owner:         owner,
		root:          root,
		objective:     objective,
		viewport:      o.viewport,
		recoverPanics: recoverPanics,
		logger:        logger,
		timings:       NewFrameTimingBuffer(o.timingSamples),
	}, nil
}

// Owner returns the tree owner, for passes and tools outside the frame
// lifecycle.
func (in *Interface) Owner() *core.Owner {
	return in.owner
}

// RootID returns the root window node.
func (in *Interface) RootID() node.ID {
	return in.root
}

// Focus returns the keyboard focus manager.
func (in *Interface) Focus() *focus.Manager {
	return in.owner.Services.Focus
}

// Frame returns the number of the current or most recent frame. It is 0
// before the first NewFrame.
func (in *Interface) Frame() uint64 {
	return in.frame
}

// InFrame reports whether a build pass is open.
func (in *Interface) InFrame() bool {
	return in.ctx != nil
}

// SetViewport sets the size the root is laid out against. A zero size
// lays the root out unbounded.
func (in *Interface) SetViewport(size geometry.Size) {
	in.viewport = size
}

// NewFrame starts a frame: every child of the root is invalidated and the
// root build context becomes available through Root. It panics if the
// previous frame was not ended.
func (in *Interface) NewFrame() {
	if in.ctx != nil {
		panic(&errors.ReconcileError{
			Op:         "engine.NewFrame",
			Identity:   in.owner.Node(in.root).Identity.String(),
			StackTrace: errors.CaptureStack(),
		})
	}
	in.frame++
	in.frameStart = time.Now()
	in.owner.ResetStats()
	in.ctx = in.owner.Begin(in.root)
	in.logger.Debug("frame started", slog.Uint64("frame", in.frame))
}

// Root returns the context the application declares top-level widgets
// against. It panics outside NewFrame/EndFrame.
func (in *Interface) Root() *core.Context {
	if in.ctx == nil {
		panic(&errors.ReconcileError{
			Op:         "engine.Root",
			Identity:   in.owner.Node(in.root).Identity.String(),
			StackTrace: errors.CaptureStack(),
		})
	}
	return in.ctx
}

// EndFrame closes the build pass. Root children that were not redeclared
// are pruned with their subtrees, and focus held by a pruned node is
// cleared.
func (in *Interface) EndFrame() {
	if in.ctx == nil {
		panic(&errors.ReconcileError{
			Op:         "engine.EndFrame",
			Identity:   in.owner.Node(in.root).Identity.String(),
			StackTrace: errors.CaptureStack(),
		})
	}
	in.ctx.Finish()
	in.ctx = nil
	arena := in.owner.Arena()
	in.owner.Services.Focus.Prune(arena.Contains)

	created, pruned := in.owner.Stats()
	elapsed := time.Since(in.frameStart)
	in.timings.Add(elapsed)
	in.last = Stats{
		Frame:   in.frame,
		Nodes:   arena.Len(),
		Created: created,
		Pruned:  pruned,
		Build:   elapsed,
	}
	in.logger.Debug("frame ended",
		slog.Uint64("frame", in.frame),
		slog.Int("nodes", in.last.Nodes),
		slog.Int("created", created),
		slog.Int("pruned", pruned),
		slog.Duration("build", elapsed))
}

// Query returns the query the root is laid out against.
func (in *Interface) Query() layout.Query {
	q := layout.Unconstrained()
	q.WidthObjective, q.HeightObjective = in.objective, in.objective
	if in.viewport.Width > 0 && in.viewport.Height > 0 {
		q.Width = layout.Finite(in.viewport.Width)
		q.Height = layout.Finite(in.viewport.Height)
	}
	return q
}

// GenerateLayout lays the tree out against Query and refreshes the focus
// traversal order. The root's response carries the conjunction of every
// status in the tree.
func (in *Interface) GenerateLayout() (resp layout.Response) {
	if in.recoverPanics {
		defer errors.Recover("engine.GenerateLayout")
	}
	resp = in.owner.Layout(in.root, in.Query())
	in.owner.Services.Focus.SetOrder(in.owner.FocusOrder(in.root))
	if resp.Horizontal != layout.Ok || resp.Vertical != layout.Ok {
		in.logger.Debug("layout degraded",
			slog.String("horizontal", resp.Horizontal.String()),
			slog.String("vertical", resp.Vertical.String()))
	}
	return resp
}

// Draw returns the tree's draw list with the root placed at origin. A
// positive size extends the root to cover it, so the window background
// fills the viewport and hit testing accepts the whole area.
func (in *Interface) Draw(origin geometry.Point, size geometry.Size) (list draw.List) {
	if in.recoverPanics {
		defer errors.Recover("engine.Draw")
	}
	in.owner.Place(in.root, geometry.Translate(origin.X, origin.Y, 0))
	n := in.owner.Node(in.root)
	n.Size.Width = max(n.Size.Width, size.Width)
	n.Size.Height = max(n.Size.Height, size.Height)
	return in.owner.Draw(in.root)
}

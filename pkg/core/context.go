package core

import (
	"log/slog"

	"github.com/go-drift/immediate/pkg/config"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/go-drift/immediate/pkg/resource"
)

// Context is the handle a builder declares children against. It is only
// valid during the build pass that produced it.
type Context struct {
	owner     *Owner
	parent    node.ID
	container *Container
}

// Owner returns the owner of the tree being built.
func (c *Context) Owner() *Owner {
	return c.owner
}

// Parent returns the container node children are declared under.
func (c *Context) Parent() node.ID {
	return c.parent
}

// Logger returns the engine logger.
func (c *Context) Logger() *slog.Logger {
	return c.owner.Services.Logger
}

// Theme returns the active theme.
func (c *Context) Theme() config.Theme {
	return c.owner.Services.Theme
}

// Glyphs returns the default glyph provider.
func (c *Context) Glyphs() glyph.Provider {
	return c.owner.Services.Glyphs
}

// Resources returns the backend resource registry.
func (c *Context) Resources() *resource.Registry {
	return c.owner.Services.Resources
}

// Focused reports whether id holds keyboard focus.
func (c *Context) Focused(id node.ID) bool {
	return c.owner.Services.Focus.Has(id)
}

// Finish ends the build pass this context was opened for and prunes the
// children that were not redeclared. It returns the number pruned.
func (c *Context) Finish() int {
	pruned := c.container.Finish(c.owner.arena)
	if pruned > 0 {
		c.owner.pruned += pruned
		c.owner.Services.Logger.Debug("pruned children",
			slog.String("parent", c.parent.String()),
			slog.Int("count", pruned))
	}
	return pruned
}

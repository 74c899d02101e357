// Package core implements reconciliation: matching the widgets an
// application declares this frame to the nodes retained from the previous
// frame.
//
// # Declarations
//
// A widget builder describes one widget by implementing [Declaration] and
// calling [Build]. Build computes the declaration's identity from its
// location and the enclosing container's occurrence counter, then asks the
// container for a child with that identity:
//
//   - Found: the node is revalidated, its payload is checked against the
//     declaration's type, and Update overwrites the declarative fields and
//     returns the widget's feedback. Internal state (pressed flags,
//     counters) is left alone.
//   - Not found: a node with a placeholder payload is allocated and
//     registered, Create produces the real payload, and Initial supplies
//     the feedback for a widget with no history.
//
// A kind mismatch on a found node panics with a *errors.ReconcileError.
// Identity equality implies kind equality, so a mismatch means a call site
// broke the identity contract.
//
// # Containers
//
// A container payload embeds [Container]. [BuildChildren] runs a build
// pass over a container node: every child is invalidated, the callback
// declares children against a child [Context], and children left invalid
// are pruned:
//
//	_, id := core.Build(ctx, loc, paddingDecl{...})
//	core.BuildChildren(ctx, id, func(ctx *core.Context) {
//	    widgets.Button("OK").Build(identity.Here(), ctx)
//	})
//
// # Passes
//
// After the build, an [Owner] drives layout ([Layouter]), drawing
// ([Drawer]) and hit testing ([HitTester], [InputHandler]) over the
// retained tree. Payloads opt in to each pass by implementing the
// matching interface.
package core

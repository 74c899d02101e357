// Package widgets provides the container and leaf widgets of the
// immediate-mode engine.
//
// Every widget is a plain configuration struct. Set fields directly or
// chain the With* helpers, then call Build with a location and the
// enclosing context:
//
//	widgets.Window{}.Build(identity.Here(), ctx, func(ctx *core.Context) {
//	    widgets.Padding{}.Build(identity.Here(), ctx, func(ctx *core.Context) {
//	        if widgets.ButtonOf("Save").Build(identity.Here(), ctx) {
//	            save()
//	        }
//	    })
//	})
//
// Build returns the widget's feedback: a press edge for [Button], the
// checked level for [Checkbox], the build count for [FrameCounter], the
// edited text for [TextInput], and an error for widgets that reference
// backend resources ([Label], [Image]). Containers return the node their
// children were declared under.
//
// Zero-valued colours and sizes fall back to the context's theme.
package widgets

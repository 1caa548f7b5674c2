// Package render draws deck components onto slides. Each component type tag
// maps to a Handler; the Registry dispatches components to their handlers and
// turns any failure into a visible placeholder so that one bad component
// never sinks a slide.
package render

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// Handler draws one component onto a slide.
type Handler func(ctx *Context, s *pptx.Slide, c deck.Component) error

// Context carries per-deck state into handlers and collects render outcomes.
type Context struct {
	Theme     deck.Theme
	Log       logrus.FieldLogger
	SectionID string

	// Placeholders counts placeholder shapes drawn instead of content.
	Placeholders int
	// Failures lists the components whose handler failed.
	Failures []*ComponentRenderError
}

// NewContext creates a render context for a deck theme.
func NewContext(theme deck.Theme, log logrus.FieldLogger) *Context {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Context{Theme: theme, Log: log}
}

func (ctx *Context) logger() logrus.FieldLogger {
	if ctx.Log == nil {
		ctx.Log = logrus.StandardLogger()
	}
	return ctx.Log
}

// ComponentRenderError records a handler failure for one component.
type ComponentRenderError struct {
	ComponentID string
	Type        string
	Err         error
}

func (e *ComponentRenderError) Error() string {
	return fmt.Sprintf("failed to render component %q of type %q: %v", e.ComponentID, e.Type, e.Err)
}

func (e *ComponentRenderError) Unwrap() error {
	return e.Err
}

// Registry maps component type tags to handlers. Tags are matched case
// insensitively; unknown tags go to the fallback handler.
type Registry struct {
	handlers map[string]Handler
	fallback Handler
}

// NewRegistry creates an empty registry. fallback must not be nil.
func NewRegistry(fallback Handler) *Registry {
	if fallback == nil {
		panic("render: nil fallback handler")
	}
	return &Registry{
		handlers: make(map[string]Handler),
		fallback: fallback,
	}
}

// Register binds tag to h, replacing any previous binding.
func (r *Registry) Register(tag string, h Handler) {
	if h == nil {
		return
	}
	r.handlers[normalizeTag(tag)] = h
}

// Lookup returns the handler bound to tag and whether the tag is known.
// Unknown tags yield the fallback.
func (r *Registry) Lookup(tag string) (Handler, bool) {
	if h, ok := r.handlers[normalizeTag(tag)]; ok {
		return h, true
	}
	return r.fallback, false
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Dispatch renders c with its handler. A returned error or a panic inside the
// handler removes whatever the handler had drawn, draws an error placeholder
// at the component's sanitized layout and is reported as a
// *ComponentRenderError. The error is informational: the slide is complete
// either way.
func (r *Registry) Dispatch(ctx *Context, s *pptx.Slide, c deck.Component) (err error) {
	h, _ := r.Lookup(c.Type.String())
	before := s.GetShapeCount()

	defer func() {
		if rec := recover(); rec != nil {
			ctx.logger().WithField("stack", string(debug.Stack())).Debug("component handler panicked")
			err = fmt.Errorf("panic: %v", rec)
		}
		if err == nil {
			return
		}
		for s.GetShapeCount() > before {
			_ = s.RemoveShape(s.GetShapeCount() - 1)
		}
		renderErr := &ComponentRenderError{
			ComponentID: c.ID.String(),
			Type:        c.Type.String(),
			Err:         err,
		}
		ctx.Failures = append(ctx.Failures, renderErr)
		ctx.logger().WithFields(logrus.Fields{
			"component_id":   renderErr.ComponentID,
			"component_type": renderErr.Type,
			"section_id":     ctx.SectionID,
		}).WithError(err).Warn("component failed to render, drawing placeholder")
		Placeholder(ctx, s, resolve.BoxFromLayout(c.Layout), errorLabel(c))
		err = renderErr
	}()

	return h(ctx, s, c)
}

func errorLabel(c deck.Component) string {
	if c.Type.IsBlank() {
		return "Component failed to render"
	}
	return fmt.Sprintf("%s: failed to render", c.Type.Trimmed())
}

// SortForStacking returns the components in paint order: ascending zIndex
// when present, otherwise order, otherwise 0. Ties keep their input order and
// the input slice is left untouched.
func SortForStacking(components []deck.Component) []deck.Component {
	sorted := make([]deck.Component, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool {
		return stackKey(sorted[i]) < stackKey(sorted[j])
	})
	return sorted
}

func stackKey(c deck.Component) float64 {
	if z, ok := c.Layout.ZIndex.Float(); ok {
		return z
	}
	return c.Order.Or(0)
}

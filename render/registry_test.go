package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

func newTestContext() (*Context, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewContext(deck.Theme{}, log), hook
}

func newTestSlide() *pptx.Slide {
	return pptx.New().GetActiveSlide()
}

func component(id, typ, data string, x, y, w, h float64) deck.Component {
	c := deck.Component{
		ID:   deck.Text(id),
		Type: deck.Text(typ),
		Layout: deck.Layout{
			X:      deck.NewNumber(x),
			Y:      deck.NewNumber(y),
			Width:  deck.NewNumber(w),
			Height: deck.NewNumber(h),
		},
	}
	if data != "" {
		c.Data = json.RawMessage(data)
	}
	return c
}

func TestDispatchConvertsErrorToPlaceholder(t *testing.T) {
	ctx, hook := newTestContext()
	ctx.SectionID = "s1"
	slide := newTestSlide()
	r := NewRegistry(Generic)
	r.Register("broken", func(ctx *Context, s *pptx.Slide, c deck.Component) error {
		s.CreateRichTextShape().CreateTextRun("half drawn")
		return errors.New("boom")
	})

	c := component("c1", "broken", "", 96, 48, 192, 96)
	err := r.Dispatch(ctx, slide, c)

	var renderErr *ComponentRenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected ComponentRenderError, got %v", err)
	}
	if renderErr.ComponentID != "c1" || renderErr.Type != "broken" || renderErr.Err.Error() != "boom" {
		t.Errorf("unexpected error fields: %+v", renderErr)
	}
	if slide.GetShapeCount() != 1 {
		t.Fatalf("shape count = %d, want only the placeholder", slide.GetShapeCount())
	}
	shape := slide.GetShapes()[0]
	want := resolve.BoxFromLayout(c.Layout)
	if shape.GetOffsetX() != want.X || shape.GetOffsetY() != want.Y || shape.GetWidth() != want.W || shape.GetHeight() != want.H {
		t.Errorf("placeholder not at component position: %d,%d %dx%d", shape.GetOffsetX(), shape.GetOffsetY(), shape.GetWidth(), shape.GetHeight())
	}
	if strings.Contains(slide.ExtractText(), "half drawn") {
		t.Error("partial handler output must be removed")
	}
	if ctx.Placeholders != 1 || len(ctx.Failures) != 1 {
		t.Errorf("placeholders=%d failures=%d", ctx.Placeholders, len(ctx.Failures))
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
			if e.Data["component_id"] != "c1" || e.Data["component_type"] != "broken" || e.Data["section_id"] != "s1" {
				t.Errorf("missing log fields: %v", e.Data)
			}
		}
	}
	if !warned {
		t.Error("expected a warning log entry")
	}
}

func TestDispatchRecoversPanics(t *testing.T) {
	ctx, _ := newTestContext()
	slide := newTestSlide()
	r := NewRegistry(Generic)
	r.Register("panicky", func(ctx *Context, s *pptx.Slide, c deck.Component) error {
		s.CreateAutoShape()
		var m map[string]int
		m["x"]++
		return nil
	})

	err := r.Dispatch(ctx, slide, component("p1", "panicky", "", 0, 0, 100, 100))
	if err == nil || !strings.Contains(err.Error(), "panic") {
		t.Fatalf("expected recovered panic, got %v", err)
	}
	if slide.GetShapeCount() != 1 {
		t.Errorf("shape count = %d, want 1", slide.GetShapeCount())
	}
	if !strings.Contains(slide.ExtractText(), "panicky") {
		t.Errorf("placeholder should name the type, got %q", slide.ExtractText())
	}
}

func TestDispatchUnknownType(t *testing.T) {
	ctx, _ := newTestContext()
	slide := newTestSlide()
	r := NewDefaultRegistry()

	if _, known := r.Lookup("hologram"); known {
		t.Fatal("hologram should not be registered")
	}
	if err := r.Dispatch(ctx, slide, component("u1", "hologram", `{"title": "3D"}`, 0, 0, 200, 100)); err != nil {
		t.Fatalf("unknown types are not errors: %v", err)
	}
	if got := slide.ExtractText(); !strings.Contains(got, "hologram") {
		t.Errorf("placeholder text %q does not contain the type", got)
	}
	if ctx.Placeholders != 1 || len(ctx.Failures) != 0 {
		t.Errorf("placeholders=%d failures=%d", ctx.Placeholders, len(ctx.Failures))
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewDefaultRegistry()
	for _, tag := range []string{"Heading", "richtext", " teamMember ", "BACKGROUNDIMAGE"} {
		if _, ok := r.Lookup(tag); !ok {
			t.Errorf("Lookup(%q) not found", tag)
		}
	}
}

func TestNewRegistryRequiresFallback(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil fallback")
		}
	}()
	NewRegistry(nil)
}

func TestEveryBuiltinHandlesMissingData(t *testing.T) {
	r := NewDefaultRegistry()
	for _, tag := range r.Tags() {
		t.Run(tag, func(t *testing.T) {
			ctx, _ := newTestContext()
			slide := newTestSlide()
			if err := r.Dispatch(ctx, slide, component("x", tag, "", 0, 0, 300, 150)); err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if slide.GetShapeCount() == 0 {
				t.Error("nothing drawn")
			}
			if len(ctx.Failures) != 0 {
				t.Errorf("failures: %v", ctx.Failures[0])
			}
		})
	}
}

func TestSortForStacking(t *testing.T) {
	withZ := func(id string, z float64) deck.Component {
		c := deck.Component{ID: deck.Text(id)}
		c.Layout.ZIndex = deck.NewNumber(z)
		return c
	}
	withOrder := func(id string, o float64) deck.Component {
		return deck.Component{ID: deck.Text(id), Order: deck.NewNumber(o)}
	}
	in := []deck.Component{
		withZ("top", 10),
		withOrder("second", 2),
		{ID: "plain-a"},
		withZ("bottom", -1),
		{ID: "plain-b"},
		withOrder("first", 1),
	}
	got := SortForStacking(in)

	var ids []string
	for _, c := range got {
		ids = append(ids, c.ID.String())
	}
	want := "bottom,plain-a,plain-b,first,second,top"
	if strings.Join(ids, ",") != want {
		t.Errorf("order = %v, want %s", ids, want)
	}
	if in[0].ID != "top" {
		t.Error("input slice must not be reordered")
	}
}

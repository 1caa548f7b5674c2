package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/render"
	"github.com/VantageDataChat/GoDeck/resolve"
)

func mustParse(t *testing.T, doc string) *deck.Deck {
	t.Helper()
	d, err := deck.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func newTestAssembler() (*Assembler, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewAssembler(log), hook
}

func newTestExporter() (*Exporter, *test.Hook) {
	log, hook := test.NewNullLogger()
	opts := DefaultOptions()
	opts.Loader = pptx.MediaLoaderFunc(func(ctx context.Context, ref string) ([]byte, string, error) {
		return pptx.TransparentPNG, "image/png", nil
	})
	return NewExporter(opts, log), hook
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(b)
	}
	return parts
}

const sampleDeck = `{
	"id": "deck-1",
	"title": "Quarterly Review",
	"author": "Dana",
	"theme": {"colors": {"primary": "#112233", "background": "#FAFAFA"}, "fonts": {"heading": "'Inter', sans-serif", "body": "Roboto"}},
	"sections": [
		{"id": "s1", "title": "Intro", "slideStyle": {"notes": "Say hello"}, "components": [
			{"id": "h", "type": "heading", "data": {"text": "Welcome"}, "layout": {"x": 40, "y": 40, "width": 600, "height": 80}}
		]},
		{"id": "s2", "title": "Numbers", "components": [
			{"id": "c", "type": "chart", "data": {"type": "bar", "labels": ["Q1", "Q2"], "datasets": [{"label": "Revenue", "data": [1, 2]}]}, "layout": {"x": 40, "y": 40, "width": 400, "height": 300}}
		]},
		{"id": "s3", "title": "Only a title", "components": []}
	]
}`

func TestAssembleOneSlidePerSection(t *testing.T) {
	a, _ := newTestAssembler()
	p, report := a.Assemble(mustParse(t, sampleDeck))

	if report.Slides != 3 || p.GetSlideCount() != 3 {
		t.Fatalf("slides = %d/%d, want 3", report.Slides, p.GetSlideCount())
	}
	if report.Components != 2 || report.Placeholders != 0 || len(report.Failures) != 0 {
		t.Errorf("report = %+v", report)
	}

	l := p.GetLayout()
	if l.Name != pptx.LayoutScreen16x9 || l.CX != pptx.Inch(10) {
		t.Errorf("layout = %+v", l)
	}

	props := p.GetDocumentProperties()
	if props.Title != "Quarterly Review" || props.Creator != "Dana" {
		t.Errorf("properties = %+v", props)
	}
	if props.GetCustomPropertyValue(DeckIDProperty) != "deck-1" {
		t.Errorf("deck id property = %v", props.GetCustomPropertyValue(DeckIDProperty))
	}

	theme := p.GetTheme()
	if theme.MajorFont != "Inter" || theme.MinorFont != "Roboto" || theme.Accents[0].RGB() != "112233" {
		t.Errorf("theme = %+v", theme)
	}

	slides := p.GetAllSlides()
	if slides[0].GetNotes() != "Say hello" || slides[0].GetName() != "Intro" {
		t.Errorf("slide 1 name=%q notes=%q", slides[0].GetName(), slides[0].GetNotes())
	}
	if bg := slides[0].GetBackground(); bg == nil || bg.Color.RGB() != "FAFAFA" {
		t.Errorf("theme background not applied: %+v", bg)
	}
	if _, ok := slides[1].GetShapes()[0].(*pptx.ChartShape); !ok {
		t.Errorf("slide 2 should hold a chart, got %T", slides[1].GetShapes()[0])
	}
	if got := slides[2].ExtractText(); got != "Only a title" {
		t.Errorf("title-only section text = %q", got)
	}
}

func TestAssembleThrowingHandlerKeepsSlide(t *testing.T) {
	a, _ := newTestAssembler()
	a.Registry.Register("broken", func(ctx *render.Context, s *pptx.Slide, c deck.Component) error {
		return errors.New("cannot draw")
	})
	d := mustParse(t, `{"sections": [
		{"id": "s1", "components": [
			{"id": "ok", "type": "text", "data": {"text": "fine"}, "layout": {"x": 0, "y": 0, "width": 200, "height": 50}},
			{"id": "bad", "type": "broken", "layout": {"x": 96, "y": 192, "width": 288, "height": 96}}
		]},
		{"id": "s2", "title": "Next"}
	]}`)

	p, report := a.Assemble(d)
	if p.GetSlideCount() != 2 {
		t.Fatalf("slide count = %d, want 2", p.GetSlideCount())
	}
	if len(report.Failures) != 1 || report.Failures[0].ComponentID != "bad" || report.Placeholders != 1 {
		t.Fatalf("report = %+v", report)
	}

	shapes := p.GetAllSlides()[0].GetShapes()
	if len(shapes) != 2 {
		t.Fatalf("shape count = %d, want 2", len(shapes))
	}
	ph := shapes[1]
	if ph.GetOffsetX() != pptx.Inch(1) || ph.GetOffsetY() != pptx.Inch(2) || ph.GetWidth() != pptx.Inch(3) || ph.GetHeight() != pptx.Inch(1) {
		t.Errorf("placeholder at %d,%d %dx%d", ph.GetOffsetX(), ph.GetOffsetY(), ph.GetWidth(), ph.GetHeight())
	}
}

func TestAssembleZeroSections(t *testing.T) {
	a, hook := newTestAssembler()
	p, report := a.Assemble(mustParse(t, `{"id": "d", "title": "Launch Plan", "description": "Draft", "sections": []}`))

	if p.GetSlideCount() != 1 || report.Slides != 1 {
		t.Fatalf("slide count = %d, want 1", p.GetSlideCount())
	}
	text := p.GetActiveSlide().ExtractText()
	if !strings.Contains(text, "Launch Plan") || !strings.Contains(text, "Draft") {
		t.Errorf("title slide text = %q", text)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("assembling alone should not log, got %d entries", len(hook.AllEntries()))
	}

	p, _ = a.Assemble(&deck.Deck{})
	if got := p.GetActiveSlide().ExtractText(); got != UntitledDeck {
		t.Errorf("untitled deck text = %q", got)
	}
	if id, _ := p.GetDocumentProperties().GetCustomPropertyValue(DeckIDProperty).(string); id == "" {
		t.Error("a deck id must be generated for decks without one")
	}
}

func TestAssembleEmptySection(t *testing.T) {
	a, _ := newTestAssembler()
	p, report := a.Assemble(mustParse(t, `{"sections": [{"id": "s1"}]}`))
	if got := p.GetActiveSlide().ExtractText(); got != render.EmptySlideLabel {
		t.Errorf("text = %q", got)
	}
	if report.Placeholders != 1 {
		t.Errorf("placeholders = %d", report.Placeholders)
	}
	if p.GetActiveSlide().GetName() != "Slide 1" {
		t.Errorf("name = %q", p.GetActiveSlide().GetName())
	}
}

func TestAssembleUnknownTypePlaceholder(t *testing.T) {
	a, _ := newTestAssembler()
	p, report := a.Assemble(mustParse(t, `{"sections": [{"id": "s1", "components": [
		{"id": "x", "type": "hologram", "layout": {"x": 0, "y": 0, "width": 100, "height": 100}}
	]}]}`))
	if !strings.Contains(p.GetActiveSlide().ExtractText(), "hologram") {
		t.Errorf("text = %q", p.GetActiveSlide().ExtractText())
	}
	if report.Placeholders != 1 || len(report.Failures) != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestAssembleEmptyDatasets(t *testing.T) {
	a, _ := newTestAssembler()
	p, _ := a.Assemble(mustParse(t, `{"sections": [{"id": "s1", "components": [
		{"id": "c", "type": "chart", "data": {"labels": ["a"], "datasets": []}, "layout": {"x": 0, "y": 0, "width": 300, "height": 200}}
	]}]}`))
	if got := p.GetActiveSlide().ExtractText(); got != render.InvalidChartLabel {
		t.Errorf("text = %q", got)
	}
}

func TestAssembleStackingOrder(t *testing.T) {
	a, _ := newTestAssembler()
	p, _ := a.Assemble(mustParse(t, `{"sections": [{"id": "s1", "components": [
		{"id": "a", "type": "text", "data": {"text": "front"}, "layout": {"x": 0, "y": 0, "width": 100, "height": 40, "zIndex": 5}},
		{"id": "b", "type": "text", "order": 2, "data": {"text": "middle"}, "layout": {"x": 0, "y": 0, "width": 100, "height": 40}},
		{"id": "c", "type": "text", "data": {"text": "back"}, "layout": {"x": 0, "y": 0, "width": 100, "height": 40, "zIndex": "-1"}}
	]}]}`))

	var got []string
	for _, sh := range p.GetActiveSlide().GetShapes() {
		rt, ok := sh.(*pptx.RichTextShape)
		if !ok {
			t.Fatalf("unexpected shape %T", sh)
		}
		got = append(got, rt.GetActiveParagraph().GetText())
	}
	if want := []string{"back", "middle", "front"}; !reflect.DeepEqual(got, want) {
		t.Errorf("shape order = %v, want %v", got, want)
	}
}

func TestAssembleBackgroundCascade(t *testing.T) {
	a, _ := newTestAssembler()
	p, _ := a.Assemble(mustParse(t, `{
		"theme": {"colors": {"background": "#ffffff", "slideBackground": "not-a-color"}},
		"sections": [
			{"id": "s1", "title": "A", "slideStyle": {"backgroundColor": "#0f0", "backgroundImage": "https://example.com/bg.png"}},
			{"id": "s2", "title": "B"}
		]}`))
	slides := p.GetAllSlides()
	if bg := slides[0].GetBackground(); bg == nil || bg.Color.RGB() != "00FF00" {
		t.Errorf("section background not applied: %+v", bg)
	}
	if bg := slides[1].GetBackground(); bg == nil || bg.Color.RGB() != "FFFFFF" {
		t.Errorf("theme background not applied: %+v", bg)
	}
	pic, ok := slides[0].GetShapes()[0].(*pptx.DrawingShape)
	if !ok || pic.GetImageSource() != "https://example.com/bg.png" || pic.GetFit() != pptx.ImageFitCover {
		t.Errorf("background picture missing or wrong: %#v", slides[0].GetShapes()[0])
	}
	if pic.GetWidth() != p.GetLayout().CX || pic.GetHeight() != p.GetLayout().CY {
		t.Error("background picture must cover the slide")
	}
}

func TestAssembleDoesNotMutateDeck(t *testing.T) {
	a, _ := newTestAssembler()
	d := mustParse(t, `{"sections": [{"id": "s1", "components": [
		{"id": "b", "type": "text", "order": 2, "layout": {"width": -5}},
		{"id": "a", "type": "text", "order": 1, "layout": {}}
	]}]}`)
	a.Assemble(d)
	comps := d.Sections[0].Components
	if comps[0].ID != "b" || comps[0].Layout.Width.Or(0) != -5 || d.ID != "" {
		t.Errorf("deck mutated: %+v", comps)
	}
	if resolve.SanitizeLayout(comps[0].Layout).Width.Or(0) != resolve.DefaultWidth {
		t.Error("sanitized copy should use the default width")
	}
}

func TestExportStateSequence(t *testing.T) {
	e, _ := newTestExporter()
	var states []State
	e.OnState = func(s State) { states = append(states, s) }

	var buf bytes.Buffer
	report, err := e.ExportTo(context.Background(), mustParse(t, sampleDeck), &buf)
	if err != nil {
		t.Fatalf("ExportTo: %v", err)
	}
	want := []State{StateValidating, StateAssembling, StateWriting, StateDone}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("states = %v, want %v", states, want)
	}
	if report.Slides != 3 {
		t.Errorf("slides = %d", report.Slides)
	}

	parts := unzip(t, buf.Bytes())
	for _, name := range []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide3.xml",
		"ppt/charts/chart1.xml",
		"ppt/notesSlides/notesSlide1.xml",
		"docProps/custom.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "Welcome") {
		t.Error("slide 1 does not contain the heading text")
	}
}

func TestExportRejectsNilDeck(t *testing.T) {
	e, _ := newTestExporter()
	var states []State
	e.OnState = func(s State) { states = append(states, s) }

	_, err := e.Export(context.Background(), nil, filepath.Join(t.TempDir(), "x"))
	if !errors.Is(err, ErrInvalidDeckData) {
		t.Fatalf("err = %v, want ErrInvalidDeckData", err)
	}
	var exportErr *Error
	if !errors.As(err, &exportErr) || exportErr.Stage != StateValidating {
		t.Errorf("err = %#v", err)
	}
	if want := []State{StateValidating, StateRejected}; !reflect.DeepEqual(states, want) {
		t.Errorf("states = %v", states)
	}
}

func TestExportJSONRejectsNonObjects(t *testing.T) {
	e, _ := newTestExporter()
	for _, doc := range []string{``, `[]`, `"deck"`, `{"sections": [`} {
		if _, err := e.ExportJSON(context.Background(), []byte(doc), filepath.Join(t.TempDir(), "x")); !errors.Is(err, ErrInvalidDeckData) {
			t.Errorf("ExportJSON(%q) err = %v", doc, err)
		}
	}
}

func TestExportWritesFile(t *testing.T) {
	e, _ := newTestExporter()
	dir := t.TempDir()
	_, err := e.ExportJSON(context.Background(), []byte(sampleDeck), filepath.Join(dir, "nested", "review"))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "nested", "review.pptx"))
	if err != nil {
		t.Fatalf("expected review.pptx: %v", err)
	}
	unzip(t, data)
}

func TestExportWriteFailure(t *testing.T) {
	e, _ := newTestExporter()
	var states []State
	e.OnState = func(s State) { states = append(states, s) }

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := e.Export(context.Background(), mustParse(t, sampleDeck), filepath.Join(blocker, "out.pptx"))
	if !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("err = %v, want ErrWriteFailure", err)
	}
	var exportErr *Error
	if !errors.As(err, &exportErr) || exportErr.Stage != StateWriting {
		t.Errorf("err = %#v", err)
	}
	if states[len(states)-1] != StateRejected {
		t.Errorf("last state = %v", states[len(states)-1])
	}
}

func TestExportDeckDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.PPTX")
	if err := ExportDeck(context.Background(), mustParse(t, `{"title": "Plain"}`), path); err != nil {
		t.Fatalf("ExportDeck: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("extension should not be appended twice: %v", err)
	}
	if slide := unzip(t, data)["ppt/slides/slide1.xml"]; !strings.Contains(slide, `type="slidenum"`) {
		t.Error("default export should number slides")
	}
}

func TestAssembleLeavesAssemblerUntouched(t *testing.T) {
	a := &Assembler{}
	p, report := a.Assemble(mustParse(t, `{"sections": [{"id": "s1", "components": [
		{"id": "t", "type": "text", "data": {"text": "hi"}, "layout": {"width": 100, "height": 40}}
	]}]}`))
	if p.GetSlideCount() != 1 || report.Placeholders != 0 {
		t.Errorf("slides = %d placeholders = %d", p.GetSlideCount(), report.Placeholders)
	}
	if a.Registry != nil || a.Log != nil {
		t.Error("Assemble must not fill in the assembler's zero fields")
	}
}

func TestOutputPath(t *testing.T) {
	d := &deck.Deck{Title: "Q3: Plan / Review"}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"appends extension", "out", "out.pptx"},
		{"keeps extension", "out.pptx", "out.pptx"},
		{"other extension", "out.json", "out.json.pptx"},
		{"derived from title", "  ", "Q3- Plan - Review.pptx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.in, d); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if got := SafeFileName(" .. "); got != "deck" {
		t.Errorf("SafeFileName = %q", got)
	}
}

func TestStateString(t *testing.T) {
	if StateWriting.String() != "writing" || State(42).String() != "state(42)" {
		t.Error("unexpected state names")
	}
}

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
)

func dispatch(t *testing.T, ctx *Context, c deck.Component) *pptx.Slide {
	t.Helper()
	slide := newTestSlide()
	if err := NewDefaultRegistry().Dispatch(ctx, slide, c); err != nil {
		t.Fatalf("Dispatch(%s): %v", c.Type, err)
	}
	return slide
}

func firstRun(t *testing.T, shape pptx.Shape) *pptx.TextRun {
	t.Helper()
	var paras []*pptx.Paragraph
	switch sh := shape.(type) {
	case *pptx.RichTextShape:
		paras = sh.GetParagraphs()
	case *pptx.AutoShape:
		paras = sh.GetParagraphs()
	default:
		t.Fatalf("shape %T has no text", shape)
	}
	for _, el := range paras[0].GetElements() {
		if run, ok := el.(*pptx.TextRun); ok {
			return run
		}
	}
	t.Fatal("no text run")
	return nil
}

func TestTextPresets(t *testing.T) {
	theme := deck.Theme{Fonts: deck.ThemeFonts{Heading: "Poppins", Body: "Inter"}, Colors: deck.ThemeColors{Text: "#111827"}}
	tests := []struct {
		typ  string
		size float64
		bold bool
		font string
	}{
		{"heading", 32, true, "Poppins"},
		{"subheading", 24, false, "Poppins"},
		{"text", 16, false, "Inter"},
		{"paragraph", 14, false, "Inter"},
		{"caption", 11, false, "Inter"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			ctx, _ := newTestContext()
			ctx.Theme = theme
			slide := dispatch(t, ctx, component("t", tt.typ, `{"text": "Hello"}`, 0, 0, 400, 80))
			f := firstRun(t, slide.GetShapes()[0]).GetFont()
			if f.Size != tt.size || f.Bold != tt.bold || f.Name != tt.font {
				t.Errorf("font = %v %v %q, want %v %v %q", f.Size, f.Bold, f.Name, tt.size, tt.bold, tt.font)
			}
			if f.Color.RGB() != "111827" {
				t.Errorf("color = %s", f.Color.RGB())
			}
		})
	}
}

func TestTextStyleOverrides(t *testing.T) {
	ctx, _ := newTestContext()
	c := component("t", "heading", `{"content": "<p>One</p><p>Two</p>"}`, 0, 0, 400, 80)
	c.Style = &deck.Style{FontSize: deck.NewNumber(40), Color: "#f00", FontFamily: "Georgia, serif", TextAlign: "center"}
	slide := dispatch(t, ctx, c)

	shape := slide.GetShapes()[0].(*pptx.RichTextShape)
	if len(shape.GetParagraphs()) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(shape.GetParagraphs()))
	}
	f := firstRun(t, shape).GetFont()
	if f.Size != 40 || f.Color.RGB() != "FF0000" || f.Name != "Georgia" {
		t.Errorf("font = %+v", f)
	}
	if shape.GetParagraphs()[1].GetAlignment().Horizontal != pptx.HorizontalCenter {
		t.Error("alignment not applied")
	}
}

func TestTextEmptyShowsTypeLabel(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("t", "caption", `{"text": "   "}`, 0, 0, 100, 20))
	if got := slide.ExtractText(); got != "[caption]" {
		t.Errorf("text = %q", got)
	}
}

func TestTextMarkdownAndLink(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("t", "richText", `{"content": "**Bold** move", "format": "markdown", "url": "https://example.com"}`, 0, 0, 300, 60))
	if got := slide.ExtractText(); got != "Bold move" {
		t.Errorf("text = %q", got)
	}
	if link := firstRun(t, slide.GetShapes()[0]).GetHyperlink(); link == nil || link.URL != "https://example.com" {
		t.Errorf("hyperlink = %+v", link)
	}
}

func TestCodeKeepsIndentation(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("c", "code", `{"code": "func main() {\n\tprintln()\n}", "language": "go"}`, 0, 0, 300, 100))
	shape := slide.GetShapes()[0].(*pptx.RichTextShape)
	if got := shape.GetParagraphs()[1].GetText(); got != "    println()" {
		t.Errorf("second line = %q", got)
	}
	if f := firstRun(t, shape).GetFont(); f.Name != codeFont {
		t.Errorf("font = %q", f.Name)
	}
	if shape.GetFill().Type != pptx.FillSolid {
		t.Error("code block needs a fill")
	}
}

func TestImageSources(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		data    string
		wantSrc string
		wantFit pptx.ImageFit
	}{
		{"url", "image", `{"src": "https://cdn.example.com/a.png"}`, "https://cdn.example.com/a.png", pptx.ImageFitStretch},
		{"bare string", "image", `"photos/a.jpg"`, "photos/a.jpg", pptx.ImageFitStretch},
		{"placeholder host", "image", `{"src": "https://via.placeholder.com/150"}`, "", pptx.ImageFitStretch},
		{"placeholder subdomain", "image", `{"url": "https://www.placehold.co/600x400"}`, "", pptx.ImageFitStretch},
		{"missing", "image", `{}`, "", pptx.ImageFitStretch},
		{"blob", "image", `{"src": "blob:https://app/1234"}`, "", pptx.ImageFitStretch},
		{"logo contains", "logo", `{"src": "logo.svg"}`, "logo.svg", pptx.ImageFitContain},
		{"background covers", "backgroundImage", `{"src": "bg.jpg"}`, "bg.jpg", pptx.ImageFitCover},
		{"explicit fit", "image", `{"src": "a.png", "objectFit": "contain"}`, "a.png", pptx.ImageFitContain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext()
			slide := dispatch(t, ctx, component("i", tt.typ, tt.data, 0, 0, 200, 100))
			pic := slide.GetShapes()[0].(*pptx.DrawingShape)
			if pic.GetImageSource() != tt.wantSrc {
				t.Errorf("source = %q, want %q", pic.GetImageSource(), tt.wantSrc)
			}
			if tt.wantSrc == "" && !bytes.Equal(pic.GetImageData(), pptx.TransparentPNG) {
				t.Error("expected the transparent pixel")
			}
			if pic.GetFit() != tt.wantFit {
				t.Errorf("fit = %q, want %q", pic.GetFit(), tt.wantFit)
			}
		})
	}
}

func TestUsableImageRef(t *testing.T) {
	tests := map[string]bool{
		"":                              false,
		"data:image/png;base64,AAAA":    true,
		"data:image/png;base64":         false,
		"https://dummyimage.com/1":      false,
		"http://placekitten.com/200":    false,
		"https://images.example.com/x":  true,
		"file:///tmp/x.png":             true,
		`C:\images\x.png`:               true,
		"about:blank":                   false,
		"https:///no-host":              false,
		"relative/dir/picture.webp":     true,
		"https://placehold.it.evil.com": true,
	}
	for ref, want := range tests {
		if got := UsableImageRef(ref); got != want {
			t.Errorf("UsableImageRef(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestListVariants(t *testing.T) {
	tests := []struct {
		typ, data, want string
		marker          pptx.BulletType
	}{
		{"list", `{"items": ["a", "b"]}`, "a\nb", pptx.BulletTypeChar},
		{"list", `{"items": ["a", "b"], "ordered": true}`, "a\nb", pptx.BulletTypeNumeric},
		{"numberedList", `{"items": ["a", "", "b"]}`, "a\nb", pptx.BulletTypeNumeric},
		{"bulletList", `["x", {"text": "y"}]`, "x\ny", pptx.BulletTypeChar},
		{"checklist", `{"items": [{"text": "done", "checked": true}, "todo"]}`, "☑ done\n☐ todo", pptx.BulletTypeNone},
	}
	for _, tt := range tests {
		ctx, _ := newTestContext()
		slide := dispatch(t, ctx, component("l", tt.typ, tt.data, 0, 0, 300, 200))
		if got := slide.ExtractText(); got != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.typ, tt.data, got, tt.want)
		}
		for _, para := range slide.GetShapes()[0].(*pptx.RichTextShape).GetParagraphs() {
			got := pptx.BulletTypeNone
			if b := para.GetBullet(); b != nil {
				got = b.Type
			}
			if got != tt.marker {
				t.Errorf("%s %s marker = %v, want %v", tt.typ, tt.data, got, tt.marker)
			}
		}
	}
}

func TestListTitleAndLineBreaks(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("l", "numberedList", `{"title": "Agenda", "items": ["<b>Intro</b>", "<span>Plan<br>Budget</span>"]}`, 0, 0, 300, 200))
	paras := slide.GetShapes()[0].(*pptx.RichTextShape).GetParagraphs()
	if len(paras) != 3 {
		t.Fatalf("paragraphs = %d, want title plus two items", len(paras))
	}
	if paras[0].GetBullet() != nil {
		t.Error("title paragraph must not be numbered")
	}
	if b := paras[1].GetBullet(); b == nil || b.NumFormat != pptx.NumFormatArabicPeriod || b.StartAt != 1 {
		t.Errorf("item bullet = %+v", b)
	}
	if got := slide.ExtractText(); got != "Agenda\nIntro\nPlan\nBudget" {
		t.Errorf("text = %q", got)
	}
	var breaks int
	for _, el := range paras[2].GetElements() {
		if _, ok := el.(*pptx.BreakElement); ok {
			breaks++
		}
	}
	if breaks != 1 {
		t.Errorf("breaks in second item = %d, want 1", breaks)
	}
}

func TestListEmptyPlaceholder(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("l", "list", `{"items": []}`, 0, 0, 300, 200))
	if slide.ExtractText() != "No items" || ctx.Placeholders != 1 {
		t.Errorf("text=%q placeholders=%d", slide.ExtractText(), ctx.Placeholders)
	}
}

func TestQuoteSplitsForAuthor(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("q", "quote", `{"text": "Stay hungry", "author": "Steve", "role": "CEO"}`, 0, 0, 400, 200))
	shapes := slide.GetShapes()
	if len(shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(shapes))
	}
	total := shapes[0].GetHeight() + shapes[1].GetHeight()
	if shapes[0].GetHeight()*10 < total*6 || shapes[0].GetHeight()*10 > total*8 {
		t.Errorf("quote height %d of %d is not about 70%%", shapes[0].GetHeight(), total)
	}
	if got := slide.ExtractText(); got != "“Stay hungry”\n— Steve, CEO" {
		t.Errorf("text = %q", got)
	}

	ctx, _ = newTestContext()
	slide = dispatch(t, ctx, component("q", "testimonial", `{"quote": "Great"}`, 0, 0, 400, 200))
	if slide.GetShapeCount() != 2 {
		t.Errorf("testimonial without author = %d shapes, want panel and quote", slide.GetShapeCount())
	}
}

func chartOf(t *testing.T, slide *pptx.Slide) *pptx.ChartShape {
	t.Helper()
	cs, ok := slide.GetShapes()[0].(*pptx.ChartShape)
	if !ok {
		t.Fatalf("first shape is %T, want chart", slide.GetShapes()[0])
	}
	return cs
}

func TestChartInvalidData(t *testing.T) {
	for _, data := range []string{``, `{}`, `{"datasets": []}`, `{"labels": ["a"], "datasets": [{"data": []}]}`, `"bar"`} {
		ctx, _ := newTestContext()
		slide := dispatch(t, ctx, component("ch", "chart", data, 0, 0, 400, 300))
		if got := slide.ExtractText(); got != InvalidChartLabel {
			t.Errorf("data %q: text = %q", data, got)
		}
	}
}

func TestChartKinds(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"bar", "bar"},
		{"line", "line"},
		{"pie", "pie"},
		{"polarArea", "pie"},
		{"doughnut", "doughnut"},
		{"radar", "radar"},
		{"scatter", "scatter"},
		{"area", "area"},
		{"bar3d", "bar3D"},
		{"bubble", "bubble"},
		{"sankey", "bar"},
		{"", "bar"},
	}
	for _, tt := range tests {
		ctx, _ := newTestContext()
		data := `{"type": "` + tt.name + `", "labels": ["Q1", "Q2"], "datasets": [{"label": "Sales", "data": [1, 2]}]}`
		slide := dispatch(t, ctx, component("ch", "chart", data, 0, 0, 400, 300))
		if got := chartOf(t, slide).GetPlotArea().GetType().GetChartTypeName(); got != tt.want {
			t.Errorf("type %q charted as %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestChartSeries(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.Theme.Colors = deck.ThemeColors{Primary: "#111111", Secondary: "#222222", Accent: "#333333", Text: "#444444"}
	data := `{
		"title": "Revenue",
		"data": {
			"labels": ["Q1"],
			"datasets": [
				{"label": "A", "data": [1, "2", null]},
				{"data": [4, 5, 6]},
				{"label": "C", "data": [7], "backgroundColor": "#abcdef"}
			]
		}
	}`
	slide := dispatch(t, ctx, component("ch", "chart", data, 0, 0, 400, 300))
	cs := chartOf(t, slide)
	series := cs.GetPlotArea().GetType().GetSeries()
	if len(series) != 3 {
		t.Fatalf("series = %d", len(series))
	}
	if got := strings.Join(series[0].Categories, ","); got != "Q1,2,3" {
		t.Errorf("categories = %s", got)
	}
	if series[0].Values[1] != 2 || series[0].Values[2] != 0 {
		t.Errorf("values = %v", series[0].Values)
	}
	if series[1].Title != "Series 2" {
		t.Errorf("default title = %q", series[1].Title)
	}
	for i, want := range []string{"111111", "222222", "ABCDEF"} {
		if got := series[i].FillColor.RGB(); got != want {
			t.Errorf("series %d color = %s, want %s", i, got, want)
		}
	}
	if !cs.GetTitle().Visible || cs.GetTitle().Text != "Revenue" {
		t.Errorf("title = %+v", cs.GetTitle())
	}
	if !cs.GetLegend().Visible {
		t.Error("multi-series chart should show a legend")
	}
}

func TestChartPieColorsCycleThePalette(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.Theme.Colors = deck.ThemeColors{Primary: "111111", Secondary: "222222", Accent: "333333", Text: "444444"}
	data := `{"type": "pie", "labels": ["a","b","c","d","e"], "datasets": [{"data": [1,2,3,4,5], "backgroundColor": ["#ff0000"]}]}`
	slide := dispatch(t, ctx, component("ch", "chart", data, 0, 0, 300, 300))
	series := chartOf(t, slide).GetPlotArea().GetType().GetSeries()[0]
	var got []string
	for _, c := range series.PointColors {
		got = append(got, c.RGB())
	}
	if strings.Join(got, ",") != "FF0000,222222,333333,444444,111111" {
		t.Errorf("point colors = %v", got)
	}
}

func TestChartScatterPoints(t *testing.T) {
	ctx, _ := newTestContext()
	data := `{"type": "bubble", "datasets": [{"data": [{"x": 1, "y": 2, "r": 3}, {"x": 4, "y": 5}]}]}`
	slide := dispatch(t, ctx, component("ch", "chart", data, 0, 0, 300, 300))
	s := chartOf(t, slide).GetPlotArea().GetType().GetSeries()[0]
	if s.XValues[1] != 4 || s.Values[1] != 5 || s.Sizes[0] != 3 || s.Sizes[1] != 1 {
		t.Errorf("xy series = %+v", s)
	}
}

func TestShapes(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("s", "shape", `{"shape": "circle", "text": "Hi"}`, 0, 0, 200, 100))
	auto := slide.GetShapes()[0].(*pptx.AutoShape)
	if auto.GetAutoShapeType() != pptx.AutoShapeEllipse {
		t.Errorf("geometry = %s", auto.GetAutoShapeType())
	}
	if auto.GetWidth() != auto.GetHeight() {
		t.Error("circle must be square")
	}

	for name, want := range map[string]pptx.AutoShapeType{
		"roundedRectangle": pptx.AutoShapeRoundedRect,
		"star":             pptx.AutoShapeStar5,
		"arrow":            pptx.AutoShapeArrowRight,
		"hexagon":          pptx.AutoShapeHexagon,
		"diamond":          pptx.AutoShapeDiamond,
	} {
		slide := dispatch(t, ctx, component("s", "shape", `{"shape": "`+name+`"}`, 0, 0, 200, 100))
		if got := slide.GetShapes()[0].(*pptx.AutoShape).GetAutoShapeType(); got != want {
			t.Errorf("%s = %s, want %s", name, got, want)
		}
	}

	ctx, _ = newTestContext()
	slide = dispatch(t, ctx, component("s", "shape", `{"shape": "cloudburst"}`, 0, 0, 200, 100))
	if got := slide.ExtractText(); got != "Unsupported shape: cloudburst" {
		t.Errorf("text = %q", got)
	}
}

func TestShapeRotationAndCardShadow(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("s", "shape", `{"shape": "triangle", "rotation": "-90"}`, 0, 0, 100, 100))
	if got := slide.GetShapes()[0].GetRotation(); got != 270 {
		t.Errorf("rotation = %d, want 270", got)
	}

	slide = dispatch(t, ctx, component("m", "teamMember", `{"name": "Ada Lovelace"}`, 0, 0, 300, 120))
	card := slide.GetShapes()[0].(*pptx.AutoShape)
	if !card.GetShadow().Visible {
		t.Error("team member card should cast a shadow")
	}
}

func TestButtonLink(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("b", "button", `{"text": "Buy", "url": "https://shop.example.com"}`, 0, 0, 120, 40))
	auto := slide.GetShapes()[0].(*pptx.AutoShape)
	if auto.GetAutoShapeType() != pptx.AutoShapeRoundedRect {
		t.Error("button should be a rounded rectangle")
	}
	if auto.GetHyperlink() == nil || auto.GetHyperlink().URL != "https://shop.example.com" {
		t.Error("button shape hyperlink missing")
	}
	if run := firstRun(t, auto); run.GetText() != "Buy" || run.GetHyperlink() == nil {
		t.Error("button label should be linked")
	}
}

func TestDividerOrientation(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("d", "divider", "", 0, 0, 400, 10))
	if line := slide.GetShapes()[0]; line.GetHeight() != 0 || line.GetWidth() == 0 {
		t.Errorf("horizontal divider = %dx%d", line.GetWidth(), line.GetHeight())
	}
	slide = dispatch(t, ctx, component("d", "divider", `{"style": "dashed"}`, 0, 0, 10, 400))
	line := slide.GetShapes()[0].(*pptx.LineShape)
	if line.GetWidth() != 0 || line.GetHeight() == 0 {
		t.Errorf("vertical divider = %dx%d", line.GetWidth(), line.GetHeight())
	}
	if line.GetLineStyle() != pptx.BorderDash {
		t.Errorf("style = %s", line.GetLineStyle())
	}
}

func TestLinkComponents(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("v", "video", `{"url": "https://youtu.be/x", "title": "Demo"}`, 0, 0, 320, 180))
	if got := slide.ExtractText(); got != "▶ Demo" {
		t.Errorf("text = %q", got)
	}
	if firstRun(t, slide.GetShapes()[0]).GetHyperlink().URL != "https://youtu.be/x" {
		t.Error("video link missing")
	}
}

func TestTable(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.Theme.Colors.Primary = "#0000aa"
	slide := dispatch(t, ctx, component("t", "table", `{"headers": ["Name", "Score"], "rows": [["Ann", 9], ["Bob"]]}`, 0, 0, 400, 200))
	table := slide.GetShapes()[0].(*pptx.TableShape)
	if table.GetNumRows() != 3 || table.GetNumCols() != 2 {
		t.Fatalf("table = %dx%d", table.GetNumRows(), table.GetNumCols())
	}
	if fill := table.GetCell(0, 1).GetFill(); fill.Type != pptx.FillSolid || fill.Color.RGB() != "0000AA" {
		t.Errorf("header fill = %+v", fill)
	}
	if got := slide.ExtractText(); got != "Name\nScore\nAnn\n9\nBob" {
		t.Errorf("text = %q", got)
	}
}

func TestBusinessBlocks(t *testing.T) {
	ctx, _ := newTestContext()
	slide := dispatch(t, ctx, component("m", "metric", `{"value": 42, "suffix": "%", "label": "Growth", "change": "-3%"}`, 0, 0, 200, 150))
	if got := slide.ExtractText(); got != "42%\nGrowth\n-3%" {
		t.Errorf("metric text = %q", got)
	}
	change := firstRun(t, slide.GetShapes()[2])
	if change.GetFont().Color.RGB() != negativeColor {
		t.Errorf("negative change color = %s", change.GetFont().Color.RGB())
	}

	slide = dispatch(t, ctx, component("tl", "timeline", `{"items": [{"date": "2024", "title": "Launch"}, {"date": "2025", "title": "Scale"}]}`, 0, 0, 600, 200))
	if got := slide.ExtractText(); got != "2024\nLaunch\n2025\nScale" {
		t.Errorf("timeline text = %q", got)
	}

	slide = dispatch(t, ctx, component("sw", "swot", `{"strengths": ["Brand"], "threats": ["Rivals"]}`, 0, 0, 600, 400))
	if got := slide.ExtractText(); got != "Strengths\nBrand\nWeaknesses\nOpportunities\nThreats\nRivals" {
		t.Errorf("swot text = %q", got)
	}

	slide = dispatch(t, ctx, component("p", "progress", `{"value": 30, "max": 40, "label": "Done"}`, 0, 0, 400, 60))
	if !strings.Contains(slide.ExtractText(), "Done  75%") || slide.GetShapeCount() != 3 {
		t.Errorf("progress = %q with %d shapes", slide.ExtractText(), slide.GetShapeCount())
	}

	slide = dispatch(t, ctx, component("tm", "teamMember", `{"name": "Ada Lovelace", "role": "Engineer"}`, 0, 0, 400, 150))
	if got := slide.ExtractText(); got != "AL\nAda Lovelace\nEngineer" {
		t.Errorf("team text = %q", got)
	}
}

func TestGenericKnownTags(t *testing.T) {
	for _, tag := range []string{"mindmap", "diagram", "form", "map"} {
		ctx, _ := newTestContext()
		slide := dispatch(t, ctx, component("g", tag, "", 0, 0, 200, 100))
		if slide.ExtractText() != tag || ctx.Placeholders != 1 {
			t.Errorf("%s: text=%q placeholders=%d", tag, slide.ExtractText(), ctx.Placeholders)
		}
	}
}

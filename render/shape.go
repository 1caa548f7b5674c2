package render

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// shapeGeometries maps shape names to preset geometries.
var shapeGeometries = map[string]pptx.AutoShapeType{
	"rectangle":        pptx.AutoShapeRectangle,
	"rect":             pptx.AutoShapeRectangle,
	"square":           pptx.AutoShapeRectangle,
	"roundedrectangle": pptx.AutoShapeRoundedRect,
	"roundrect":        pptx.AutoShapeRoundedRect,
	"circle":           pptx.AutoShapeEllipse,
	"ellipse":          pptx.AutoShapeEllipse,
	"oval":             pptx.AutoShapeEllipse,
	"triangle":         pptx.AutoShapeTriangle,
	"diamond":          pptx.AutoShapeDiamond,
	"star":             pptx.AutoShapeStar5,
	"arrow":            pptx.AutoShapeArrowRight,
	"hexagon":          pptx.AutoShapeHexagon,
}

// squareShapes keep equal sides, centered in the layout box.
var squareShapes = map[string]bool{"square": true, "circle": true}

func centeredSquare(b resolve.Box) resolve.Box {
	side := min(b.W, b.H)
	return resolve.Box{X: b.X + (b.W-side)/2, Y: b.Y + (b.H-side)/2, W: side, H: side}
}

// Shape renders a preset geometry. Unknown shape names draw a placeholder.
func Shape(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Shape     deck.Text   `json:"shape"`
		ShapeType deck.Text   `json:"shapeType"`
		Fill      deck.Text   `json:"fill"`
		Color     deck.Text   `json:"color"`
		Text      deck.Text   `json:"text"`
		URL       deck.Text   `json:"url"`
		Rotation  deck.Number `json:"rotation"`
	}
	decodePayload(c, &p)

	name := resolve.Cascade(p.Shape.String(), p.ShapeType.String(), "rectangle")
	key := normalizeTag(name)
	box := resolve.BoxFromLayout(c.Layout)
	geometry, ok := shapeGeometries[key]
	if !ok {
		Placeholder(ctx, s, box, "Unsupported shape: "+name)
		return nil
	}
	if squareShapes[key] {
		box = centeredSquare(box)
	}

	st := c.StyleOrEmpty()
	fill := resolve.Cascade(st.BackgroundColor.String(), p.Fill.String(), p.Color.String(), ctx.primary())
	o := ctx.textOptions(st, resolve.FontBody, 16, false)
	o.color = resolve.Color(st.Color.String(), "", defaultBackground)
	o.align = resolve.Alignment(st.TextAlign, pptx.HorizontalCenter)
	o.anchor = resolve.Anchor(st.VerticalAlign, pptx.TextAnchorMiddle)

	shape := addBox(s, box, geometry, fill, p.Text.Trimmed(), o)
	shape.SetName(name)
	shape.SetFill(pptx.NewFill().SetSolid(resolve.Color(fill, "", defaultPrimary).WithAlpha(resolve.Opacity(st.Opacity))))
	applyBorder(&shape.BaseShape, st)
	if deg, ok := p.Rotation.Float(); ok {
		shape.SetRotation(int(math.Round(deg)))
	}
	if url := p.URL.Trimmed(); url != "" {
		shape.SetHyperlink(pptx.NewHyperlink(url))
	}
	return nil
}

// applyBorder applies only the outline part of a component style.
func applyBorder(base *pptx.BaseShape, st deck.Style) {
	applyBoxStyle(base, deck.Style{
		BorderColor: st.BorderColor,
		BorderWidth: st.BorderWidth,
		BorderStyle: st.BorderStyle,
	})
}

// Button renders a rounded rectangle with a centered label, linked when a
// url is given.
func Button(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Text    deck.Text `json:"text"`
		Label   deck.Text `json:"label"`
		URL     deck.Text `json:"url"`
		Href    deck.Text `json:"href"`
		Link    deck.Text `json:"link"`
		Variant deck.Text `json:"variant"`
	}
	if !decodePayload(c, &p) {
		_ = p.Text.UnmarshalJSON(c.Data)
	}
	label := resolve.Cascade(p.Text.String(), p.Label.String(), "Button")
	target := resolve.Cascade(p.URL.String(), p.Href.String(), p.Link.String())

	st := c.StyleOrEmpty()
	fill := resolve.Cascade(st.BackgroundColor.String(), ctx.primary())
	ink := resolve.Cascade(st.Color.String(), defaultBackground)
	outline := strings.EqualFold(p.Variant.Trimmed(), "outline")
	if strings.EqualFold(p.Variant.Trimmed(), "secondary") {
		fill = resolve.Cascade(st.BackgroundColor.String(), ctx.secondary())
	}
	if outline {
		ink = resolve.Cascade(st.Color.String(), ctx.primary())
	}

	o := ctx.textOptions(st, resolve.FontBody, 16, true)
	o.color = resolve.Color(ink, "", defaultBackground)
	o.align = pptx.HorizontalCenter
	o.anchor = pptx.TextAnchorMiddle

	shape := addBox(s, resolve.BoxFromLayout(c.Layout), pptx.AutoShapeRoundedRect, fill, label, o)
	shape.SetName("button")
	if outline {
		shape.SetFill(pptx.NewFill())
		shape.GetBorder().SetSolid(pptx.Point(1.5), resolve.Color(fill, "", defaultPrimary))
	} else {
		applyBorder(&shape.BaseShape, st)
	}
	if target != "" {
		link := pptx.NewHyperlink(target)
		shape.SetHyperlink(link)
		for _, el := range shape.GetActiveParagraph().GetElements() {
			if run, ok := el.(*pptx.TextRun); ok {
				run.SetHyperlink(link)
			}
		}
	}
	return nil
}

// Divider renders a straight line, horizontal when the layout is wider than
// tall and vertical otherwise.
func Divider(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Color     deck.Text   `json:"color"`
		Thickness deck.Number `json:"thickness"`
		Style     deck.Text   `json:"style"`
	}
	decodePayload(c, &p)

	st := c.StyleOrEmpty()
	box := resolve.BoxFromLayout(c.Layout)
	line := s.CreateLineShape()
	line.SetName("divider")
	if box.W >= box.H {
		line.SetBounds(box.X, box.Y+box.H/2, box.W, 0)
	} else {
		line.SetBounds(box.X+box.W/2, box.Y, 0, box.H)
	}

	color := resolve.Cascade(p.Color.String(), st.BorderColor.String(), st.BackgroundColor.String())
	line.SetLineColor(resolve.Color(color, "", lineColor))
	width := p.Thickness.Or(st.BorderWidth.Or(2))
	if width <= 0 {
		width = 2
	}
	line.SetLineWidth(pptx.Pixel(width))
	line.SetLineStyle(resolve.BorderStyle(deck.Text(resolve.Cascade(p.Style.String(), st.BorderStyle.String()))))
	if line.GetLineStyle() == pptx.BorderNone {
		line.SetLineStyle(pptx.BorderSolid)
	}
	return nil
}

// Icon renders an oval badge with a glyph and an optional label underneath.
func Icon(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Name  deck.Text `json:"name"`
		Icon  deck.Text `json:"icon"`
		Glyph deck.Text `json:"glyph"`
		Emoji deck.Text `json:"emoji"`
		Label deck.Text `json:"label"`
		Color deck.Text `json:"color"`
	}
	if !decodePayload(c, &p) {
		_ = p.Name.UnmarshalJSON(c.Data)
	}
	name := resolve.Cascade(p.Name.String(), p.Icon.String())
	glyph := resolve.Cascade(p.Glyph.String(), p.Emoji.String(), initial(name), "★")

	st := c.StyleOrEmpty()
	box := resolve.BoxFromLayout(c.Layout)
	badge := box
	var labelBox resolve.Box
	if !p.Label.IsBlank() {
		badge, labelBox = box.SplitV(0.75)
	}
	badge = centeredSquare(badge)

	o := ctx.textOptions(st, resolve.FontBody, 20, true)
	o.color = resolve.Color(st.Color.String(), "", defaultBackground)
	o.align = pptx.HorizontalCenter
	o.anchor = pptx.TextAnchorMiddle
	fill := resolve.Cascade(st.BackgroundColor.String(), p.Color.String(), ctx.primary())

	shape := addBox(s, badge, pptx.AutoShapeEllipse, fill, glyph, o)
	shape.SetName(resolve.Cascade(name, "icon"))
	if name != "" {
		shape.SetDescription(name)
	}

	if !p.Label.IsBlank() {
		lo := ctx.plainText(12, ctx.textColor())
		lo.align = pptx.HorizontalCenter
		addTextBox(s, labelBox, p.Label.Trimmed(), lo).SetName("icon label")
	}
	return nil
}

// initial returns the upper-cased first letter of an icon name.
func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

var calloutColors = map[string][2]string{
	"info":    {"DBEAFE", "1E40AF"},
	"warning": {"FEF3C7", "92400E"},
	"success": {"D1FAE5", "065F46"},
	"error":   {"FEE2E2", "991B1B"},
	"danger":  {"FEE2E2", "991B1B"},
}

// Callout renders a tinted box with a bold title and body text.
func Callout(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Title   deck.Text `json:"title"`
		Text    deck.Text `json:"text"`
		Content deck.Text `json:"content"`
		Variant deck.Text `json:"variant"`
		Kind    deck.Text `json:"type"`
	}
	if !decodePayload(c, &p) {
		_ = p.Text.UnmarshalJSON(c.Data)
	}
	colors, ok := calloutColors[normalizeTag(resolve.Cascade(p.Variant.String(), p.Kind.String()))]
	if !ok {
		colors = calloutColors["info"]
	}

	st := c.StyleOrEmpty()
	fill := resolve.Cascade(st.BackgroundColor.String(), colors[0])
	ink := resolve.Cascade(st.Color.String(), colors[1])

	body := deck.FlattenString(resolve.Cascade(p.Text.String(), p.Content.String()), "")
	o := ctx.textOptions(st, resolve.FontBody, 14, false)
	o.color = resolve.Color(ink, "", defaultTextColor)
	o.anchor = resolve.Anchor(st.VerticalAlign, pptx.TextAnchorTop)

	shape := s.CreateAutoShape()
	resolve.BoxFromLayout(c.Layout).Apply(shape)
	shape.SetName("callout")
	shape.SetSolidFill(resolve.Color(fill, "", lightColor))
	shape.GetBorder().SetSolid(pptx.Point(1), resolve.Color(ink, "", lineColor))
	shape.SetTextAnchor(o.anchor)

	var lines []string
	if !p.Title.IsBlank() {
		lines = append(lines, p.Title.Trimmed())
	}
	if body != "" {
		lines = append(lines, strings.Split(body, "\n")...)
	}
	if len(lines) == 0 {
		lines = []string{"[callout]"}
	}
	runs := writeLines(shape, lines, o)
	if !p.Title.IsBlank() {
		styleRun(runs[0], o.with(func(t *textOptions) {
			t.bold = true
			t.size = o.size + 2
		}))
	}
	return nil
}

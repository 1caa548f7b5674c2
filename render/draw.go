package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// Fallback palette used when neither the component nor the theme sets a color.
const (
	defaultFont       = "Calibri"
	defaultTextColor  = "1F2937"
	defaultPrimary    = "3B82F6"
	defaultSecondary  = "10B981"
	defaultAccent     = "F59E0B"
	defaultBackground = "FFFFFF"
	mutedColor        = "6B7280"
	lightColor        = "F3F4F6"
	lineColor         = "D1D5DB"
)

// decodePayload decodes the component data into v. Fields with the wrong
// shape are left zero. It reports whether data was a JSON object.
func decodePayload(c deck.Component, v any) bool {
	raw := bytes.TrimSpace(c.Data)
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}
	_ = json.Unmarshal(raw, v)
	return true
}

// decodeRawList decodes component data that is a bare JSON array.
func decodeRawList(c deck.Component, v any) bool {
	raw := bytes.TrimSpace(c.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return false
	}
	_ = json.Unmarshal(raw, v)
	return true
}

func (ctx *Context) primary() string {
	return resolve.Cascade(ctx.Theme.Colors.Primary.String(), defaultPrimary)
}

func (ctx *Context) secondary() string {
	return resolve.Cascade(ctx.Theme.Colors.Secondary.String(), defaultSecondary)
}

func (ctx *Context) accent() string {
	return resolve.Cascade(ctx.Theme.Colors.Accent.String(), defaultAccent)
}

func (ctx *Context) textColor() string {
	return resolve.Cascade(ctx.Theme.Colors.Text.String(), defaultTextColor)
}

func (ctx *Context) font(component deck.Text, kind resolve.FontKind) string {
	return resolve.ResolveFontFamily(component.String(), ctx.Theme.Fonts, kind, defaultFont)
}

// textOptions is the resolved run and paragraph formatting of a text region.
type textOptions struct {
	font   string
	size   float64
	bold   bool
	italic bool
	color  pptx.Color
	align  pptx.HorizontalAlignment
	anchor pptx.TextAnchorType
}

// textOptions resolves a component style over the given defaults.
func (ctx *Context) textOptions(st deck.Style, kind resolve.FontKind, size float64, bold bool) textOptions {
	return textOptions{
		font:   ctx.font(st.FontFamily, kind),
		size:   resolve.ParseFontSize(st.FontSize, size),
		bold:   bold || resolve.IsBold(st.FontWeight),
		italic: resolve.IsItalic(st.FontStyle),
		color:  resolve.Color(st.Color.String(), ctx.Theme.Colors.Text.String(), defaultTextColor),
		align:  resolve.Alignment(st.TextAlign, pptx.HorizontalLeft),
		anchor: resolve.Anchor(st.VerticalAlign, pptx.TextAnchorTop),
	}
}

// plainText returns options for secondary text drawn by composite handlers.
func (ctx *Context) plainText(size float64, color string) textOptions {
	return textOptions{
		font:   ctx.font("", resolve.FontBody),
		size:   size,
		color:  resolve.Color(color, "", defaultTextColor),
		align:  pptx.HorizontalLeft,
		anchor: pptx.TextAnchorTop,
	}
}

func (o textOptions) with(f func(*textOptions)) textOptions {
	f(&o)
	return o
}

type paragraphBody interface {
	GetActiveParagraph() *pptx.Paragraph
	CreateParagraph() *pptx.Paragraph
}

// writeLines writes one paragraph per line into body.
func writeLines(body paragraphBody, lines []string, o textOptions) []*pptx.TextRun {
	runs := make([]*pptx.TextRun, 0, len(lines))
	for i, line := range lines {
		p := body.GetActiveParagraph()
		if i > 0 {
			p = body.CreateParagraph()
		}
		p.GetAlignment().SetHorizontal(o.align)
		runs = append(runs, styleRun(p.CreateTextRun(line), o))
	}
	return runs
}

func styleRun(r *pptx.TextRun, o textOptions) *pptx.TextRun {
	r.GetFont().
		SetName(o.font).
		SetSize(o.size).
		SetBold(o.bold).
		SetItalic(o.italic).
		SetColor(o.color)
	return r
}

// addTextBox draws a word-wrapped text box that shrinks its text on overflow.
func addTextBox(s *pptx.Slide, box resolve.Box, text string, o textOptions) *pptx.RichTextShape {
	shape := s.CreateRichTextShape()
	box.Apply(shape)
	shape.SetWordWrap(true)
	shape.SetAutoFit(pptx.AutoFitNormal)
	shape.SetTextAnchor(o.anchor)
	writeLines(shape, strings.Split(text, "\n"), o)
	return shape
}

// addBox draws a filled auto shape with optional centered text.
func addBox(s *pptx.Slide, box resolve.Box, kind pptx.AutoShapeType, fill string, text string, o textOptions) *pptx.AutoShape {
	shape := s.CreateAutoShape().SetAutoShapeType(kind)
	box.Apply(shape)
	if fill != "" {
		shape.SetSolidFill(resolve.Color(fill, "", defaultBackground))
	}
	if text != "" {
		shape.SetTextAnchor(o.anchor)
		writeLines(shape, strings.Split(text, "\n"), o)
	}
	return shape
}

// applyBoxStyle applies background, border and opacity from the component
// style to a shape outline.
func applyBoxStyle(base *pptx.BaseShape, st deck.Style) {
	opacity := resolve.Opacity(st.Opacity)
	if bg := resolve.ResolveColor(st.BackgroundColor.String(), "", ""); bg != "" && pptx.IsValidHex(bg) {
		base.GetFill().SetSolid(pptx.NewColor(bg).WithAlpha(opacity))
	}
	width, hasWidth := st.BorderWidth.Float()
	if st.BorderColor.IsBlank() && (!hasWidth || width <= 0) {
		return
	}
	if !hasWidth || width <= 0 {
		width = 1
	}
	style := resolve.BorderStyle(st.BorderStyle)
	border := base.GetBorder()
	border.SetSolid(pptx.Pixel(width), resolve.Color(st.BorderColor.String(), "", lineColor))
	border.Style = style
}

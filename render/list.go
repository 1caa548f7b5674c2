package render

import (
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

const (
	bulletChar      = "•"
	bulletFont      = "Arial"
	checkedPrefix   = "☑ "
	uncheckedPrefix = "☐ "
)

type listPayload struct {
	Items   []deck.ListItem `json:"items"`
	Ordered deck.Bool       `json:"ordered"`
	Title   deck.Text       `json:"title"`
}

type listStyle int

const (
	listBullets listStyle = iota
	listNumbers
	listChecks
)

func listStyleFor(tag string, ordered bool) listStyle {
	switch normalizeTag(tag) {
	case "numberedlist":
		return listNumbers
	case "checklist":
		return listChecks
	}
	if ordered {
		return listNumbers
	}
	return listBullets
}

// listItems returns the non-blank item texts. Checklist items carry their
// box glyph; bullets and numbers are paragraph markers.
func listItems(items []deck.ListItem, style listStyle) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		text := deck.FlattenString(item.Text.Trimmed(), "")
		if text == "" {
			continue
		}
		if style == listChecks {
			if item.Checked {
				text = checkedPrefix + text
			} else {
				text = uncheckedPrefix + text
			}
		}
		lines = append(lines, text)
	}
	return lines
}

// listMarker returns the paragraph bullet for style, nil for checklists.
func listMarker(style listStyle, color pptx.Color) *pptx.Bullet {
	switch style {
	case listNumbers:
		return pptx.NewBullet().SetNumericBullet(pptx.NumFormatArabicPeriod, 1).SetColor(color)
	case listBullets:
		return pptx.NewBullet().SetCharBullet(bulletChar, bulletFont).SetColor(color)
	}
	return nil
}

type listBody interface {
	paragraphBody
	CreateTextRun(text string) *pptx.TextRun
	CreateBreak() *pptx.BreakElement
}

// writeItems writes one marked paragraph per item after the paragraphs
// already in body. Line breaks inside an item stay in its paragraph.
func writeItems(body listBody, items []string, style listStyle, o textOptions) {
	for i, item := range items {
		p := body.GetActiveParagraph()
		if i > 0 || len(p.GetElements()) > 0 {
			p = body.CreateParagraph()
		}
		p.GetAlignment().SetHorizontal(o.align)
		p.SetBullet(listMarker(style, o.color))
		for j, line := range strings.Split(item, "\n") {
			if j > 0 {
				body.CreateBreak()
			}
			styleRun(body.CreateTextRun(strings.TrimSpace(line)), o)
		}
	}
}

// List renders list, bulletList, numberedList and checklist components with
// one paragraph per item.
func List(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p listPayload
	if !decodePayload(c, &p) {
		// a bare array of items
		var items []deck.ListItem
		_ = decodeRawList(c, &items)
		p.Items = items
	}

	box := resolve.BoxFromLayout(c.Layout)
	style := listStyleFor(c.Type.String(), bool(p.Ordered))
	items := listItems(p.Items, style)
	if len(items) == 0 {
		Placeholder(ctx, s, box, "No items")
		return nil
	}

	st := c.StyleOrEmpty()
	o := ctx.textOptions(st, resolve.FontBody, 16, false)
	shape := s.CreateRichTextShape()
	box.Apply(shape)
	shape.SetWordWrap(true)
	shape.SetAutoFit(pptx.AutoFitNormal)
	shape.SetTextAnchor(o.anchor)
	if !p.Title.IsBlank() {
		writeLines(shape, []string{p.Title.Trimmed()}, o.with(func(t *textOptions) {
			t.bold = true
			t.font = ctx.font(st.FontFamily, resolve.FontHeading)
		}))
	}
	writeItems(shape, items, style, o)
	finishList(shape, st)
	return nil
}

func finishList(shape *pptx.RichTextShape, st deck.Style) {
	shape.SetName("list")
	for _, para := range shape.GetParagraphs() {
		para.SetSpaceAfter(4)
	}
	applyBoxStyle(&shape.BaseShape, st)
}

package render

import (
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// quoteSplit is the share of the box given to the quote when an author line
// is present.
const quoteSplit = 0.7

type quotePayload struct {
	Quote   deck.Text `json:"quote"`
	Text    deck.Text `json:"text"`
	Content deck.Text `json:"content"`
	Author  deck.Text `json:"author"`
	Role    deck.Text `json:"role"`
	Company deck.Text `json:"company"`
}

func (p quotePayload) attribution() string {
	parts := make([]string, 0, 2)
	for _, t := range []deck.Text{p.Role, p.Company} {
		if !t.IsBlank() {
			parts = append(parts, t.Trimmed())
		}
	}
	line := p.Author.Trimmed()
	if len(parts) > 0 {
		line += ", " + strings.Join(parts, ", ")
	}
	return "— " + line
}

// Quote renders quote and testimonial components.
func Quote(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p quotePayload
	if !decodePayload(c, &p) {
		var t deck.Text
		_ = t.UnmarshalJSON(c.Data)
		p.Quote = t
	}
	quote := deck.FlattenString(resolve.Cascade(p.Quote.String(), p.Text.String(), p.Content.String()), "")
	if quote == "" {
		quote = "[" + resolve.Cascade(c.Type.String(), "quote") + "]"
	} else {
		quote = "“" + quote + "”"
	}

	st := c.StyleOrEmpty()
	box := resolve.BoxFromLayout(c.Layout)
	if normalizeTag(c.Type.String()) == "testimonial" && st.BackgroundColor.IsBlank() {
		panel := addBox(s, box, pptx.AutoShapeRoundedRect, lightColor, "", textOptions{})
		panel.SetName("testimonial")
		panel.GetShadow().SetVisible(true)
	}

	quoteBox := box
	var authorBox resolve.Box
	hasAuthor := !p.Author.IsBlank()
	if hasAuthor {
		quoteBox, authorBox = box.SplitV(quoteSplit)
	}

	o := ctx.textOptions(st, resolve.FontBody, 20, false)
	o.italic = true
	if st.TextAlign.IsBlank() {
		o.align = pptx.HorizontalCenter
	}
	o.anchor = resolve.Anchor(st.VerticalAlign, pptx.TextAnchorMiddle)
	shape := addTextBox(s, quoteBox, quote, o)
	shape.SetName("quote")
	applyBoxStyle(&shape.BaseShape, st)

	if hasAuthor {
		ao := ctx.plainText(o.size*0.7, resolve.Cascade(st.Color.String(), mutedColor))
		ao.align = o.align
		ao.bold = true
		addTextBox(s, authorBox, p.attribution(), ao).SetName("author")
	}
	return nil
}

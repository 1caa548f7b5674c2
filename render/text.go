package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

type textPreset struct {
	size float64
	bold bool
	kind resolve.FontKind
}

// textPresets holds the per-variant defaults of the text family.
var textPresets = map[string]textPreset{
	"heading":    {size: 32, bold: true, kind: resolve.FontHeading},
	"subheading": {size: 24, kind: resolve.FontHeading},
	"text":       {size: 16, kind: resolve.FontBody},
	"paragraph":  {size: 14, kind: resolve.FontBody},
	"richtext":   {size: 16, kind: resolve.FontBody},
	"caption":    {size: 11, kind: resolve.FontCaption},
}

type textPayload struct {
	Content json.RawMessage `json:"content"`
	Text    json.RawMessage `json:"text"`
	HTML    json.RawMessage `json:"html"`
	Value   json.RawMessage `json:"value"`
	Format  deck.Text       `json:"format"`
	URL     deck.Text       `json:"url"`
	Link    deck.Text       `json:"link"`
}

// content returns the first present text field.
func (p textPayload) content() json.RawMessage {
	for _, raw := range []json.RawMessage{p.Content, p.Text, p.HTML, p.Value} {
		if t := bytes.TrimSpace(raw); len(t) > 0 && string(t) != "null" {
			return t
		}
	}
	return nil
}

// componentText flattens the text carried by a component. Data that is not
// an object is treated as the content itself.
func componentText(c deck.Component) (string, textPayload) {
	var p textPayload
	if !decodePayload(c, &p) {
		return deck.FlattenRichText(c.Data, ""), p
	}
	return deck.FlattenRichText(p.content(), p.Format.String()), p
}

// Text renders the text family: text, heading, subheading, paragraph,
// richText and caption.
func Text(ctx *Context, s *pptx.Slide, c deck.Component) error {
	preset, ok := textPresets[normalizeTag(c.Type.String())]
	if !ok {
		preset = textPresets["text"]
	}
	st := c.StyleOrEmpty()
	o := ctx.textOptions(st, preset.kind, preset.size, preset.bold)

	text, payload := componentText(c)
	if text == "" {
		text = "[" + c.Type.Trimmed() + "]"
	}

	shape := addTextBox(s, resolve.BoxFromLayout(c.Layout), text, o)
	shape.SetName(resolve.Cascade(c.Type.String(), "text"))
	applyBoxStyle(&shape.BaseShape, st)

	if url := resolve.Cascade(payload.URL.String(), payload.Link.String()); url != "" {
		for _, p := range shape.GetParagraphs() {
			for _, el := range p.GetElements() {
				if run, ok := el.(*pptx.TextRun); ok {
					run.SetHyperlink(pptx.NewHyperlink(url))
				}
			}
		}
	}
	return nil
}

const (
	codeFont = "Consolas"
	codeFill = "1E293B"
	codeInk  = "E2E8F0"
)

// Code renders a monospace code block on a dark panel. Whitespace is kept.
func Code(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var payload struct {
		Code     deck.Text `json:"code"`
		Content  deck.Text `json:"content"`
		Text     deck.Text `json:"text"`
		Language deck.Text `json:"language"`
	}
	var code string
	if decodePayload(c, &payload) {
		for _, t := range []deck.Text{payload.Code, payload.Content, payload.Text} {
			if !t.IsBlank() {
				code = t.String()
				break
			}
		}
	} else {
		var t deck.Text
		_ = t.UnmarshalJSON(c.Data)
		code = t.String()
	}
	code = strings.ReplaceAll(strings.TrimRight(code, "\n"), "\t", "    ")
	if code == "" {
		code = "[code]"
	}

	st := c.StyleOrEmpty()
	o := ctx.textOptions(st, resolve.FontBody, 12, false)
	o.font = resolve.Cascade(st.FontFamily.String(), codeFont)
	o.color = resolve.Color(st.Color.String(), "", codeInk)

	shape := addTextBox(s, resolve.BoxFromLayout(c.Layout), code, o)
	shape.SetName("code")
	shape.SetAutoFit(pptx.AutoFitNormal)
	shape.GetFill().SetSolid(resolve.Color(st.BackgroundColor.String(), "", codeFill))
	if !payload.Language.IsBlank() {
		shape.SetDescription(payload.Language.Trimmed())
	}
	return nil
}

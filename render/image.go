package render

import (
	"net/url"
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// placeholderImageHosts serve stock placeholder art that is never worth
// embedding.
var placeholderImageHosts = []string{
	"via.placeholder.com",
	"placehold.co",
	"placehold.it",
	"placekitten.com",
	"dummyimage.com",
}

type imagePayload struct {
	Src       deck.Text `json:"src"`
	URL       deck.Text `json:"url"`
	Image     deck.Text `json:"image"`
	Alt       deck.Text `json:"alt"`
	Fit       deck.Text `json:"fit"`
	ObjectFit deck.Text `json:"objectFit"`
}

// UsableImageRef reports whether ref is worth loading: a data URI, a local
// path or an http(s) URL outside the placeholder hosts.
func UsableImageRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	if strings.HasPrefix(ref, "data:") {
		return strings.Contains(ref, ",")
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		host := strings.ToLower(u.Hostname())
		if host == "" {
			return false
		}
		for _, bad := range placeholderImageHosts {
			if host == bad || strings.HasSuffix(host, "."+bad) {
				return false
			}
		}
		return true
	case "", "file":
		return true
	}
	// a one letter scheme is a windows drive; blob:, about: and other
	// browser-only schemes cannot be fetched
	return len(u.Scheme) == 1
}

// imageFit maps a CSS object-fit value.
func imageFit(v string, def pptx.ImageFit) pptx.ImageFit {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "contain", "scale-down":
		return pptx.ImageFitContain
	case "cover":
		return pptx.ImageFitCover
	case "fill", "stretch":
		return pptx.ImageFitStretch
	}
	return def
}

var defaultImageFit = map[string]pptx.ImageFit{
	"image":           pptx.ImageFitStretch,
	"logo":            pptx.ImageFitContain,
	"backgroundimage": pptx.ImageFitCover,
}

// Image renders image, logo and backgroundImage components as pictures. A
// missing or unusable source embeds a transparent pixel instead.
func Image(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p imagePayload
	var ref string
	if decodePayload(c, &p) {
		ref = resolve.Cascade(p.Src.String(), p.URL.String(), p.Image.String())
	} else {
		var t deck.Text
		_ = t.UnmarshalJSON(c.Data)
		ref = t.Trimmed()
	}

	st := c.StyleOrEmpty()
	def, ok := defaultImageFit[normalizeTag(c.Type.String())]
	if !ok {
		def = pptx.ImageFitStretch
	}

	pic := s.CreateDrawingShape()
	resolve.BoxFromLayout(c.Layout).Apply(pic)
	pic.SetName(resolve.Cascade(c.Type.String(), "image"))
	pic.SetFit(imageFit(resolve.Cascade(p.ObjectFit.String(), p.Fit.String()), def))
	pic.SetOpacity(resolve.Opacity(st.Opacity))
	if !p.Alt.IsBlank() {
		pic.SetDescription(p.Alt.Trimmed())
	}

	if UsableImageRef(ref) {
		pic.SetImageSource(ref)
	} else {
		if ref != "" {
			ctx.logger().WithField("ref", ref).Debug("image source not usable, embedding transparent pixel")
		}
		pic.SetImageData(pptx.TransparentPNG, "image/png")
	}
	return nil
}

// Link renders video and embed components as a clickable label pointing at
// the source.
func Link(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		URL      deck.Text `json:"url"`
		Src      deck.Text `json:"src"`
		EmbedURL deck.Text `json:"embedUrl"`
		Title    deck.Text `json:"title"`
	}
	var target string
	if decodePayload(c, &p) {
		target = resolve.Cascade(p.URL.String(), p.Src.String(), p.EmbedURL.String())
	} else {
		var t deck.Text
		_ = t.UnmarshalJSON(c.Data)
		target = t.Trimmed()
	}

	kind := resolve.Cascade(c.Type.String(), "link")
	label := resolve.Cascade(p.Title.String(), target, "["+kind+"]")
	if strings.EqualFold(kind, "video") {
		label = "▶ " + label
	}

	st := c.StyleOrEmpty()
	o := ctx.textOptions(st, resolve.FontBody, 14, false)
	o.align = pptx.HorizontalCenter
	o.anchor = pptx.TextAnchorMiddle
	fill := resolve.Cascade(st.BackgroundColor.String(), lightColor)

	shape := addBox(s, resolve.BoxFromLayout(c.Layout), pptx.AutoShapeRectangle, fill, label, o)
	shape.SetName(kind)
	if target != "" {
		link := pptx.NewHyperlink(target)
		shape.SetHyperlink(link)
		for _, el := range shape.GetActiveParagraph().GetElements() {
			if run, ok := el.(*pptx.TextRun); ok {
				run.SetHyperlink(link)
				run.GetFont().SetUnderline(pptx.UnderlineSingle)
			}
		}
	}
	return nil
}

package render

import (
	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// EmptySlideLabel is drawn on sections with neither a title nor components.
const EmptySlideLabel = "No content"

// SlideBackground sets a solid slide background from the first usable hex
// color. It reports whether a background was set.
func SlideBackground(s *pptx.Slide, colors ...string) bool {
	for _, c := range colors {
		hex := resolve.ResolveColor(c, "", "")
		if hex == "" || !pptx.IsValidHex(hex) {
			continue
		}
		s.SetBackground(pptx.NewFill().SetSolid(pptx.NewColor(hex)))
		return true
	}
	return false
}

// BackgroundPicture covers box with the picture at ref. Unusable references
// draw nothing.
func BackgroundPicture(ctx *Context, s *pptx.Slide, box resolve.Box, ref string) bool {
	if ref == "" {
		return false
	}
	if !UsableImageRef(ref) {
		ctx.logger().WithField("ref", ref).Debug("background image not usable, skipping")
		return false
	}
	pic := s.CreateDrawingShape()
	box.Apply(pic)
	pic.SetName("Background")
	pic.SetFit(pptx.ImageFitCover)
	pic.SetImageSource(ref)
	return true
}

// SlideTitle draws title as a centered heading filling box.
func SlideTitle(ctx *Context, s *pptx.Slide, box resolve.Box, title string) *pptx.RichTextShape {
	o := ctx.textOptions(deck.Style{}, resolve.FontHeading, 36, true)
	o.align = pptx.HorizontalCenter
	o.anchor = pptx.TextAnchorMiddle
	shape := addTextBox(s, box, title, o)
	shape.SetName("Title")
	return shape
}

// Subtitle draws muted centered body text, used under a synthesized title.
func Subtitle(ctx *Context, s *pptx.Slide, box resolve.Box, text string) *pptx.RichTextShape {
	o := ctx.plainText(18, mutedColor)
	o.align = pptx.HorizontalCenter
	shape := addTextBox(s, box, text, o)
	shape.SetName("Subtitle")
	return shape
}

// EmptySlide draws the "No content" notice centered in box and counts it as
// a placeholder.
func EmptySlide(ctx *Context, s *pptx.Slide, box resolve.Box) *pptx.RichTextShape {
	o := ctx.plainText(18, mutedColor).with(func(o *textOptions) {
		o.italic = true
		o.align = pptx.HorizontalCenter
		o.anchor = pptx.TextAnchorMiddle
	})
	shape := addTextBox(s, box, EmptySlideLabel, o)
	shape.SetName("Placeholder")
	ctx.Placeholders++
	return shape
}

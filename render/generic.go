package render

import (
	"github.com/sirupsen/logrus"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

const (
	placeholderFill = "F9FAFB"
	placeholderLine = "9CA3AF"
)

// Placeholder draws a neutral dashed box with a centered label and counts it
// on the context.
func Placeholder(ctx *Context, s *pptx.Slide, box resolve.Box, label string) *pptx.AutoShape {
	shape := s.CreateAutoShape()
	box.Apply(shape)
	shape.SetName("Placeholder")
	shape.SetSolidFill(pptx.NewColor(placeholderFill))
	border := shape.GetBorder().SetSolid(pptx.Point(1), pptx.NewColor(placeholderLine))
	border.Style = pptx.BorderDash

	o := ctx.plainText(12, mutedColor)
	o.align = pptx.HorizontalCenter
	o.anchor = pptx.TextAnchorMiddle
	shape.SetTextAnchor(o.anchor)
	writeLines(shape, []string{label}, o)

	ctx.Placeholders++
	return shape
}

// Generic renders component types without a dedicated handler as a labeled
// placeholder.
func Generic(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var payload struct {
		Title deck.Text `json:"title"`
	}
	decodePayload(c, &payload)

	label := resolve.Cascade(c.Type.String(), "component")
	if !payload.Title.IsBlank() {
		label += ": " + payload.Title.Trimmed()
	}
	ctx.logger().WithFields(logrus.Fields{
		"component_id":   c.ID.String(),
		"component_type": c.Type.String(),
	}).Debug("no dedicated handler, drawing placeholder")

	Placeholder(ctx, s, resolve.BoxFromLayout(c.Layout), label)
	return nil
}

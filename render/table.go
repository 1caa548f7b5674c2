package render

import (
	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// Table renders a native table. The header row is filled with the theme
// primary color and body rows are banded.
func Table(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Headers deck.Texts   `json:"headers"`
		Columns deck.Texts   `json:"columns"`
		Rows    []deck.Texts `json:"rows"`
	}
	if !decodePayload(c, &p) {
		_ = decodeRawList(c, &p.Rows)
	}
	headers := p.Headers
	if len(headers) == 0 {
		headers = p.Columns
	}

	cols := len(headers)
	for _, row := range p.Rows {
		cols = max(cols, len(row))
	}
	box := resolve.BoxFromLayout(c.Layout)
	if cols == 0 {
		Placeholder(ctx, s, box, "Table: no data")
		return nil
	}

	rows := len(p.Rows)
	offset := 0
	if len(headers) > 0 {
		rows++
		offset = 1
	}

	st := c.StyleOrEmpty()
	o := ctx.textOptions(st, resolve.FontBody, 12, false)
	header := o.with(func(t *textOptions) {
		t.bold = true
		t.color = pptx.ColorWhite
	})
	band := resolve.Color(lightColor, "", defaultBackground)

	table := s.CreateTableShape(rows, cols)
	box.Apply(table)
	table.SetName("table")

	if offset == 1 {
		headerFill := resolve.Color(ctx.primary(), "", defaultPrimary)
		for j := 0; j < cols; j++ {
			cell := table.GetCell(0, j)
			cell.GetFill().SetSolid(headerFill)
			text := ""
			if j < len(headers) {
				text = headers[j].Trimmed()
			}
			styleRun(cell.SetText(text), header)
		}
	}
	for i, row := range p.Rows {
		for j := 0; j < cols; j++ {
			cell := table.GetCell(i+offset, j)
			if i%2 == 1 {
				cell.GetFill().SetSolid(band)
			}
			text := ""
			if j < len(row) {
				text = deck.FlattenString(row[j].Trimmed(), "")
			}
			styleRun(cell.SetText(text), o)
		}
	}
	return nil
}

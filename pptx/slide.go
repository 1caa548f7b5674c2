package pptx

import "strings"

// Slide represents a single slide. Shapes are painted in insertion order.
type Slide struct {
	name       string
	shapes     []Shape
	background *Fill
	notes      string
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) *Slide {
	s.name = name
	return s
}

// GetShapes returns all shapes in paint order.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// GetShapeCount returns the number of shapes on the slide.
func (s *Slide) GetShapeCount() int { return len(s.shapes) }

// AddShape appends an existing shape.
func (s *Slide) AddShape(shape Shape) Shape {
	s.shapes = append(s.shapes, shape)
	return shape
}

// RemoveShape removes a shape by index.
func (s *Slide) RemoveShape(index int) error {
	if index < 0 || index >= len(s.shapes) {
		return errOutOfRange
	}
	s.shapes = append(s.shapes[:index], s.shapes[index+1:]...)
	return nil
}

// CreateRichTextShape creates a text box on the slide.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	rt := NewRichTextShape()
	s.shapes = append(s.shapes, rt)
	return rt
}

// CreateDrawingShape creates a picture on the slide.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	ds := NewDrawingShape()
	s.shapes = append(s.shapes, ds)
	return ds
}

// CreateAutoShape creates a preset geometry shape on the slide.
func (s *Slide) CreateAutoShape() *AutoShape {
	as := NewAutoShape()
	s.shapes = append(s.shapes, as)
	return as
}

// CreateLineShape creates a straight line on the slide.
func (s *Slide) CreateLineShape() *LineShape {
	ls := NewLineShape()
	s.shapes = append(s.shapes, ls)
	return ls
}

// CreateTableShape creates a rows x cols table on the slide.
func (s *Slide) CreateTableShape(rows, cols int) *TableShape {
	ts := NewTableShape(rows, cols)
	s.shapes = append(s.shapes, ts)
	return ts
}

// CreateChartShape creates an empty chart on the slide.
func (s *Slide) CreateChartShape() *ChartShape {
	cs := NewChartShape()
	s.shapes = append(s.shapes, cs)
	return cs
}

// GetBackground returns the slide background fill, or nil for the master default.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f *Fill) { s.background = f }

// GetNotes returns the speaker notes.
func (s *Slide) GetNotes() string { return s.notes }

// SetNotes sets the speaker notes.
func (s *Slide) SetNotes(notes string) { s.notes = notes }

// ExtractText returns the text of every text-bearing shape, one line per paragraph.
func (s *Slide) ExtractText() string {
	var lines []string
	for _, shape := range s.shapes {
		switch sh := shape.(type) {
		case *TableShape:
			for _, row := range sh.rows {
				for _, cell := range row {
					lines = appendParagraphText(lines, cell.paragraphs)
				}
			}
		default:
			lines = appendParagraphText(lines, shapeParagraphs(shape))
		}
	}
	return strings.Join(lines, "\n")
}

func appendParagraphText(lines []string, paras []*Paragraph) []string {
	for _, p := range paras {
		if t := p.GetText(); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

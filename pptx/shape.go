package pptx

import (
	"strings"
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	GetRotation() int
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeTable
	ShapeTypeAutoShape
	ShapeTypeLine
	ShapeTypeChart
)

// BaseShape contains common shape properties.
type BaseShape struct {
	name        string
	description string
	offsetX     int64 // in EMU
	offsetY     int64 // in EMU
	width       int64 // in EMU
	height      int64 // in EMU
	rotation    int   // in degrees
	fill        *Fill
	border      *Border
	shadow      *Shadow
	hyperlink   *Hyperlink
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) GetRotation() int  { return b.rotation }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetName(n string) *BaseShape  { b.name = n; return b }
func (b *BaseShape) SetRotation(r int) *BaseShape { b.rotation = ((r % 360) + 360) % 360; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

// SetBounds sets position and size in one call.
func (b *BaseShape) SetBounds(x, y, w, h int64) *BaseShape {
	return b.SetPosition(x, y).SetSize(w, h)
}

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

func (b *BaseShape) SetBorder(border *Border) { b.border = border }

func (b *BaseShape) GetShadow() *Shadow {
	if b.shadow == nil {
		b.shadow = NewShadow()
	}
	return b.shadow
}

func (b *BaseShape) SetShadow(s *Shadow) { b.shadow = s }

// GetHyperlink returns the click action of the whole shape.
func (b *BaseShape) GetHyperlink() *Hyperlink  { return b.hyperlink }
func (b *BaseShape) SetHyperlink(h *Hyperlink) { b.hyperlink = h }

// TextAnchorType represents the text anchoring type within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// AutoFitType represents the auto-fit behavior.
type AutoFitType int

const (
	AutoFitNone AutoFitType = iota
	AutoFitNormal
	AutoFitShape
)

// textBody is the paragraph container shared by text boxes and auto shapes.
type textBody struct {
	paragraphs      []*Paragraph
	activeParagraph int
	textAnchor      TextAnchorType
	autoFit         AutoFitType
	wordWrap        bool
}

func newTextBody() textBody {
	return textBody{
		paragraphs: []*Paragraph{NewParagraph()},
		wordWrap:   true,
	}
}

// GetActiveParagraph returns the active paragraph.
func (t *textBody) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.activeParagraph = 0
	}
	return t.paragraphs[t.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (t *textBody) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.activeParagraph = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (t *textBody) GetParagraphs() []*Paragraph {
	return t.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (t *textBody) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// CreateBreak creates a line break in the active paragraph.
func (t *textBody) CreateBreak() *BreakElement {
	return t.GetActiveParagraph().CreateBreak()
}

// SetTextAnchor sets the vertical position of text within the shape.
func (t *textBody) SetTextAnchor(anchor TextAnchorType) {
	t.textAnchor = anchor
}

// GetTextAnchor returns the text anchoring type.
func (t *textBody) GetTextAnchor() TextAnchorType {
	return t.textAnchor
}

// SetAutoFit sets the auto-fit type.
func (t *textBody) SetAutoFit(fit AutoFitType) {
	t.autoFit = fit
}

// GetAutoFit returns the auto-fit type.
func (t *textBody) GetAutoFit() AutoFitType {
	return t.autoFit
}

// SetWordWrap sets word wrap.
func (t *textBody) SetWordWrap(wrap bool) {
	t.wordWrap = wrap
}

// GetWordWrap returns word wrap setting.
func (t *textBody) GetWordWrap() bool {
	return t.wordWrap
}

// GetText returns the plain text of all paragraphs joined by newlines.
func (t *textBody) GetText() string {
	lines := make([]string, 0, len(t.paragraphs))
	for _, p := range t.paragraphs {
		lines = append(lines, p.GetText())
	}
	return strings.Join(lines, "\n")
}

// hasText reports whether any paragraph carries a run.
func (t *textBody) hasText() bool {
	for _, p := range t.paragraphs {
		if len(p.elements) > 0 {
			return true
		}
	}
	return false
}

// RichTextShape represents a text box.
type RichTextShape struct {
	BaseShape
	textBody
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new rich text shape.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{textBody: newTextBody()}
}

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   *Alignment
	bullet      *Bullet
	spaceBefore int // in points
	spaceAfter  int // in points
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: NewAlignment(),
	}
}

// GetAlignment returns the paragraph alignment.
func (p *Paragraph) GetAlignment() *Alignment {
	return p.alignment
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a *Alignment) {
	p.alignment = a
}

// GetBullet returns the paragraph bullet.
func (p *Paragraph) GetBullet() *Bullet {
	return p.bullet
}

// SetBullet sets the paragraph bullet.
func (p *Paragraph) SetBullet(b *Bullet) {
	p.bullet = b
}

// GetSpaceBefore returns the space before the paragraph.
func (p *Paragraph) GetSpaceBefore() int { return p.spaceBefore }

// SetSpaceBefore sets the space before the paragraph in points.
func (p *Paragraph) SetSpaceBefore(v int) { p.spaceBefore = v }

// GetSpaceAfter returns the space after the paragraph.
func (p *Paragraph) GetSpaceAfter() int { return p.spaceAfter }

// SetSpaceAfter sets the space after the paragraph in points.
func (p *Paragraph) SetSpaceAfter(v int) { p.spaceAfter = v }

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement {
	return p.elements
}

// CreateTextRun creates a new text run.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// GetText returns the concatenated run text; breaks become newlines.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, e := range p.elements {
		switch el := e.(type) {
		case *TextRun:
			sb.WriteString(el.text)
		case *BreakElement:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text      string
	font      *Font
	hyperlink *Hyperlink
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// GetHyperlink returns the hyperlink.
func (tr *TextRun) GetHyperlink() *Hyperlink { return tr.hyperlink }

// SetHyperlink sets the hyperlink.
func (tr *TextRun) SetHyperlink(h *Hyperlink) { tr.hyperlink = h }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// ImageFit controls how a picture fills its frame.
type ImageFit string

const (
	// ImageFitStretch scales the picture to the frame, ignoring aspect ratio.
	ImageFitStretch ImageFit = "stretch"
	// ImageFitContain scales the picture to fit inside the frame, letterboxed.
	ImageFitContain ImageFit = "contain"
	// ImageFitCover scales the picture to fill the frame, cropping overflow.
	ImageFitCover ImageFit = "cover"
)

// DrawingShape represents a picture.
//
// The image bytes are either set directly with SetImageData or referenced
// with SetImageSource (data URI, http(s) URL or file path) and loaded by the
// writer's MediaLoader.
type DrawingShape struct {
	BaseShape
	source   string
	data     []byte
	mimeType string
	fit      ImageFit
	alpha    int // alphaModFix amount (0-100000); 0 means fully opaque
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape creates a new drawing shape.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{fit: ImageFitStretch}
}

// SetImageSource sets a media reference resolved at write time.
func (d *DrawingShape) SetImageSource(ref string) *DrawingShape {
	d.source = ref
	return d
}

// GetImageSource returns the media reference.
func (d *DrawingShape) GetImageSource() string { return d.source }

// SetImageData sets the raw image data.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data = data
	d.mimeType = mimeType
	return d
}

// GetImageData returns the raw image data.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// SetFit sets the image fit mode.
func (d *DrawingShape) SetFit(fit ImageFit) *DrawingShape {
	switch fit {
	case ImageFitContain, ImageFitCover:
		d.fit = fit
	default:
		d.fit = ImageFitStretch
	}
	return d
}

// GetFit returns the image fit mode.
func (d *DrawingShape) GetFit() ImageFit { return d.fit }

// SetOpacity sets the picture opacity (0-1).
func (d *DrawingShape) SetOpacity(o float64) *DrawingShape {
	if o >= 1 || o < 0 {
		d.alpha = 0
		return d
	}
	d.alpha = int(o * 100000)
	return d
}

// GetAlphaValue returns the alphaModFix amount (0-100000).
func (d *DrawingShape) GetAlphaValue() int { return d.alpha }

// guessMimeFromPath guesses the MIME type from a file extension.
func guessMimeFromPath(path string) string {
	lower := strings.ToLower(path)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".bmp"):
		return "image/bmp"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".svg"):
		return "image/svg+xml"
	default:
		return ""
	}
}

// AutoShape represents a preset geometry shape with optional text.
type AutoShape struct {
	BaseShape
	textBody
	shapeType AutoShapeType
}

// AutoShapeType represents the preset geometry name.
type AutoShapeType string

const (
	AutoShapeRectangle     AutoShapeType = "rect"
	AutoShapeRoundedRect   AutoShapeType = "roundRect"
	AutoShapeEllipse       AutoShapeType = "ellipse"
	AutoShapeTriangle      AutoShapeType = "triangle"
	AutoShapeRtTriangle    AutoShapeType = "rtTriangle"
	AutoShapeDiamond       AutoShapeType = "diamond"
	AutoShapeParallelogram AutoShapeType = "parallelogram"
	AutoShapeTrapezoid     AutoShapeType = "trapezoid"
	AutoShapePentagon      AutoShapeType = "pentagon"
	AutoShapeHexagon       AutoShapeType = "hexagon"
	AutoShapeOctagon       AutoShapeType = "octagon"
	AutoShapeArrowRight    AutoShapeType = "rightArrow"
	AutoShapeArrowLeft     AutoShapeType = "leftArrow"
	AutoShapeArrowUp       AutoShapeType = "upArrow"
	AutoShapeArrowDown     AutoShapeType = "downArrow"
	AutoShapeStar5         AutoShapeType = "star5"
	AutoShapeHeart         AutoShapeType = "heart"
	AutoShapeChevron       AutoShapeType = "chevron"
	AutoShapeCloud         AutoShapeType = "cloud"
	AutoShapePlus          AutoShapeType = "mathPlus"
	AutoShapeCallout1      AutoShapeType = "wedgeRoundRectCallout"
	AutoShapeCallout2      AutoShapeType = "wedgeEllipseCallout"
)

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle auto shape.
func NewAutoShape() *AutoShape {
	a := &AutoShape{
		textBody:  newTextBody(),
		shapeType: AutoShapeRectangle,
	}
	a.textAnchor = TextAnchorMiddle
	return a
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType {
	return a.shapeType
}

// SetSolidFill sets a solid fill on the auto shape.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

// SetText replaces the shape text with a single run and returns that run.
func (a *AutoShape) SetText(text string) *TextRun {
	a.paragraphs = []*Paragraph{NewParagraph()}
	a.activeParagraph = 0
	return a.paragraphs[0].CreateTextRun(text)
}

// LineShape represents a straight connector.
type LineShape struct {
	BaseShape
	lineStyle BorderStyle
	lineWidth int64 // in EMU
	lineColor Color
}

func (l *LineShape) GetType() ShapeType { return ShapeTypeLine }

// NewLineShape creates a new 1pt black line.
func NewLineShape() *LineShape {
	return &LineShape{
		lineStyle: BorderSolid,
		lineWidth: emuPerPoint,
		lineColor: ColorBlack,
	}
}

// SetLineStyle sets the line style.
func (l *LineShape) SetLineStyle(s BorderStyle) *LineShape {
	l.lineStyle = s
	return l
}

// GetLineStyle returns the line style.
func (l *LineShape) GetLineStyle() BorderStyle { return l.lineStyle }

// SetLineWidth sets the line width in EMU.
func (l *LineShape) SetLineWidth(w int64) *LineShape {
	if w < 0 {
		w = 0
	}
	l.lineWidth = w
	return l
}

// GetLineWidth returns the line width in EMU.
func (l *LineShape) GetLineWidth() int64 { return l.lineWidth }

// SetLineColor sets the line color.
func (l *LineShape) SetLineColor(c Color) *LineShape {
	l.lineColor = c
	return l
}

// GetLineColor returns the line color.
func (l *LineShape) GetLineColor() Color { return l.lineColor }

// TableShape represents a table.
type TableShape struct {
	BaseShape
	rows    [][]*TableCell
	numRows int
	numCols int
}

func (t *TableShape) GetType() ShapeType { return ShapeTypeTable }

// NewTableShape creates a new table shape. Dimensions below 1 are raised to 1.
func NewTableShape(rows, cols int) *TableShape {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	table := &TableShape{
		numRows: rows,
		numCols: cols,
		rows:    make([][]*TableCell, rows),
	}
	for i := 0; i < rows; i++ {
		table.rows[i] = make([]*TableCell, cols)
		for j := 0; j < cols; j++ {
			table.rows[i][j] = NewTableCell()
		}
	}
	return table
}

// GetCell returns a cell at the given row and column.
func (t *TableShape) GetCell(row, col int) *TableCell {
	if row < 0 || row >= t.numRows || col < 0 || col >= t.numCols {
		return nil
	}
	return t.rows[row][col]
}

// GetRows returns all rows.
func (t *TableShape) GetRows() [][]*TableCell {
	return t.rows
}

// GetNumRows returns the number of rows.
func (t *TableShape) GetNumRows() int { return t.numRows }

// GetNumCols returns the number of columns.
func (t *TableShape) GetNumCols() int { return t.numCols }

// TableCell represents a table cell.
type TableCell struct {
	paragraphs []*Paragraph
	fill       *Fill
}

// NewTableCell creates a new table cell.
func NewTableCell() *TableCell {
	return &TableCell{
		paragraphs: []*Paragraph{NewParagraph()},
		fill:       NewFill(),
	}
}

// SetText sets the cell text and returns the run for styling.
func (tc *TableCell) SetText(text string) *TextRun {
	if len(tc.paragraphs) == 0 {
		tc.paragraphs = append(tc.paragraphs, NewParagraph())
	}
	return tc.paragraphs[0].CreateTextRun(text)
}

// GetParagraphs returns the cell paragraphs.
func (tc *TableCell) GetParagraphs() []*Paragraph {
	return tc.paragraphs
}

// GetFill returns the cell fill.
func (tc *TableCell) GetFill() *Fill { return tc.fill }

// SetFill sets the cell fill.
func (tc *TableCell) SetFill(f *Fill) { tc.fill = f }

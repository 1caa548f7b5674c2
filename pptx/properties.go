package pptx

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout names.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutWidescreen  = "widescreen"
	LayoutCustom      = "custom"
)

// NewDocumentLayout creates the default 16:9 on-screen layout (10 x 5.625 in).
func NewDocumentLayout() *DocumentLayout {
	dl := &DocumentLayout{}
	dl.SetLayout(LayoutScreen16x9)
	return dl
}

// SetLayout sets a predefined layout. Unknown names leave the size unchanged.
func (dl *DocumentLayout) SetLayout(name string) {
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 9144000, 5143500
	case LayoutScreen16x10:
		dl.CX, dl.CY = 9144000, 5715000
	case LayoutWidescreen:
		dl.CX, dl.CY = 12192000, 6858000
	default:
		return
	}
	dl.Name = name
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall
// back to the 16:9 defaults.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 9144000
	}
	if cy <= 0 {
		cy = 5143500
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// presentationSlideSizeType maps the layout to the sldSz type attribute.
func (dl *DocumentLayout) presentationSlideSizeType() string {
	switch dl.Name {
	case LayoutScreen4x3:
		return "screen4x3"
	case LayoutScreen16x9:
		return "screen16x9"
	case LayoutScreen16x10:
		return "screen16x10"
	default:
		return "custom"
	}
}

// Theme holds the document color scheme and font pair written to the theme part.
type Theme struct {
	Name      string
	Dark1     Color
	Light1    Color
	Dark2     Color
	Light2    Color
	Accents   [6]Color
	Hyperlink Color
	MajorFont string // headings
	MinorFont string // body text
}

// NewTheme returns the default Office-like theme.
func NewTheme() *Theme {
	return &Theme{
		Name:   "GoDeck",
		Dark1:  ColorBlack,
		Light1: ColorWhite,
		Dark2:  NewColor("1F2937"),
		Light2: NewColor("F3F4F6"),
		Accents: [6]Color{
			NewColor("3B82F6"),
			NewColor("10B981"),
			NewColor("F59E0B"),
			NewColor("EF4444"),
			NewColor("8B5CF6"),
			NewColor("06B6D4"),
		},
		Hyperlink: NewColor("2563EB"),
		MajorFont: "Calibri Light",
		MinorFont: "Calibri",
	}
}

// SetAccent sets the accent color at index i (0-5). Out-of-range indexes are ignored.
func (t *Theme) SetAccent(i int, c Color) *Theme {
	if i >= 0 && i < len(t.Accents) {
		t.Accents[i] = c
	}
	return t
}

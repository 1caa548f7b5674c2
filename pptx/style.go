package pptx

import (
	"math"
	"strings"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack       = Color{ARGB: "FF000000"}
	ColorWhite       = Color{ARGB: "FFFFFFFF"}
	ColorGray        = Color{ARGB: "FF808080"}
	ColorTransparent = Color{ARGB: "00FFFFFF"}
)

// NewColor creates a new Color from a hex string.
// Accepts 3-char shorthand ("F00"), 6-char RGB ("FF0000") or 8-char ARGB
// ("FFFF0000"). A leading "#" is stripped. Invalid input yields black.
func NewColor(argb string) Color {
	argb = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(argb), "#"))
	switch len(argb) {
	case 3:
		argb = "FF" + string([]byte{argb[0], argb[0], argb[1], argb[1], argb[2], argb[2]})
	case 6:
		argb = "FF" + argb
	}
	if !isValidARGB(argb) {
		return ColorBlack
	}
	return Color{ARGB: argb}
}

// IsValidHex reports whether s (without "#") is a 3, 6 or 8 digit hex color.
func IsValidHex(s string) bool {
	switch len(s) {
	case 3, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		if hexVal(s[i]) < 0 {
			return false
		}
	}
	return true
}

// isValidARGB checks that s is exactly 8 upper-case hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// RGB returns the 6-character RGB portion.
func (c Color) RGB() string { return colorRGB(c) }

// GetAlpha returns the alpha component (0-255).
func (c Color) GetAlpha() uint8 {
	return parseHexByte(c.ARGB, 0)
}

// WithAlpha returns a copy of c with its alpha channel set from a 0-1 opacity.
func (c Color) WithAlpha(opacity float64) Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := uint8(math.Round(opacity * 255))
	const digits = "0123456789ABCDEF"
	return Color{ARGB: string([]byte{digits[a>>4], digits[a&0x0F]}) + colorRGB(c)}
}

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Font represents text font properties.
type Font struct {
	Name      string
	Size      float64 // in points
	Bold      bool
	Italic    bool
	Underline UnderlineType
	Color     Color
}

// UnderlineType represents the underline style.
type UnderlineType string

const (
	UnderlineNone   UnderlineType = "none"
	UnderlineSingle UnderlineType = "sng"
	UnderlineDouble UnderlineType = "dbl"
)

// NewFont creates a new Font with defaults.
func NewFont() *Font {
	return &Font{
		Name:      "Calibri",
		Size:      18,
		Underline: UnderlineNone,
		Color:     ColorBlack,
	}
}

// SetBold sets the bold property and returns the font for chaining.
func (f *Font) SetBold(bold bool) *Font {
	f.Bold = bold
	return f
}

// SetItalic sets the italic property.
func (f *Font) SetItalic(italic bool) *Font {
	f.Italic = italic
	return f
}

// SetSize sets the font size in points (clamped to 1–4000).
func (f *Font) SetSize(size float64) *Font {
	if size < 1 || math.IsNaN(size) {
		size = 1
	}
	if size > 4000 {
		size = 4000
	}
	f.Size = size
	return f
}

// SetColor sets the font color.
func (f *Font) SetColor(color Color) *Font {
	f.Color = color
	return f
}

// SetName sets the font name.
func (f *Font) SetName(name string) *Font {
	f.Name = name
	return f
}

// SetUnderline sets the underline type.
func (f *Font) SetUnderline(u UnderlineType) *Font {
	f.Underline = u
	return f
}

// sizeHundredths returns the size in the sz attribute unit.
func (f *Font) sizeHundredths() int {
	return int(math.Round(f.Size * 100))
}

// Alignment represents paragraph alignment.
type Alignment struct {
	Horizontal HorizontalAlignment
	Level      int
}

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft    HorizontalAlignment = "l"
	HorizontalCenter  HorizontalAlignment = "ctr"
	HorizontalRight   HorizontalAlignment = "r"
	HorizontalJustify HorizontalAlignment = "just"
)

// NewAlignment creates a new left-aligned Alignment.
func NewAlignment() *Alignment {
	return &Alignment{Horizontal: HorizontalLeft}
}

// SetHorizontal sets horizontal alignment.
func (a *Alignment) SetHorizontal(h HorizontalAlignment) *Alignment {
	a.Horizontal = h
	return a
}

// Fill represents a shape fill.
type Fill struct {
	Type  FillType
	Color Color
}

// FillType represents the type of fill.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
)

// NewFill creates a new Fill with no fill.
func NewFill() *Fill {
	return &Fill{Type: FillNone}
}

// SetSolid sets a solid fill.
func (f *Fill) SetSolid(color Color) *Fill {
	f.Type = FillSolid
	f.Color = color
	return f
}

// Border represents a shape outline.
type Border struct {
	Style BorderStyle
	Width int64 // in EMU
	Color Color
}

// BorderStyle represents the border line style.
type BorderStyle string

const (
	BorderNone  BorderStyle = "none"
	BorderSolid BorderStyle = "solid"
	BorderDash  BorderStyle = "dash"
	BorderDot   BorderStyle = "dot"
)

// NewBorder creates a new Border with no border.
func NewBorder() *Border {
	return &Border{Style: BorderNone}
}

// SetSolid sets a solid border of the given width in EMU.
func (b *Border) SetSolid(width int64, color Color) *Border {
	b.Style = BorderSolid
	b.Width = width
	b.Color = color
	return b
}

// Shadow represents an outer shape shadow.
type Shadow struct {
	Visible    bool
	Direction  int // in degrees
	Distance   int // in points
	BlurRadius int // in points
	Color      Color
	Alpha      int // 0-100
}

// NewShadow creates a new hidden Shadow.
func NewShadow() *Shadow {
	return &Shadow{
		Direction:  45,
		Distance:   2,
		BlurRadius: 4,
		Color:      ColorBlack,
		Alpha:      30,
	}
}

// SetVisible sets shadow visibility.
func (s *Shadow) SetVisible(v bool) *Shadow {
	s.Visible = v
	return s
}

// Hyperlink represents an external hyperlink.
type Hyperlink struct {
	URL     string
	Tooltip string
}

// NewHyperlink creates a new external hyperlink.
func NewHyperlink(url string) *Hyperlink {
	return &Hyperlink{URL: url}
}

// Bullet describes a paragraph bullet.
type Bullet struct {
	Type      BulletType
	Style     string // bullet character for BulletTypeChar
	Font      string
	Color     *Color
	Size      int // percent of text size
	NumFormat string
	StartAt   int
}

// BulletType represents the kind of bullet.
type BulletType int

const (
	BulletTypeNone BulletType = iota
	BulletTypeChar
	BulletTypeNumeric
)

// Numbering formats for numeric bullets.
const (
	NumFormatArabicPeriod  = "arabicPeriod"
	NumFormatAlphaLcParen  = "alphaLcParenR"
	NumFormatRomanUcPeriod = "romanUcPeriod"
)

// NewBullet creates a bullet with no marker.
func NewBullet() *Bullet {
	return &Bullet{Type: BulletTypeNone, Size: 100, StartAt: 1}
}

// SetCharBullet sets a character bullet.
func (b *Bullet) SetCharBullet(char, font string) *Bullet {
	b.Type = BulletTypeChar
	b.Style = char
	b.Font = font
	return b
}

// SetNumericBullet sets an auto-numbered bullet.
func (b *Bullet) SetNumericBullet(format string, startAt int) *Bullet {
	if startAt < 1 {
		startAt = 1
	}
	b.Type = BulletTypeNumeric
	b.NumFormat = format
	b.StartAt = startAt
	return b
}

// SetColor sets the bullet color.
func (b *Bullet) SetColor(c Color) *Bullet {
	b.Color = &c
	return b
}

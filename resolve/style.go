package resolve

import (
	"strconv"
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
)

// FontKind selects the theme font bucket.
type FontKind int

const (
	FontBody FontKind = iota
	FontHeading
	FontCaption
)

// Cascade returns the first value that is not blank, trimmed.
func Cascade(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ResolveColor picks the first non-empty of the component, theme and fallback
// colors and normalizes it to upper-case hex without "#". Three digit
// shorthand is expanded.
func ResolveColor(component, theme, fallback string) string {
	return normalizeHex(Cascade(component, theme, fallback))
}

func normalizeHex(s string) string {
	s = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(s) == 3 && pptx.IsValidHex(s) {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return s
}

// Color resolves like ResolveColor and converts the result, skipping values
// that are not hex colors. An unusable cascade yields fallback.
func Color(component, theme, fallback string) pptx.Color {
	for _, c := range []string{component, theme, fallback} {
		if c = normalizeHex(c); c != "" && pptx.IsValidHex(c) {
			return pptx.NewColor(c)
		}
	}
	return pptx.ColorBlack
}

// ResolveFontFamily picks the component font, then the theme bucket for kind,
// then fallback. Captions without a caption font use the body font. Only the
// first family of a CSS font stack is kept.
func ResolveFontFamily(component string, fonts deck.ThemeFonts, kind FontKind, fallback string) string {
	var bucket string
	switch kind {
	case FontHeading:
		bucket = fonts.Heading.String()
	case FontCaption:
		bucket = Cascade(fonts.Caption.String(), fonts.Body.String())
	default:
		bucket = fonts.Body.String()
	}
	return firstFamily(Cascade(firstFamily(component), firstFamily(bucket), fallback))
}

func firstFamily(stack string) string {
	if i := strings.IndexByte(stack, ','); i >= 0 {
		stack = stack[:i]
	}
	return strings.Trim(strings.TrimSpace(stack), `"'`)
}

// ParseFontSize returns the size in points, or def when v is not a positive
// number.
func ParseFontSize(v deck.Number, def float64) float64 {
	f, ok := v.Float()
	if !ok || f <= 0 {
		return def
	}
	return f
}

// IsBold reports whether a CSS font-weight is bold.
func IsBold(weight deck.Text) bool {
	w := strings.ToLower(weight.Trimmed())
	switch w {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

// IsItalic reports whether a CSS font-style is italic.
func IsItalic(style deck.Text) bool {
	s := strings.ToLower(style.Trimmed())
	return s == "italic" || s == "oblique"
}

// Alignment maps a CSS text-align value.
func Alignment(textAlign deck.Text, def pptx.HorizontalAlignment) pptx.HorizontalAlignment {
	switch strings.ToLower(textAlign.Trimmed()) {
	case "left", "start":
		return pptx.HorizontalLeft
	case "center":
		return pptx.HorizontalCenter
	case "right", "end":
		return pptx.HorizontalRight
	case "justify":
		return pptx.HorizontalJustify
	}
	return def
}

// Anchor maps a vertical-align value.
func Anchor(verticalAlign deck.Text, def pptx.TextAnchorType) pptx.TextAnchorType {
	switch strings.ToLower(verticalAlign.Trimmed()) {
	case "top", "start":
		return pptx.TextAnchorTop
	case "middle", "center":
		return pptx.TextAnchorMiddle
	case "bottom", "end":
		return pptx.TextAnchorBottom
	}
	return def
}

// Opacity returns a 0-1 opacity, 1 when unset.
func Opacity(v deck.Number) float64 {
	f, ok := v.Float()
	if !ok {
		return 1
	}
	if f > 1 && f <= 100 {
		f /= 100
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// BorderStyle maps a CSS border-style value.
func BorderStyle(style deck.Text) pptx.BorderStyle {
	switch strings.ToLower(style.Trimmed()) {
	case "dashed":
		return pptx.BorderDash
	case "dotted":
		return pptx.BorderDot
	case "none", "hidden":
		return pptx.BorderNone
	}
	return pptx.BorderSolid
}

package resolve

import (
	"github.com/sirupsen/logrus"

	"github.com/VantageDataChat/GoDeck/deck"
)

// Layout defaults for missing or unusable geometry, in pixels.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// SanitizeLayout returns a layout that is safe to draw: x and y default to 0
// when missing, not numeric or negative; width and height default to
// DefaultWidth and DefaultHeight when missing, not numeric or not positive. zIndex is kept only when numeric. Applying it
// twice gives the same result as applying it once.
func SanitizeLayout(l deck.Layout) deck.Layout {
	out := deck.Layout{
		X:      nonNegativeOr(l.X, 0),
		Y:      nonNegativeOr(l.Y, 0),
		Width:  positiveOr(l.Width, DefaultWidth),
		Height: positiveOr(l.Height, DefaultHeight),
	}
	if l.ZIndex.Valid() {
		out.ZIndex = l.ZIndex
	}
	return out
}

func nonNegativeOr(n deck.Number, def float64) deck.Number {
	if f, ok := n.Float(); ok && f >= 0 {
		return deck.NewNumber(f)
	}
	return deck.NewNumber(def)
}

func positiveOr(n deck.Number, def float64) deck.Number {
	if f, ok := n.Float(); ok && f > 0 {
		return n
	}
	return deck.NewNumber(def)
}

// IsValidDeckData is the pre-flight check. Only a nil deck is invalid; a deck
// without sections is accepted with a warning.
func IsValidDeckData(d *deck.Deck, log logrus.FieldLogger) bool {
	if d == nil {
		return false
	}
	if len(d.Sections) == 0 && log != nil {
		log.WithField("deck_id", d.ID.String()).Warn("deck has no sections, exporting a title slide")
	}
	return true
}

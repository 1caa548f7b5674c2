// Package deck defines the deck model handed to the export engine: a deck of
// sections (slides), each holding freely positioned typed components, plus an
// optional theme.
//
// Decoding is lenient. Only a document whose top level is not a JSON object is
// rejected; every nested mismatch decodes to a zero value that the renderer
// later turns into a default or a placeholder.
package deck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotAnObject is returned when a deck document is not a JSON object.
var ErrNotAnObject = errors.New("deck is not a JSON object")

// Deck is the root unit of export.
type Deck struct {
	ID          Text      `json:"id"`
	Title       Text      `json:"title"`
	Description Text      `json:"description,omitempty"`
	Author      Text      `json:"author,omitempty"`
	Company     Text      `json:"company,omitempty"`
	Sections    []Section `json:"sections"`
	Theme       *Theme    `json:"theme,omitempty"`
}

// Section renders to exactly one slide.
type Section struct {
	ID         Text        `json:"id"`
	Title      Text        `json:"title"`
	Order      Number      `json:"order,omitempty"`
	Components []Component `json:"components"`
	SlideStyle *SlideStyle `json:"slideStyle,omitempty"`
}

// SlideStyle holds per-slide overrides.
type SlideStyle struct {
	BackgroundColor Text `json:"backgroundColor,omitempty"`
	BackgroundImage Text `json:"backgroundImage,omitempty"`
	Notes           Text `json:"notes,omitempty"`
}

// Component is a drawable element. Data is kept raw and decoded by the
// handler registered for Type.
type Component struct {
	ID     Text            `json:"id"`
	Type   Text            `json:"type"`
	Order  Number          `json:"order,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Layout Layout          `json:"layout"`
	Style  *Style          `json:"style,omitempty"`
}

// Layout is a pixel rectangle with its origin at the top left of the slide.
type Layout struct {
	X      Number `json:"x"`
	Y      Number `json:"y"`
	Width  Number `json:"width"`
	Height Number `json:"height"`
	ZIndex Number `json:"zIndex,omitempty"`
}

// Style holds the visual properties a component may override.
type Style struct {
	Color           Text   `json:"color,omitempty"`
	BackgroundColor Text   `json:"backgroundColor,omitempty"`
	BorderColor     Text   `json:"borderColor,omitempty"`
	BorderWidth     Number `json:"borderWidth,omitempty"`
	BorderStyle     Text   `json:"borderStyle,omitempty"`
	FontFamily      Text   `json:"fontFamily,omitempty"`
	FontSize        Number `json:"fontSize,omitempty"`
	FontWeight      Text   `json:"fontWeight,omitempty"`
	FontStyle       Text   `json:"fontStyle,omitempty"`
	TextAlign       Text   `json:"textAlign,omitempty"`
	VerticalAlign   Text   `json:"verticalAlign,omitempty"`
	Opacity         Number `json:"opacity,omitempty"`
}

// Theme supplies fallback colors and fonts.
type Theme struct {
	Colors ThemeColors `json:"colors"`
	Fonts  ThemeFonts  `json:"fonts"`
}

// ThemeColors is the theme palette. Values are hex strings with or without "#".
type ThemeColors struct {
	Primary         Text `json:"primary"`
	Secondary       Text `json:"secondary"`
	Accent          Text `json:"accent"`
	Background      Text `json:"background"`
	Text            Text `json:"text"`
	SlideBackground Text `json:"slideBackground,omitempty"`
}

// ThemeFonts are the theme font buckets.
type ThemeFonts struct {
	Heading Text `json:"heading"`
	Body    Text `json:"body"`
	Caption Text `json:"caption,omitempty"`
}

// StyleOrEmpty returns the component style, or an empty one when absent.
func (c Component) StyleOrEmpty() Style {
	if c.Style == nil {
		return Style{}
	}
	return *c.Style
}

// ThemeOrEmpty returns the deck theme, or an empty one when absent.
func (d *Deck) ThemeOrEmpty() Theme {
	if d == nil || d.Theme == nil {
		return Theme{}
	}
	return *d.Theme
}

// ComponentCount returns the number of components over all sections.
func (d *Deck) ComponentCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Components)
	}
	return n
}

// Parse decodes a deck document.
func Parse(data []byte) (*Deck, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotAnObject
	}
	var d Deck
	if err := json.Unmarshal(trimmed, &d); err != nil {
		// shape mismatches leave zero values behind; only syntax errors are fatal
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("failed to decode deck: %w", err)
		}
	}
	return &d, nil
}

// Decode reads and decodes a deck document from r.
func Decode(r io.Reader) (*Deck, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	return Parse(data)
}

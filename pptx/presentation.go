// Package pptx provides an in-memory presentation model and a writer that
// serializes it to an Office Open XML (.pptx) package.
//
// Shapes are positioned in EMU. Use Inch, Point or Pixel to convert from
// other units. Pictures may reference remote or local media which is resolved
// when the presentation is written; see MediaLoader.
package pptx

import (
	"errors"
	"sort"
	"time"
)

// Presentation represents an in-memory presentation document.
type Presentation struct {
	properties       *DocumentProperties
	slides           []*Slide
	activeSlideIndex int
	layout           *DocumentLayout
	theme            *Theme
	slideNumbers     bool
}

// New creates a new Presentation with one default blank slide.
func New() *Presentation {
	p := &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
		theme:      NewTheme(),
	}
	// Add a default slide
	p.CreateSlide()
	return p
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// SetDocumentProperties sets the document properties.
func (p *Presentation) SetDocumentProperties(props *DocumentProperties) {
	p.properties = props
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// GetTheme returns the document theme.
func (p *Presentation) GetTheme() *Theme {
	return p.theme
}

// SetTheme replaces the document theme. A nil theme restores the default.
func (p *Presentation) SetTheme(t *Theme) {
	if t == nil {
		t = NewTheme()
	}
	p.theme = t
}

// SetSlideNumbers toggles the slide number field on every slide.
func (p *Presentation) SetSlideNumbers(show bool) {
	p.slideNumbers = show
}

// HasSlideNumbers reports whether slide numbers are shown.
func (p *Presentation) HasSlideNumbers() bool {
	return p.slideNumbers
}

// CreateSlide creates a new slide and adds it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// GetActiveSlide returns the currently active slide.
func (p *Presentation) GetActiveSlide() *Slide {
	if len(p.slides) == 0 {
		return nil
	}
	if p.activeSlideIndex >= len(p.slides) {
		p.activeSlideIndex = 0
	}
	return p.slides[p.activeSlideIndex]
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, errOutOfRange
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides.
func (p *Presentation) GetAllSlides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// DocumentProperties holds standard and custom document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
	customProps    map[string]*CustomProperty
}

// CustomProperty represents a custom document property.
type CustomProperty struct {
	Name  string
	Value interface{}
	Type  PropertyType
}

// PropertyType represents the type of a custom property.
type PropertyType int

const (
	PropertyTypeString PropertyType = iota
	PropertyTypeBoolean
	PropertyTypeInteger
	PropertyTypeFloat
	PropertyTypeDate
	PropertyTypeUnknown
)

// DefaultCreator is the creator recorded when none is set.
const DefaultCreator = "GoDeck"

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        DefaultCreator,
		LastModifiedBy: DefaultCreator,
		Created:        now,
		Modified:       now,
		Revision:       "1",
		customProps:    make(map[string]*CustomProperty),
	}
}

// SetCustomProperty sets a custom property.
func (dp *DocumentProperties) SetCustomProperty(name string, value interface{}, propType PropertyType) {
	if dp.customProps == nil {
		dp.customProps = make(map[string]*CustomProperty)
	}
	dp.customProps[name] = &CustomProperty{
		Name:  name,
		Value: value,
		Type:  propType,
	}
}

// IsCustomPropertySet checks if a custom property exists.
func (dp *DocumentProperties) IsCustomPropertySet(name string) bool {
	_, ok := dp.customProps[name]
	return ok
}

// GetCustomProperties returns all custom property names in sorted order.
func (dp *DocumentProperties) GetCustomProperties() []string {
	names := make([]string, 0, len(dp.customProps))
	for name := range dp.customProps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCustomPropertyValue returns the value of a custom property.
func (dp *DocumentProperties) GetCustomPropertyValue(name string) interface{} {
	if prop, ok := dp.customProps[name]; ok {
		return prop.Value
	}
	return nil
}

// GetCustomPropertyType returns the type of a custom property.
func (dp *DocumentProperties) GetCustomPropertyType(name string) PropertyType {
	if prop, ok := dp.customProps[name]; ok {
		return prop.Type
	}
	return PropertyTypeUnknown
}

var errOutOfRange = errors.New("index out of range")

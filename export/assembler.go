package export

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/render"
	"github.com/VantageDataChat/GoDeck/resolve"
)

// UntitledDeck titles a synthesized slide for a deck with no title.
const UntitledDeck = "Untitled deck"

// DeckIDProperty is the custom document property holding the deck id.
const DeckIDProperty = "DeckID"

// Report summarizes one compilation.
type Report struct {
	Slides       int
	Components   int
	Placeholders int
	Failures     []*render.ComponentRenderError
}

// Assembler compiles a deck into an in-memory presentation.
type Assembler struct {
	Registry     *render.Registry
	Log          logrus.FieldLogger
	Creator      string
	Company      string
	SlideNumbers bool
}

// NewAssembler returns an assembler using the built-in handlers.
func NewAssembler(log logrus.FieldLogger) *Assembler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{
		Registry: render.NewDefaultRegistry(),
		Log:      log,
		Creator:  pptx.DefaultCreator,
	}
}

// Assemble builds one slide per section. It never fails: components that
// cannot be drawn become placeholders and are listed in the report. d is
// not modified.
func (a *Assembler) Assemble(d *deck.Deck) (*pptx.Presentation, *Report) {
	registry := a.Registry
	if registry == nil {
		registry = render.NewDefaultRegistry()
	}
	var log logrus.FieldLogger = logrus.StandardLogger()
	if a.Log != nil {
		log = a.Log
	}

	p := pptx.New()
	p.GetLayout().SetLayout(pptx.LayoutScreen16x9)
	p.SetSlideNumbers(a.SlideNumbers)

	theme := d.ThemeOrEmpty()
	p.SetTheme(documentTheme(theme))
	a.setProperties(p, d)

	ctx := render.NewContext(theme, log)
	full := slideBox(p)

	if len(d.Sections) == 0 {
		titleSlide(ctx, p.GetActiveSlide(), full, d)
	}
	for i, sec := range d.Sections {
		s := p.GetActiveSlide()
		if i > 0 {
			s = p.CreateSlide()
		}
		buildSlide(ctx, registry, s, full, i, sec)
	}

	if err := p.Validate(); err != nil {
		log.WithField("deck_id", d.ID.String()).WithError(err).Warn("presentation has structural issues")
	}

	return p, &Report{
		Slides:       p.GetSlideCount(),
		Components:   d.ComponentCount(),
		Placeholders: ctx.Placeholders,
		Failures:     ctx.Failures,
	}
}

func buildSlide(ctx *render.Context, registry *render.Registry, s *pptx.Slide, full resolve.Box, index int, sec deck.Section) {
	ctx.SectionID = sec.ID.String()
	s.SetName(resolve.Cascade(sec.Title.String(), "Slide "+strconv.Itoa(index+1)))

	var style deck.SlideStyle
	if sec.SlideStyle != nil {
		style = *sec.SlideStyle
	}
	colors := ctx.Theme.Colors
	render.SlideBackground(s, style.BackgroundColor.String(), colors.SlideBackground.String(), colors.Background.String())
	render.BackgroundPicture(ctx, s, full, style.BackgroundImage.Trimmed())
	if !style.Notes.IsBlank() {
		s.SetNotes(style.Notes.Trimmed())
	}

	switch {
	case len(sec.Components) > 0:
		for _, c := range render.SortForStacking(sec.Components) {
			_ = registry.Dispatch(ctx, s, c)
		}
	case !sec.Title.IsBlank():
		render.SlideTitle(ctx, s, full.Inset(pptx.Inch(0.5)), sec.Title.Trimmed())
	default:
		render.EmptySlide(ctx, s, full)
	}
}

// titleSlide draws the deck title and description on the only slide of a
// deck without sections.
func titleSlide(ctx *render.Context, s *pptx.Slide, full resolve.Box, d *deck.Deck) {
	colors := ctx.Theme.Colors
	render.SlideBackground(s, colors.SlideBackground.String(), colors.Background.String())
	title := resolve.Cascade(d.Title.String(), UntitledDeck)
	s.SetName(title)

	body := full.Inset(pptx.Inch(0.5))
	if d.Description.IsBlank() {
		render.SlideTitle(ctx, s, body, title)
		return
	}
	top, bottom := body.SplitV(0.6)
	render.SlideTitle(ctx, s, top, title)
	render.Subtitle(ctx, s, bottom, d.Description.Trimmed())
}

func (a *Assembler) setProperties(p *pptx.Presentation, d *deck.Deck) {
	props := p.GetDocumentProperties()
	props.Title = resolve.Cascade(d.Title.String(), UntitledDeck)
	props.Creator = resolve.Cascade(d.Author.String(), a.Creator, pptx.DefaultCreator)
	props.LastModifiedBy = props.Creator
	props.Subject = d.Description.Trimmed()
	props.Description = d.Description.Trimmed()
	props.Company = resolve.Cascade(d.Company.String(), a.Company)

	id := d.ID.Trimmed()
	if id == "" {
		id = uuid.New().String()
	}
	props.SetCustomProperty(DeckIDProperty, id, pptx.PropertyTypeString)
}

// documentTheme maps the deck theme onto the document theme part so that
// theme-aware editors pick up the same palette and fonts.
func documentTheme(t deck.Theme) *pptx.Theme {
	doc := pptx.NewTheme()
	doc.MajorFont = resolve.ResolveFontFamily("", t.Fonts, resolve.FontHeading, doc.MajorFont)
	doc.MinorFont = resolve.ResolveFontFamily("", t.Fonts, resolve.FontBody, doc.MinorFont)
	for i, c := range []deck.Text{t.Colors.Primary, t.Colors.Secondary, t.Colors.Accent} {
		if hex := resolve.ResolveColor(c.String(), "", ""); pptx.IsValidHex(hex) {
			doc.SetAccent(i, pptx.NewColor(hex))
		}
	}
	if hex := resolve.ResolveColor(t.Colors.Text.String(), "", ""); pptx.IsValidHex(hex) {
		doc.Dark2 = pptx.NewColor(hex)
	}
	return doc
}

func slideBox(p *pptx.Presentation) resolve.Box {
	l := p.GetLayout()
	return resolve.Box{W: l.CX, H: l.CY}
}

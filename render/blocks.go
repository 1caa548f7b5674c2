package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/VantageDataChat/GoDeck/deck"
	"github.com/VantageDataChat/GoDeck/pptx"
	"github.com/VantageDataChat/GoDeck/resolve"
)

const (
	positiveColor = "059669"
	negativeColor = "DC2626"
)

// Metric renders metric and stat components: a large value, a label and an
// optional change colored by direction.
func Metric(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Value  deck.Text `json:"value"`
		Label  deck.Text `json:"label"`
		Title  deck.Text `json:"title"`
		Change deck.Text `json:"change"`
		Trend  deck.Text `json:"trend"`
		Prefix deck.Text `json:"prefix"`
		Suffix deck.Text `json:"suffix"`
	}
	if !decodePayload(c, &p) {
		_ = p.Value.UnmarshalJSON(c.Data)
	}
	value := p.Prefix.Trimmed() + resolve.Cascade(p.Value.String(), "—") + p.Suffix.Trimmed()
	label := resolve.Cascade(p.Label.String(), p.Title.String())

	st := c.StyleOrEmpty()
	box := resolve.BoxFromLayout(c.Layout)
	if !st.BackgroundColor.IsBlank() || !st.BorderColor.IsBlank() {
		panel := s.CreateAutoShape().SetAutoShapeType(pptx.AutoShapeRoundedRect)
		box.Apply(panel)
		panel.SetName("metric panel")
		applyBoxStyle(&panel.BaseShape, st)
		box = box.Inset(pptx.Inch(0.08))
	}

	valueBox, rest := box.SplitV(0.55)
	align := resolve.Alignment(st.TextAlign, pptx.HorizontalCenter)

	vo := ctx.textOptions(st, resolve.FontHeading, 36, true)
	vo.color = resolve.Color(st.Color.String(), ctx.primary(), defaultPrimary)
	vo.align = align
	vo.anchor = pptx.TextAnchorBottom
	addTextBox(s, valueBox, value, vo).SetName("metric value")

	change := p.Change.Trimmed()
	labelBox, changeBox := rest, resolve.Box{}
	if change != "" {
		labelBox, changeBox = rest.SplitV(0.5)
	}
	if label != "" {
		lo := ctx.plainText(14, mutedColor)
		lo.align = align
		addTextBox(s, labelBox, label, lo).SetName("metric label")
	}
	if change != "" {
		co := ctx.plainText(12, changeColor(change, p.Trend.Trimmed()))
		co.align = align
		co.bold = true
		addTextBox(s, changeBox, change, co).SetName("metric change")
	}
	return nil
}

// changeColor picks green for upward and red for downward changes.
func changeColor(change, trend string) string {
	switch strings.ToLower(trend) {
	case "up", "positive", "increase":
		return positiveColor
	case "down", "negative", "decrease":
		return negativeColor
	}
	if strings.HasPrefix(change, "-") || strings.HasPrefix(change, "−") || strings.HasPrefix(change, "↓") {
		return negativeColor
	}
	if f, ok := deck.ParseLeadingFloat(change); ok && f < 0 {
		return negativeColor
	}
	return positiveColor
}

type timelineEvent struct {
	Date        deck.Text `json:"date"`
	Title       deck.Text `json:"title"`
	Label       deck.Text `json:"label"`
	Description deck.Text `json:"description"`
}

// Timeline renders milestones as ovals on a horizontal axis with the date
// above and the title below each marker.
func Timeline(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Items      []timelineEvent `json:"items"`
		Events     []timelineEvent `json:"events"`
		Milestones []timelineEvent `json:"milestones"`
	}
	var events []timelineEvent
	if decodePayload(c, &p) {
		for _, list := range [][]timelineEvent{p.Items, p.Events, p.Milestones} {
			if len(list) > 0 {
				events = list
				break
			}
		}
	} else {
		_ = decodeRawList(c, &events)
	}

	box := resolve.BoxFromLayout(c.Layout)
	if len(events) == 0 {
		Placeholder(ctx, s, box, "Timeline: no events")
		return nil
	}

	axisY := box.Y + box.H/2
	axis := s.CreateLineShape()
	axis.SetName("timeline axis")
	axis.SetBounds(box.X, axisY, box.W, 0)
	axis.SetLineColor(resolve.Color(ctx.textColor(), "", lineColor))
	axis.SetLineWidth(pptx.Point(2))

	slot := box.W / int64(len(events))
	marker := min(pptx.Inch(0.25), max(slot/3, 1))
	half := box.H / 2
	dotFill := ctx.primary()
	for i, ev := range events {
		center := box.X + slot*int64(i) + slot/2
		dot := addBox(s, resolve.Box{X: center - marker/2, Y: axisY - marker/2, W: marker, H: marker},
			pptx.AutoShapeEllipse, dotFill, "", textOptions{})
		dot.SetName("milestone " + strconv.Itoa(i+1))

		textW := max(slot-pptx.Inch(0.05), 1)
		textX := center - textW/2
		if date := ev.Date.Trimmed(); date != "" {
			do := ctx.plainText(11, mutedColor)
			do.align = pptx.HorizontalCenter
			do.anchor = pptx.TextAnchorBottom
			addTextBox(s, resolve.Box{X: textX, Y: box.Y, W: textW, H: max(half-marker, 1)}, date, do)
		}
		title := resolve.Cascade(ev.Title.String(), ev.Label.String())
		lines := make([]string, 0, 2)
		if title != "" {
			lines = append(lines, title)
		}
		if d := ev.Description.Trimmed(); d != "" {
			lines = append(lines, d)
		}
		if len(lines) > 0 {
			to := ctx.plainText(12, ctx.textColor())
			to.align = pptx.HorizontalCenter
			shape := addTextBox(s, resolve.Box{X: textX, Y: axisY + marker, W: textW, H: max(half-marker, 1)}, strings.Join(lines, "\n"), to)
			if title != "" {
				styleRun(shape.GetParagraphs()[0].GetElements()[0].(*pptx.TextRun), to.with(func(t *textOptions) { t.bold = true }))
			}
		}
	}
	return nil
}

// TeamMember renders a profile card with an avatar, name, role and bio.
func TeamMember(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Name   deck.Text `json:"name"`
		Role   deck.Text `json:"role"`
		Title  deck.Text `json:"title"`
		Bio    deck.Text `json:"bio"`
		Image  deck.Text `json:"image"`
		Avatar deck.Text `json:"avatar"`
		Photo  deck.Text `json:"photo"`
	}
	decodePayload(c, &p)

	st := c.StyleOrEmpty()
	box := resolve.BoxFromLayout(c.Layout)
	card := addBox(s, box, pptx.AutoShapeRoundedRect, resolve.Cascade(st.BackgroundColor.String(), lightColor), "", textOptions{})
	card.SetName("team member")
	card.GetShadow().SetVisible(true)
	applyBorder(&card.BaseShape, st)

	inner := box.Inset(pptx.Inch(0.1))
	avatarBox, textBox := inner.SplitH(0.35)
	avatarBox = centeredSquare(avatarBox)
	name := resolve.Cascade(p.Name.String(), "Team member")

	if ref := resolve.Cascade(p.Avatar.String(), p.Image.String(), p.Photo.String()); UsableImageRef(ref) {
		pic := s.CreateDrawingShape()
		avatarBox.Apply(pic)
		pic.SetName("avatar")
		pic.SetImageSource(ref)
		pic.SetFit(pptx.ImageFitCover)
		pic.SetDescription(name)
	} else {
		ao := ctx.plainText(20, defaultBackground)
		ao.bold = true
		ao.align = pptx.HorizontalCenter
		ao.anchor = pptx.TextAnchorMiddle
		addBox(s, avatarBox, pptx.AutoShapeEllipse, ctx.primary(), initials(name), ao).SetName("avatar")
	}

	lines := []string{name}
	if role := resolve.Cascade(p.Role.String(), p.Title.String()); role != "" {
		lines = append(lines, role)
	}
	if bio := deck.FlattenString(p.Bio.Trimmed(), ""); bio != "" {
		lines = append(lines, bio)
	}
	o := ctx.textOptions(st, resolve.FontBody, 12, false)
	o.anchor = pptx.TextAnchorMiddle
	shape := addTextBox(s, textBox.Inset(pptx.Inch(0.05)), strings.Join(lines, "\n"), o)
	shape.SetName("team member details")
	paras := shape.GetParagraphs()
	styleRun(paras[0].GetElements()[0].(*pptx.TextRun), o.with(func(t *textOptions) {
		t.bold = true
		t.size = o.size + 6
	}))
	if len(paras) > 1 && resolve.Cascade(p.Role.String(), p.Title.String()) != "" {
		styleRun(paras[1].GetElements()[0].(*pptx.TextRun), o.with(func(t *textOptions) {
			t.color = resolve.Color(mutedColor, "", defaultTextColor)
		}))
	}
	return nil
}

// initials returns up to two upper-case initials of a name.
func initials(name string) string {
	var out []string
	for _, word := range strings.Fields(name) {
		if len(out) == 2 {
			break
		}
		out = append(out, initial(word))
	}
	return strings.Join(out, "")
}

type swotQuadrant struct {
	title string
	key   string
	fill  string
}

var swotQuadrants = []swotQuadrant{
	{"Strengths", "strengths", "D1FAE5"},
	{"Weaknesses", "weaknesses", "FEE2E2"},
	{"Opportunities", "opportunities", "DBEAFE"},
	{"Threats", "threats", "FEF3C7"},
}

// SWOT renders a 2×2 grid of strengths, weaknesses, opportunities and
// threats.
func SWOT(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Strengths     []deck.ListItem `json:"strengths"`
		Weaknesses    []deck.ListItem `json:"weaknesses"`
		Opportunities []deck.ListItem `json:"opportunities"`
		Threats       []deck.ListItem `json:"threats"`
	}
	decodePayload(c, &p)
	lists := map[string][]deck.ListItem{
		"strengths":     p.Strengths,
		"weaknesses":    p.Weaknesses,
		"opportunities": p.Opportunities,
		"threats":       p.Threats,
	}

	st := c.StyleOrEmpty()
	cells := resolve.BoxFromLayout(c.Layout).Grid(2, 2, pptx.Inch(0.05))
	o := ctx.textOptions(st, resolve.FontBody, 12, false)
	for i, q := range swotQuadrants {
		shape := s.CreateAutoShape()
		cells[i].Apply(shape)
		shape.SetName(q.title)
		shape.SetSolidFill(pptx.NewColor(q.fill))
		shape.SetTextAnchor(pptx.TextAnchorTop)
		writeLines(shape, []string{q.title}, o.with(func(t *textOptions) {
			t.bold = true
			t.size = o.size + 4
			t.font = ctx.font(st.FontFamily, resolve.FontHeading)
		}))
		writeItems(shape, listItems(lists[q.key], listBullets), listBullets, o)
	}
	return nil
}

// Progress renders a track with a proportional bar and a percentage label.
func Progress(ctx *Context, s *pptx.Slide, c deck.Component) error {
	var p struct {
		Value deck.Number `json:"value"`
		Max   deck.Number `json:"max"`
		Label deck.Text   `json:"label"`
		Color deck.Text   `json:"color"`
	}
	if !decodePayload(c, &p) {
		_ = p.Value.UnmarshalJSON(c.Data)
	}
	limit := p.Max.Or(100)
	if limit <= 0 {
		limit = 100
	}
	frac := p.Value.Or(0) / limit
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	pct := strconv.Itoa(int(math.Round(frac*100))) + "%"

	st := c.StyleOrEmpty()
	box := resolve.BoxFromLayout(c.Layout)
	labelBox, trackBox := box.SplitV(0.5)
	label := pct
	if !p.Label.IsBlank() {
		label = p.Label.Trimmed() + "  " + pct
	}
	lo := ctx.textOptions(st, resolve.FontBody, 12, false)
	lo.anchor = pptx.TextAnchorBottom
	addTextBox(s, labelBox, label, lo).SetName("progress label")

	trackH := min(trackBox.H, pptx.Inch(0.2))
	trackBox = resolve.Box{X: trackBox.X, Y: trackBox.Y + (trackBox.H-trackH)/2, W: trackBox.W, H: trackH}
	addBox(s, trackBox, pptx.AutoShapeRoundedRect, resolve.Cascade(st.BackgroundColor.String(), lightColor), "", textOptions{}).SetName("progress track")
	if frac > 0 {
		bar := trackBox
		bar.W = max(int64(float64(trackBox.W)*frac), 1)
		fill := resolve.Cascade(p.Color.String(), st.Color.String(), ctx.primary())
		addBox(s, bar, pptx.AutoShapeRoundedRect, fill, "", textOptions{}).SetName("progress bar")
	}
	return nil
}

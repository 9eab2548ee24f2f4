package composer

import (
	"image/color"
	"math"

	"bar-council-campaign/locale"
	"bar-council-campaign/models"
)

var (
	gold      = color.RGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF}
	goldFaint = color.RGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0x80}
	white     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	bgTop     = color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}
	bgBottom  = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// TextStyle describes how one line of text is drawn
type TextStyle struct {
	Size  float64
	Bold  bool
	Color color.Color
}

var (
	styleName          = TextStyle{Size: 44, Bold: true, Color: white}
	styleDesignation   = TextStyle{Size: 20, Color: white}
	styleSupporting    = TextStyle{Size: 40, Bold: true, Color: gold}
	stylePleaseSupport = TextStyle{Size: 30, Bold: true, Color: gold}
	styleMessage       = TextStyle{Size: 26, Bold: true, Color: gold}
	styleSupporterName = TextStyle{Size: 26, Bold: true, Color: white}
	styleSupporterInfo = TextStyle{Size: 22, Color: white}
	styleFooter        = TextStyle{Size: 18, Color: gold}
)

// Layout holds the card geometry. All values are in pixels.
type Layout struct {
	Width           int
	Height          int
	MinTopMargin    float64
	Padding         float64
	PhotoSize       int
	PhotoInset      float64
	PhotoRingWidth  float64
	FooterOffset    float64
	MessageWrap     WrapPolicy
	MessageMaxChars int
}

// DefaultLayout is the 1080x1920 portrait card
func DefaultLayout() Layout {
	return Layout{
		Width:           1080,
		Height:          1920,
		MinTopMargin:    100,
		Padding:         40,
		PhotoSize:       220,
		PhotoInset:      4,
		PhotoRingWidth:  8,
		FooterOffset:    50,
		MessageWrap:     WrapWords,
		MessageMaxChars: 35,
	}
}

// TextWidth is the maximum width of a wrapped line
func (l Layout) TextWidth() float64 {
	return float64(l.Width) - 2*l.Padding
}

// PlacedLine is one line of text in the plan. Y is the top of the line.
type PlacedLine struct {
	Text  string
	Style TextStyle
	Y     float64
}

// Plan is the result of the measuring pass: every line with its final position
type Plan struct {
	Top         float64
	BlockHeight float64
	PhotoY      float64
	Lines       []PlacedLine
	Footer      PlacedLine
}

// Texts returns the text of every line in top-to-bottom order, footer last
func (p *Plan) Texts() []string {
	texts := make([]string, 0, len(p.Lines)+1)
	for _, l := range p.Lines {
		texts = append(texts, l.Text)
	}
	return append(texts, p.Footer.Text)
}

// planBuilder lays lines out relative to the top of the content block
type planBuilder struct {
	layout Layout
	faces  *faceCache
	y      float64
	lines  []PlacedLine
}

func (b *planBuilder) add(text string, style TextStyle, advance float64) {
	b.lines = append(b.lines, PlacedLine{Text: text, Style: style, Y: b.y})
	b.y += advance
}

func (b *planBuilder) addWrapped(text string, style TextStyle, lineHeight float64) {
	m := faceMeasurer{face: b.faces.face(style.Size, style.Bold)}
	for _, line := range WrapWordsToWidth(m, text, b.layout.TextWidth()) {
		b.add(line, style, lineHeight)
	}
}

func (b *planBuilder) messageLines(message string) []string {
	if b.layout.MessageWrap == WrapChars {
		return WrapCharacters(message, b.layout.MessageMaxChars)
	}
	m := faceMeasurer{face: b.faces.face(styleMessage.Size, styleMessage.Bold)}
	return WrapWordsToWidth(m, message, b.layout.TextWidth())
}

// buildPlan measures every line with the faces used for drawing and centers the block
func buildPlan(layout Layout, faces *faceCache, req models.CardRequest) *Plan {
	strs := locale.Card(req.Language)
	b := &planBuilder{layout: layout, faces: faces}

	b.y = float64(layout.PhotoSize) + 25

	b.add(req.CandidateName, styleName, 55)
	b.addWrapped(strs.Designation, styleDesignation, 28)
	b.y += 35

	b.add(strs.Supporting, styleSupporting, 55)
	b.add(strs.PleaseSupport, stylePleaseSupport, 40)

	if msg := req.NormalizedMessage(); msg != "" {
		for _, line := range b.messageLines(msg) {
			b.add(line, styleMessage, 32)
		}
		b.y += 25
	}

	supporter := req.Supporter.Trimmed()
	if supporter.Name != "" {
		b.add("- "+supporter.Name+", "+strs.RoleLabel, styleSupporterName, 35)
		details := []struct{ label, value string }{
			{strs.EnrollmentLabel, supporter.EnrollmentNumber},
			{strs.DistrictLabel, supporter.District},
			{strs.BarAssociationLabel, supporter.BarAssociation},
			{strs.PhoneLabel, supporter.Phone},
		}
		for _, d := range details {
			if d.value == "" {
				continue
			}
			b.addWrapped(d.label+": "+d.value, styleSupporterInfo, 32)
		}
	}

	blockHeight := b.y
	top := math.Max(layout.MinTopMargin, (float64(layout.Height)-blockHeight)/2)

	plan := &Plan{
		Top:         top,
		BlockHeight: blockHeight,
		PhotoY:      top,
		Lines:       make([]PlacedLine, len(b.lines)),
		Footer: PlacedLine{
			Text:  strs.Footer,
			Style: styleFooter,
			Y:     float64(layout.Height) - layout.FooterOffset,
		},
	}
	for i, l := range b.lines {
		l.Y += top
		plan.Lines[i] = l
	}
	return plan
}

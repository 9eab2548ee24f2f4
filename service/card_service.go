package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bar-council-campaign/composer"
	"bar-council-campaign/metrics"
	"bar-council-campaign/models"
)

// CardComposer renders a card request into a PNG card
type CardComposer interface {
	Compose(ctx context.Context, req models.CardRequest) (*composer.Card, error)
}

// Candidate identifies whose card is rendered
type Candidate struct {
	Name  string
	Photo string
}

// RenderedCard is an encoded card ready to be sent to the client
type RenderedCard struct {
	Data        []byte
	Format      CardFormat
	ContentType string
	Filename    string
	PNG         *composer.Card
}

// CardService turns support submissions into support cards for the configured candidate
type CardService struct {
	composer  CardComposer
	candidate Candidate
}

// NewCardService creates a new CardService
func NewCardService(c CardComposer, candidate Candidate) *CardService {
	return &CardService{composer: c, candidate: candidate}
}

// BuildRequest merges the candidate with the submission. Supporter details are
// attached only for detailed support.
func (s *CardService) BuildRequest(sub models.SupportSubmission) models.CardRequest {
	req := models.CardRequest{
		CandidateName:  s.candidate.Name,
		CandidatePhoto: s.candidate.Photo,
		Language:       models.ParseLanguage(sub.Language),
		CustomMessage:  sub.CustomMessage,
	}
	if sub.ResolvedType() == models.SupportTypeDetailed {
		req.Supporter = sub.Supporter()
	}
	return req
}

// Render composes the card for a submission and encodes it in format
func (s *CardService) Render(ctx context.Context, sub models.SupportSubmission, format CardFormat) (*RenderedCard, error) {
	req := s.BuildRequest(sub)
	card, err := s.composer.Compose(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to compose card: %w", err)
	}

	data, err := ConvertCard(card.PNG, format)
	if err != nil {
		return nil, err
	}

	metrics.CardRendered(string(format), string(req.Language))
	log.Printf("🎉 Rendered %s card (%s, %d bytes)", format, req.Language, len(data))
	return &RenderedCard{
		Data:        data,
		Format:      format,
		ContentType: format.ContentType(),
		Filename:    cardFilename(req.Supporter.Name, format),
		PNG:         card,
	}, nil
}

// cardFilename builds the attachment name, e.g. support-card-p-kumar.png
func cardFilename(name string, format CardFormat) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "support-card." + format.Extension()
	}
	return "support-card-" + slug + "." + format.Extension()
}

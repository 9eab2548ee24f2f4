package controller

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"bar-council-campaign/composer"
	"bar-council-campaign/flow"
	"bar-council-campaign/models"
	"bar-council-campaign/service"
)

func testNow() time.Time {
	return time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
}

type fakeRecords struct {
	mu       sync.Mutex
	events   []models.Event
	tokens   []string
	logErr   error
	summary  *models.VoteSummary
	created  bool
	cleared  int
	removed  []string
	saveSeen map[string]bool
	ensured  int
}

func (f *fakeRecords) Log(ctx context.Context, event models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logErr != nil {
		return f.logErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeRecords) logged() []models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Event(nil), f.events...)
}

func (f *fakeRecords) SaveSubscriptionToken(ctx context.Context, token string) (bool, error) {
	if f.saveSeen == nil {
		f.saveSeen = map[string]bool{}
	}
	if f.saveSeen[token] {
		return false, nil
	}
	f.saveSeen[token] = true
	return true, nil
}

func (f *fakeRecords) SubscriptionTokens(ctx context.Context) ([]string, error) {
	return f.tokens, nil
}

func (f *fakeRecords) SubscriberCount(ctx context.Context) (int, error) {
	return len(f.tokens), nil
}

func (f *fakeRecords) ClearSubscribers(ctx context.Context) (int, error) {
	return f.cleared, nil
}

func (f *fakeRecords) SetupVoteSummary(ctx context.Context) (bool, error) {
	return f.created, nil
}

func (f *fakeRecords) EnsureVoteSummary(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensured++
	return nil
}

func (f *fakeRecords) VoteSummary(ctx context.Context) (*models.VoteSummary, error) {
	if f.summary == nil {
		return nil, errors.New("no votes partition")
	}
	return f.summary, nil
}

func (f *fakeRecords) RemoveConflictedPartitions(ctx context.Context, name string) ([]string, error) {
	var out []string
	for _, r := range f.removed {
		if len(r) > len(name) && r[:len(name)] == name {
			out = append(out, r)
		}
	}
	return out, nil
}

var _ service.RecordServiceInterface = (*fakeRecords)(nil)

// syncTasks runs background work inline so tests can assert on its effects
type syncTasks struct {
	names []string
	errs  []error
}

func (s *syncTasks) Go(name string, fn func(ctx context.Context) error) bool {
	s.names = append(s.names, name)
	if err := fn(context.Background()); err != nil {
		s.errs = append(s.errs, err)
	}
	return true
}

type fakeCards struct {
	got    models.SupportSubmission
	format service.CardFormat
	err    error
}

func (f *fakeCards) Render(ctx context.Context, sub models.SupportSubmission, format service.CardFormat) (*service.RenderedCard, error) {
	f.got = sub
	f.format = format
	if f.err != nil {
		return nil, f.err
	}
	return &service.RenderedCard{
		Data:        []byte("card-bytes"),
		Format:      format,
		ContentType: format.ContentType(),
		Filename:    "support-card." + format.Extension(),
		PNG:         &composer.Card{PNG: []byte("png"), Width: 1080, Height: 1920},
	}, nil
}

type fakePages struct {
	state flow.State
	lang  models.Language
	err   error
}

func (f *fakePages) RenderHome(w io.Writer, lang models.Language, state flow.State) error {
	f.lang, f.state = lang, state
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "<html>home "+string(state)+"</html>")
	return err
}

func (f *fakePages) RenderVision(w io.Writer, lang models.Language) error {
	f.lang = lang
	_, err := io.WriteString(w, "<html>vision</html>")
	return err
}

func (f *fakePages) VisionPDF(ctx context.Context, lang models.Language) ([]byte, error) {
	f.lang = lang
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

type fakeBroadcaster struct {
	tokens []string
	all    bool
	err    error
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, tokens []string, title, body string) (*models.BroadcastResult, error) {
	f.tokens = tokens
	return &models.BroadcastResult{SuccessCount: len(tokens), TotalTokens: len(tokens), Batches: 1}, f.err
}

func (f *fakeBroadcaster) BroadcastToAll(ctx context.Context, title, body string) (*models.BroadcastResult, error) {
	f.all = true
	if f.err != nil {
		return nil, f.err
	}
	return &models.BroadcastResult{SuccessCount: 2, FailureCount: 1, TotalTokens: 3, Batches: 1, FailedTokens: []string{"bad"}}, nil
}

type fakeSender struct {
	token string
}

func (f *fakeSender) Send(ctx context.Context, token, title, body string) models.PushResult {
	f.token = token
	return models.PushResult{Token: token, Success: true, MessageID: "m1"}
}

type fakeWhatsApp struct {
	canSend bool
	sent    []string
}

func (f *fakeWhatsApp) Contacts(req models.WhatsAppRequest) []string {
	if req.CSV == "" && len(req.Contacts) == 0 {
		return nil
	}
	return []string{"+919876543210", "+919876543211"}
}

func (f *fakeWhatsApp) BuildLinks(contacts []string, message string) []models.WhatsAppLink {
	links := make([]models.WhatsAppLink, len(contacts))
	for i, c := range contacts {
		links[i] = models.WhatsAppLink{Phone: c, URL: "https://wa.me/" + c[1:]}
	}
	return links
}

func (f *fakeWhatsApp) Send(ctx context.Context, contacts []string, message string) ([]models.WhatsAppDelivery, error) {
	f.sent = contacts
	return []models.WhatsAppDelivery{{Phone: contacts[0], Success: true}, {Phone: contacts[1], Error: "failed"}}, nil
}

func (f *fakeWhatsApp) CanSend() bool {
	return f.canSend
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"bar-council-campaign/models"
	"bar-council-campaign/utils"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrWhatsAppDisabled is returned by Send when no Twilio account is configured
var ErrWhatsAppDisabled = errors.New("whatsapp delivery is not configured")

// WhatsAppMessenger delivers one WhatsApp message and returns its provider id
type WhatsAppMessenger interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}

type twilioMessenger struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioMessenger creates a WhatsAppMessenger backed by the Twilio Messages API
func NewTwilioMessenger(accountSid, authToken, from string) WhatsAppMessenger {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &twilioMessenger{client: client, from: whatsappAddress(from)}
}

func whatsappAddress(phone string) string {
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}

func (m *twilioMessenger) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(m.from)
	params.SetBody(body)

	resp, err := m.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("error sending whatsapp message: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// WhatsAppService prepares and sends WhatsApp outreach messages
type WhatsAppService struct {
	siteURL   string
	messenger WhatsAppMessenger
}

// NewWhatsAppService creates a new WhatsAppService. A nil messenger disables Send.
func NewWhatsAppService(siteURL string, messenger WhatsAppMessenger) *WhatsAppService {
	return &WhatsAppService{siteURL: strings.TrimSuffix(siteURL, "/"), messenger: messenger}
}

// CanSend reports whether direct delivery is configured
func (s *WhatsAppService) CanSend() bool {
	return s.messenger != nil
}

// ParseContacts extracts unique +91 numbers from CSV text
func (s *WhatsAppService) ParseContacts(csv string) []string {
	return utils.ExtractPhoneNumbers(csv)
}

// Contacts merges CSV contacts with an explicit list, normalized and de-duplicated
func (s *WhatsAppService) Contacts(req models.WhatsAppRequest) []string {
	return s.ParseContacts(req.CSV + "\n" + strings.Join(req.Contacts, "\n"))
}

// Text is the message body followed by the vote link
func (s *WhatsAppService) Text(message string) string {
	return message + s.siteURL + "?vote=true"
}

// BuildLinks builds a wa.me link per contact carrying the message and vote link
func (s *WhatsAppService) BuildLinks(contacts []string, message string) []models.WhatsAppLink {
	text := strings.ReplaceAll(url.QueryEscape(s.Text(message)), "+", "%20")
	links := make([]models.WhatsAppLink, 0, len(contacts))
	for _, phone := range contacts {
		links = append(links, models.WhatsAppLink{
			Phone: phone,
			URL:   "https://wa.me/" + utils.DigitsOnly(phone) + "?text=" + text,
		})
	}
	return links
}

// Send delivers the message to every contact in order. A failed contact does not
// stop the rest; cancellation does.
func (s *WhatsAppService) Send(ctx context.Context, contacts []string, message string) ([]models.WhatsAppDelivery, error) {
	if s.messenger == nil {
		return nil, ErrWhatsAppDisabled
	}
	text := s.Text(message)
	deliveries := make([]models.WhatsAppDelivery, 0, len(contacts))
	for _, phone := range contacts {
		if err := ctx.Err(); err != nil {
			return deliveries, err
		}
		sid, err := s.messenger.SendWhatsApp(ctx, phone, text)
		if err != nil {
			log.Printf("❌ WhatsApp to %s failed: %v", phone, err)
			deliveries = append(deliveries, models.WhatsAppDelivery{Phone: phone, Error: err.Error()})
			continue
		}
		deliveries = append(deliveries, models.WhatsAppDelivery{Phone: phone, Success: true, SID: sid})
	}
	log.Printf("✓ WhatsApp outreach finished: %d contacts", len(contacts))
	return deliveries, nil
}

package service

import (
	"context"

	"bar-council-campaign/models"
)

// WhatsAppServiceInterface defines the contract for WhatsApp outreach
type WhatsAppServiceInterface interface {
	Contacts(req models.WhatsAppRequest) []string
	BuildLinks(contacts []string, message string) []models.WhatsAppLink
	Send(ctx context.Context, contacts []string, message string) ([]models.WhatsAppDelivery, error)
	CanSend() bool
}

// Ensure WhatsAppService implements WhatsAppServiceInterface
var _ WhatsAppServiceInterface = (*WhatsAppService)(nil)

package service

import (
	"context"

	"bar-council-campaign/models"
)

// CardServiceInterface defines the contract for support card rendering
type CardServiceInterface interface {
	Render(ctx context.Context, sub models.SupportSubmission, format CardFormat) (*RenderedCard, error)
}

// Ensure CardService implements CardServiceInterface
var _ CardServiceInterface = (*CardService)(nil)

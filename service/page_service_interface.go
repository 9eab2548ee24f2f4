package service

import (
	"context"
	"io"

	"bar-council-campaign/flow"
	"bar-council-campaign/models"
)

// PageServiceInterface defines the contract for landing page rendering
type PageServiceInterface interface {
	RenderHome(w io.Writer, lang models.Language, state flow.State) error
	RenderVision(w io.Writer, lang models.Language) error
	VisionPDF(ctx context.Context, lang models.Language) ([]byte, error)
}

// Ensure PageService implements PageServiceInterface
var _ PageServiceInterface = (*PageService)(nil)

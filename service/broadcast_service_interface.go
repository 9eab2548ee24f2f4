package service

import (
	"context"

	"bar-council-campaign/models"
)

// BroadcastServiceInterface defines the contract for push fan-out
type BroadcastServiceInterface interface {
	Broadcast(ctx context.Context, tokens []string, title, body string) (*models.BroadcastResult, error)
	BroadcastToAll(ctx context.Context, title, body string) (*models.BroadcastResult, error)
}

// Ensure BroadcastService implements BroadcastServiceInterface
var _ BroadcastServiceInterface = (*BroadcastService)(nil)

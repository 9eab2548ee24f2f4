package service

import (
	"context"

	"bar-council-campaign/models"
)

// RecordServiceInterface defines the contract for campaign record keeping
type RecordServiceInterface interface {
	Log(ctx context.Context, event models.Event) error
	SaveSubscriptionToken(ctx context.Context, token string) (bool, error)
	SubscriptionTokens(ctx context.Context) ([]string, error)
	SubscriberCount(ctx context.Context) (int, error)
	ClearSubscribers(ctx context.Context) (int, error)
	SetupVoteSummary(ctx context.Context) (bool, error)
	EnsureVoteSummary(ctx context.Context) error
	VoteSummary(ctx context.Context) (*models.VoteSummary, error)
	RemoveConflictedPartitions(ctx context.Context, name string) ([]string, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bar-council-campaign/models"
	"bar-council-campaign/utils"

	"golang.org/x/sync/errgroup"
)

// maxReportedFailures bounds the failed tokens echoed back to the caller
const maxReportedFailures = 10

// ErrNoSubscribers is returned when a broadcast to all finds no stored tokens
var ErrNoSubscribers = errors.New("no push subscribers found")

// TokenSource lists stored push tokens
type TokenSource interface {
	SubscriptionTokens(ctx context.Context) ([]string, error)
}

// BroadcastOptions tunes fan-out
type BroadcastOptions struct {
	BatchSize   int
	BatchDelay  time.Duration
	Concurrency int
}

// BroadcastService fans a notification out to many tokens in paced batches
type BroadcastService struct {
	sender PushSender
	tokens TokenSource
	opts   BroadcastOptions
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewBroadcastService creates a new BroadcastService
func NewBroadcastService(sender PushSender, tokens TokenSource, opts BroadcastOptions) *BroadcastService {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &BroadcastService{sender: sender, tokens: tokens, opts: opts, sleep: sleepContext}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Broadcast sends title and body to every token. Tokens within a batch are sent
// concurrently; batches are separated by the configured delay. On cancellation the
// counts cover the batches already sent and the context error is returned.
func (s *BroadcastService) Broadcast(ctx context.Context, tokens []string, title, body string) (*models.BroadcastResult, error) {
	result := &models.BroadcastResult{TotalTokens: len(tokens)}
	batches := utils.Chunk(tokens, s.opts.BatchSize)

	for i, batch := range batches {
		if i > 0 {
			if err := s.sleep(ctx, s.opts.BatchDelay); err != nil {
				return result, fmt.Errorf("broadcast interrupted after %d batches: %w", i, err)
			}
		} else if err := ctx.Err(); err != nil {
			return result, err
		}

		results := make([]models.PushResult, len(batch))
		var g errgroup.Group
		g.SetLimit(s.opts.Concurrency)
		for j, token := range batch {
			j, token := j, token
			g.Go(func() error {
				results[j] = s.sender.Send(ctx, token, title, body)
				return nil
			})
		}
		g.Wait()

		result.Batches++
		for _, r := range results {
			if r.Success {
				result.SuccessCount++
				continue
			}
			result.FailureCount++
			if len(result.FailedTokens) < maxReportedFailures {
				result.FailedTokens = append(result.FailedTokens, r.Token)
			}
		}
		log.Printf("📤 Batch %d/%d sent: %d tokens", i+1, len(batches), len(batch))
	}

	log.Printf("🎉 Broadcast finished: success=%d failure=%d total=%d", result.SuccessCount, result.FailureCount, result.TotalTokens)
	return result, nil
}

// BroadcastToAll sends to every stored subscriber
func (s *BroadcastService) BroadcastToAll(ctx context.Context, title, body string) (*models.BroadcastResult, error) {
	tokens, err := s.tokens.SubscriptionTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %w", err)
	}
	if len(tokens) == 0 {
		return nil, ErrNoSubscribers
	}
	return s.Broadcast(ctx, tokens, title, body)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"bar-council-campaign/metrics"
	"bar-council-campaign/models"
	"bar-council-campaign/repository"
	"bar-council-campaign/utils"
)

// tokenColumn is the FCM Token column of the subscribers partition
const tokenColumn = 1

// voteOrderColumn is the Preferential Order column of the votes partition
const voteOrderColumn = 1

var voteSummaryHeaders = []string{"Preferential Order", "Count", "Percentage", "Status"}

// RecordService writes campaign events to the record store and reads them back
type RecordService struct {
	store repository.RecordStore
	now   func() time.Time

	// serializes the read-then-append of subscription tokens
	tokenMu sync.Mutex

	summaryMu    sync.Mutex
	summaryReady bool
}

// NewRecordService creates a new RecordService
func NewRecordService(store repository.RecordStore) *RecordService {
	return &RecordService{store: store, now: utils.NowIST}
}

// Ensure RecordService implements RecordServiceInterface
var _ RecordServiceInterface = (*RecordService)(nil)

// Log appends one event to its partition, creating the partition on first use
func (s *RecordService) Log(ctx context.Context, event models.Event) error {
	partition := event.Partition()
	if err := s.store.EnsurePartition(ctx, partition, event.Headers()); err != nil {
		return fmt.Errorf("failed to prepare %s: %w", partition, err)
	}
	if err := s.store.Append(ctx, partition, [][]interface{}{event.Row()}); err != nil {
		return fmt.Errorf("failed to log to %s: %w", partition, err)
	}
	metrics.RecordLogged(partition)
	return nil
}

// SaveSubscriptionToken stores a push token unless it is already present.
// It reports whether a new row was written.
func (s *RecordService) SaveSubscriptionToken(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, fmt.Errorf("token is required")
	}

	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	event := models.SubscriptionSaved{At: s.now(), Token: token}
	if err := s.store.EnsurePartition(ctx, event.Partition(), event.Headers()); err != nil {
		return false, fmt.Errorf("failed to prepare subscribers: %w", err)
	}
	existing, err := s.store.ReadColumn(ctx, models.PartitionSubscribers, tokenColumn)
	if err != nil {
		return false, fmt.Errorf("failed to read tokens: %w", err)
	}
	for _, t := range existing {
		if strings.TrimSpace(t) == token {
			log.Printf("ℹ️  Token already subscribed, skipping")
			return false, nil
		}
	}

	if err := s.Log(ctx, event); err != nil {
		return false, err
	}
	log.Printf("✓ Saved push subscription token")
	return true, nil
}

// SubscriptionTokens returns every stored token long enough to be a real FCM token
func (s *RecordService) SubscriptionTokens(ctx context.Context) ([]string, error) {
	values, err := s.store.ReadColumn(ctx, models.PartitionSubscribers, tokenColumn)
	if errors.Is(err, repository.ErrPartitionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens: %w", err)
	}
	return utils.ValidTokens(values), nil
}

// SubscriberCount counts valid stored tokens
func (s *RecordService) SubscriberCount(ctx context.Context) (int, error) {
	tokens, err := s.SubscriptionTokens(ctx)
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// ClearSubscribers removes every subscriber row and keeps the header
func (s *RecordService) ClearSubscribers(ctx context.Context) (int, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	cleared, err := s.store.ClearRows(ctx, models.PartitionSubscribers)
	if errors.Is(err, repository.ErrPartitionNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear subscribers: %w", err)
	}
	log.Printf("🧹 Cleared %d subscribers", cleared)
	return cleared, nil
}

// SetupVoteSummary creates the summary partition with live formulas for orders 1..24
// and a total row. It reports false when the summary already exists.
func (s *RecordService) SetupVoteSummary(ctx context.Context) (bool, error) {
	partitions, err := s.store.Partitions(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list partitions: %w", err)
	}
	for _, p := range partitions {
		if p == models.PartitionVoteSummary {
			return false, nil
		}
	}

	if err := s.store.EnsurePartition(ctx, models.PartitionVoteSummary, voteSummaryHeaders); err != nil {
		return false, fmt.Errorf("failed to create summary: %w", err)
	}

	rows := make([][]interface{}, 0, models.MaxPreferentialOrder+1)
	for order := models.MinPreferentialOrder; order <= models.MaxPreferentialOrder; order++ {
		row := order + 1
		rows = append(rows, []interface{}{
			order,
			fmt.Sprintf("=COUNTIF('%s'!B:B, %d)", models.PartitionVotes, order),
			fmt.Sprintf("=IF(SUM(B:B)=0, 0, (B%d/SUM(B:B))*100)", row),
			fmt.Sprintf(`=IF(B%d>0, "Active", "")`, row),
		})
	}
	last := models.MaxPreferentialOrder + 1
	rows = append(rows, []interface{}{"TOTAL", fmt.Sprintf("=SUM(B2:B%d)", last), "100%", ""})

	if err := s.store.WriteRows(ctx, models.PartitionVoteSummary, 2, rows); err != nil {
		return false, fmt.Errorf("failed to write summary formulas: %w", err)
	}
	log.Printf("✓ Created '%s' with formulas", models.PartitionVoteSummary)
	return true, nil
}

// EnsureVoteSummary sets up the summary partition the first time it is called in this
// process and does nothing afterwards
func (s *RecordService) EnsureVoteSummary(ctx context.Context) error {
	s.summaryMu.Lock()
	defer s.summaryMu.Unlock()
	if s.summaryReady {
		return nil
	}
	if _, err := s.SetupVoteSummary(ctx); err != nil {
		return err
	}
	s.summaryReady = true
	return nil
}

// VoteSummary tallies stored votes per preferential order. Percentages are rounded
// to two decimals; values outside 1..24 are ignored.
func (s *RecordService) VoteSummary(ctx context.Context) (*models.VoteSummary, error) {
	values, err := s.store.ReadColumn(ctx, models.PartitionVotes, voteOrderColumn)
	if err != nil && !errors.Is(err, repository.ErrPartitionNotFound) {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	counts := make(map[int]int)
	total := 0
	for _, v := range values {
		order, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || order < models.MinPreferentialOrder || order > models.MaxPreferentialOrder {
			continue
		}
		counts[order]++
		total++
	}

	summary := &models.VoteSummary{Total: total}
	for order := models.MinPreferentialOrder; order <= models.MaxPreferentialOrder; order++ {
		row := models.VoteSummaryRow{Order: order, Count: counts[order]}
		if total > 0 {
			row.Percentage = math.Round(float64(counts[order])/float64(total)*10000) / 100
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary, nil
}

// RemoveConflictedPartitions deletes partitions whose name contains name without
// being equal to it, such as the "_conflict" copies Sheets creates on concurrent adds
func (s *RecordService) RemoveConflictedPartitions(ctx context.Context, name string) ([]string, error) {
	partitions, err := s.store.Partitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	var removed []string
	for _, p := range partitions {
		if p == name || !strings.Contains(p, name) {
			continue
		}
		if err := s.store.DeletePartition(ctx, p); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", p, err)
		}
		log.Printf("🗑️  Removed conflicted partition: %s", p)
		removed = append(removed, p)
	}
	return removed, nil
}

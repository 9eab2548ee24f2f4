package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRecordStore keeps partitions in process memory
type MemoryRecordStore struct {
	mu         sync.RWMutex
	order      []string
	partitions map[string][][]interface{}
}

// NewMemoryRecordStore creates an empty MemoryRecordStore
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{partitions: make(map[string][][]interface{})}
}

// Ensure MemoryRecordStore implements RecordStore
var _ RecordStore = (*MemoryRecordStore)(nil)

// EnsurePartition creates the partition and seeds its headers. An existing partition
// with no header row gets one.
func (s *MemoryRecordStore) EnsurePartition(ctx context.Context, name string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.partitions[name]
	if !ok {
		s.order = append(s.order, name)
	}
	if len(rows) == 0 {
		header := make([]interface{}, len(headers))
		for i, h := range headers {
			header[i] = h
		}
		s.partitions[name] = [][]interface{}{header}
	}
	return nil
}

// Append adds rows after the last row
func (s *MemoryRecordStore) Append(ctx context.Context, name string, rows [][]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.partitions[name]
	if !ok {
		return fmt.Errorf("failed to append to %s: %w", name, ErrPartitionNotFound)
	}
	for _, row := range rows {
		existing = append(existing, copyRow(row))
	}
	s.partitions[name] = existing
	return nil
}

// ReadColumn returns one column of every data row
func (s *MemoryRecordStore) ReadColumn(ctx context.Context, name string, column int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.partitions[name]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: %w", name, ErrPartitionNotFound)
	}
	values := make([]string, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		values = append(values, cellString(row, column))
	}
	return values, nil
}

// WriteRows overwrites rows starting at startRow, growing the partition when needed
func (s *MemoryRecordStore) WriteRows(ctx context.Context, name string, startRow int, rows [][]interface{}) error {
	if startRow < 1 {
		return fmt.Errorf("invalid start row %d", startRow)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.partitions[name]
	if !ok {
		return fmt.Errorf("failed to write %s: %w", name, ErrPartitionNotFound)
	}
	for i, row := range rows {
		idx := startRow - 1 + i
		for len(existing) <= idx {
			existing = append(existing, []interface{}{})
		}
		existing[idx] = copyRow(row)
	}
	s.partitions[name] = existing
	return nil
}

// ClearRows drops every data row and keeps the header
func (s *MemoryRecordStore) ClearRows(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.partitions[name]
	if !ok {
		return 0, fmt.Errorf("failed to clear %s: %w", name, ErrPartitionNotFound)
	}
	if len(rows) <= 1 {
		return 0, nil
	}
	s.partitions[name] = rows[:1]
	return len(rows) - 1, nil
}

// Partitions lists partition names in creation order
func (s *MemoryRecordStore) Partitions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...), nil
}

// DeletePartition removes a partition and its rows
func (s *MemoryRecordStore) DeletePartition(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partitions[name]; !ok {
		return fmt.Errorf("failed to delete %s: %w", name, ErrPartitionNotFound)
	}
	delete(s.partitions, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Rows returns a copy of every row including the header, for inspection in tests and tools
func (s *MemoryRecordStore) Rows(name string) [][]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.partitions[name]
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = copyRow(row)
	}
	return out
}

func copyRow(row []interface{}) []interface{} {
	return append([]interface{}(nil), row...)
}

func cellString(row []interface{}, column int) string {
	if column < 0 || column >= len(row) || row[column] == nil {
		return ""
	}
	return fmt.Sprint(row[column])
}

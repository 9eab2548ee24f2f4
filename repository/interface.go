package repository

import (
	"context"
	"errors"
)

// ErrPartitionNotFound is returned when a partition does not exist
var ErrPartitionNotFound = errors.New("partition not found")

// RecordStore is a tabular log addressed by partition name. Row 1 of every
// partition holds its headers; data rows start at row 2.
type RecordStore interface {
	// EnsurePartition creates the partition with its header row when missing
	EnsurePartition(ctx context.Context, name string, headers []string) error
	Append(ctx context.Context, name string, rows [][]interface{}) error
	// ReadColumn returns the values of a zero-based column, excluding the header row
	ReadColumn(ctx context.Context, name string, column int) ([]string, error)
	// WriteRows overwrites rows starting at the one-based startRow
	WriteRows(ctx context.Context, name string, startRow int, rows [][]interface{}) error
	// ClearRows removes every data row and returns how many were removed
	ClearRows(ctx context.Context, name string) (int, error)
	Partitions(ctx context.Context) ([]string, error)
	DeletePartition(ctx context.Context, name string) error
}

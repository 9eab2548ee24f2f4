package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// runRecordStoreContract runs the behavior every RecordStore backend shares.
// newStore must return an empty store.
func runRecordStoreContract(t *testing.T, newStore func(t *testing.T) RecordStore) {
	tests := []struct {
		name string
		run  func(t *testing.T, ctx context.Context, store RecordStore)
	}{
		{
			name: "append and read column",
			run: func(t *testing.T, ctx context.Context, store RecordStore) {
				mustEnsure(t, store, "Votes", "Timestamp", "Order")
				if err := store.Append(ctx, "Votes", [][]interface{}{{"t1", "3"}, {"t2", 5}}); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
				// a second call keeps existing rows
				mustEnsure(t, store, "Votes", "Timestamp", "Order")

				assertColumn(t, store, "Votes", 1, "3", "5")
				assertColumn(t, store, "Votes", 7, "", "")
			},
		},
		{
			name: "rows written past a gap",
			run: func(t *testing.T, ctx context.Context, store RecordStore) {
				mustEnsure(t, store, "Summary")
				if err := store.WriteRows(ctx, "Summary", 2, [][]interface{}{{1, "=COUNTIF(A:A,1)"}}); err != nil {
					t.Fatalf("WriteRows() error = %v", err)
				}
				if err := store.WriteRows(ctx, "Summary", 4, [][]interface{}{{"Total", 0}}); err != nil {
					t.Fatalf("WriteRows() error = %v", err)
				}
				assertColumn(t, store, "Summary", 0, "1", "", "Total")
				assertColumn(t, store, "Summary", 1, "=COUNTIF(A:A,1)", "", "0")

				if err := store.Append(ctx, "Summary", [][]interface{}{{"after"}}); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
				assertColumn(t, store, "Summary", 0, "1", "", "Total", "after")
			},
		},
		{
			name: "writing row 1 leaves data rows alone",
			run: func(t *testing.T, ctx context.Context, store RecordStore) {
				mustEnsure(t, store, "Votes", "Timestamp")
				if err := store.Append(ctx, "Votes", [][]interface{}{{"v"}}); err != nil {
					t.Fatal(err)
				}
				if err := store.WriteRows(ctx, "Votes", 1, [][]interface{}{{"Renamed"}}); err != nil {
					t.Fatalf("WriteRows() error = %v", err)
				}
				assertColumn(t, store, "Votes", 0, "v")
				if err := store.WriteRows(ctx, "Votes", 0, nil); err == nil {
					t.Error("expected error for row 0")
				}
			},
		},
		{
			name: "clear rows keeps the partition",
			run: func(t *testing.T, ctx context.Context, store RecordStore) {
				mustEnsure(t, store, "Subscribers", "Timestamp", "Token")
				if err := store.Append(ctx, "Subscribers", [][]interface{}{{"t", "a"}, {"t", "b"}}); err != nil {
					t.Fatal(err)
				}
				n, err := store.ClearRows(ctx, "Subscribers")
				if err != nil || n != 2 {
					t.Fatalf("ClearRows() = %d, %v; want 2, nil", n, err)
				}
				assertColumn(t, store, "Subscribers", 1)

				n, err = store.ClearRows(ctx, "Subscribers")
				if err != nil || n != 0 {
					t.Errorf("ClearRows(empty) = %d, %v; want 0, nil", n, err)
				}
				if err := store.Append(ctx, "Subscribers", [][]interface{}{{"t", "c"}}); err != nil {
					t.Fatal(err)
				}
				assertColumn(t, store, "Subscribers", 1, "c")
			},
		},
		{
			name: "partitions in creation order",
			run: func(t *testing.T, ctx context.Context, store RecordStore) {
				for _, name := range []string{"A", "A_conflict1", "B"} {
					mustEnsure(t, store, name, "h")
				}
				if err := store.Append(ctx, "A_conflict1", [][]interface{}{{"x"}}); err != nil {
					t.Fatal(err)
				}
				if err := store.DeletePartition(ctx, "A_conflict1"); err != nil {
					t.Fatalf("DeletePartition() error = %v", err)
				}
				names, err := store.Partitions(ctx)
				if err != nil {
					t.Fatalf("Partitions() error = %v", err)
				}
				if strings.Join(names, ",") != "A,B" {
					t.Errorf("Partitions() = %q", names)
				}
			},
		},
		{
			name: "missing partition",
			run: func(t *testing.T, ctx context.Context, store RecordStore) {
				if err := store.Append(ctx, "nope", nil); !errors.Is(err, ErrPartitionNotFound) {
					t.Errorf("Append() error = %v", err)
				}
				if _, err := store.ReadColumn(ctx, "nope", 0); !errors.Is(err, ErrPartitionNotFound) {
					t.Errorf("ReadColumn() error = %v", err)
				}
				if err := store.WriteRows(ctx, "nope", 2, [][]interface{}{{"x"}}); !errors.Is(err, ErrPartitionNotFound) {
					t.Errorf("WriteRows() error = %v", err)
				}
				if _, err := store.ClearRows(ctx, "nope"); !errors.Is(err, ErrPartitionNotFound) {
					t.Errorf("ClearRows() error = %v", err)
				}
				if err := store.DeletePartition(ctx, "nope"); !errors.Is(err, ErrPartitionNotFound) {
					t.Errorf("DeletePartition() error = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, context.Background(), newStore(t))
		})
	}
}

func mustEnsure(t *testing.T, store RecordStore, name string, headers ...string) {
	t.Helper()
	if err := store.EnsurePartition(context.Background(), name, headers); err != nil {
		t.Fatalf("EnsurePartition(%s) error = %v", name, err)
	}
}

func assertColumn(t *testing.T, store RecordStore, name string, column int, want ...string) {
	t.Helper()
	got, err := store.ReadColumn(context.Background(), name, column)
	if err != nil {
		t.Fatalf("ReadColumn(%s, %d) error = %v", name, column, err)
	}
	if len(got) != len(want) || strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ReadColumn(%s, %d) = %q, want %q", name, column, got, want)
	}
}

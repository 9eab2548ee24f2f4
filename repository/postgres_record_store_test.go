package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"bar-council-campaign/db"
)

// openTestDB connects to TEST_DATABASE_URL and empties the record tables
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Settings{URL: url})
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.EnsureSchema(ctx, conn); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if _, err := conn.ExecContext(ctx, `TRUNCATE record_rows, record_partitions`); err != nil {
		t.Fatalf("truncate error = %v", err)
	}
	return conn
}

func partitionHeaders(t *testing.T, conn *sql.DB, name string) []string {
	t.Helper()
	var raw string
	err := conn.QueryRowContext(context.Background(), `SELECT headers::text FROM record_partitions WHERE name = $1`, name).Scan(&raw)
	if err != nil {
		t.Fatalf("read headers of %s: %v", name, err)
	}
	var headers []string
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		t.Fatalf("decode headers %q: %v", raw, err)
	}
	return headers
}

func TestPostgresRecordStoreContract(t *testing.T) {
	runRecordStoreContract(t, func(t *testing.T) RecordStore {
		return NewPostgresRecordStore(openTestDB(t))
	})
}

func TestPostgresRecordStoreHeaders(t *testing.T) {
	conn := openTestDB(t)
	store := NewPostgresRecordStore(conn)
	ctx := context.Background()

	// headers are seeded only while the partition has none
	mustEnsure(t, store, "Summary")
	mustEnsure(t, store, "Summary", "Order", "Count")
	mustEnsure(t, store, "Summary", "Other")
	if got := partitionHeaders(t, conn, "Summary"); strings.Join(got, ",") != "Order,Count" {
		t.Errorf("headers = %q, want [Order Count]", got)
	}

	if err := store.WriteRows(ctx, "Summary", 1, [][]interface{}{{"Preferential Order", "Count"}, {1, 4}}); err != nil {
		t.Fatalf("WriteRows() error = %v", err)
	}
	if got := partitionHeaders(t, conn, "Summary"); strings.Join(got, ",") != "Preferential Order,Count" {
		t.Errorf("headers after WriteRows = %q", got)
	}

	var firstRow int
	if err := conn.QueryRowContext(ctx, `SELECT MIN(row_number) FROM record_rows WHERE partition_name = $1`, "Summary").Scan(&firstRow); err != nil {
		t.Fatal(err)
	}
	if firstRow != 2 {
		t.Errorf("first data row = %d, want 2", firstRow)
	}
}

func TestPostgresRecordStoreDeleteCascades(t *testing.T) {
	conn := openTestDB(t)
	store := NewPostgresRecordStore(conn)
	ctx := context.Background()

	mustEnsure(t, store, "Votes_conflict1", "Timestamp")
	if err := store.Append(ctx, "Votes_conflict1", [][]interface{}{{"a"}, {"b"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeletePartition(ctx, "Votes_conflict1"); err != nil {
		t.Fatalf("DeletePartition() error = %v", err)
	}

	var remaining int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM record_rows WHERE partition_name = $1`, "Votes_conflict1").Scan(&remaining); err != nil {
		t.Fatal(err)
	}
	if remaining != 0 {
		t.Errorf("rows left after delete = %d", remaining)
	}
}

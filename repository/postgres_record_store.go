package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// PostgresRecordStore keeps partitions in the record_partitions and record_rows tables.
// Cells are stored as a JSON array of strings; header row 1 lives on the partition.
type PostgresRecordStore struct {
	db *sql.DB
}

// NewPostgresRecordStore creates a PostgresRecordStore on an open connection
func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

// Ensure PostgresRecordStore implements RecordStore
var _ RecordStore = (*PostgresRecordStore)(nil)

func encodeCells(row []interface{}) ([]byte, error) {
	cells := make([]string, len(row))
	for i := range row {
		cells[i] = cellString(row, i)
	}
	return json.Marshal(cells)
}

// EnsurePartition inserts the partition row when missing and fills in headers the
// partition does not have yet
func (r *PostgresRecordStore) EnsurePartition(ctx context.Context, name string, headers []string) error {
	if headers == nil {
		headers = []string{}
	}
	encoded, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}
	query := `
		INSERT INTO record_partitions (name, headers)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET headers = EXCLUDED.headers
		WHERE record_partitions.headers = '[]'::jsonb
	`
	if _, err := r.db.ExecContext(ctx, query, name, string(encoded)); err != nil {
		log.Printf("❌ Error ensuring partition %s: %v", name, err)
		return fmt.Errorf("failed to ensure partition %s: %w", name, err)
	}
	return nil
}

// lockPartition locks the partition row for the rest of the transaction
func lockPartition(ctx context.Context, tx *sql.Tx, name string) error {
	var locked string
	err := tx.QueryRowContext(ctx, `SELECT name FROM record_partitions WHERE name = $1 FOR UPDATE`, name).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("partition %s: %w", name, ErrPartitionNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock partition %s: %w", name, err)
	}
	return nil
}

// Append numbers the new rows after the current last row
func (r *PostgresRecordStore) Append(ctx context.Context, name string, rows [][]interface{}) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockPartition(ctx, tx, name); err != nil {
		return err
	}

	var last int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_number), 1) FROM record_rows WHERE partition_name = $1`, name).Scan(&last)
	if err != nil {
		return fmt.Errorf("failed to find last row of %s: %w", name, err)
	}

	for i, row := range rows {
		cells, err := encodeCells(row)
		if err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO record_rows (partition_name, row_number, cells) VALUES ($1, $2, $3)`,
			name, last+1+i, string(cells))
		if err != nil {
			return fmt.Errorf("failed to insert row into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// partitionExists reports whether the partition row is present
func (r *PostgresRecordStore) partitionExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM record_partitions WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up partition %s: %w", name, err)
	}
	return exists, nil
}

// ReadColumn returns one column of every data row ordered by row number. Rows never
// written inside the range read as empty strings.
func (r *PostgresRecordStore) ReadColumn(ctx context.Context, name string, column int) ([]string, error) {
	exists, err := r.partitionExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("failed to read %s: %w", name, ErrPartitionNotFound)
	}

	query := `
		SELECT row_number, COALESCE(cells ->> $2::int, '')
		FROM record_rows
		WHERE partition_name = $1
		ORDER BY row_number ASC
	`
	rows, err := r.db.QueryContext(ctx, query, name, column)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var rowNumber int
		var v string
		if err := rows.Scan(&rowNumber, &v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		// data rows start at row 2
		for len(values) < rowNumber-2 {
			values = append(values, "")
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return values, nil
}

// WriteRows upserts rows by number. Writing row 1 replaces the headers.
func (r *PostgresRecordStore) WriteRows(ctx context.Context, name string, startRow int, rows [][]interface{}) error {
	if startRow < 1 {
		return fmt.Errorf("invalid start row %d", startRow)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockPartition(ctx, tx, name); err != nil {
		return err
	}

	for i, row := range rows {
		cells, err := encodeCells(row)
		if err != nil {
			return fmt.Errorf("failed to encode row: %w", err)
		}
		rowNumber := startRow + i
		if rowNumber == 1 {
			_, err = tx.ExecContext(ctx, `UPDATE record_partitions SET headers = $2 WHERE name = $1`, name, string(cells))
		} else {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO record_rows (partition_name, row_number, cells) VALUES ($1, $2, $3)
				ON CONFLICT (partition_name, row_number) DO UPDATE SET cells = EXCLUDED.cells
			`, name, rowNumber, string(cells))
		}
		if err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", rowNumber, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClearRows deletes every data row of the partition
func (r *PostgresRecordStore) ClearRows(ctx context.Context, name string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM record_rows WHERE partition_name = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared rows: %w", err)
	}
	if affected == 0 {
		exists, err := r.partitionExists(ctx, name)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, fmt.Errorf("failed to clear %s: %w", name, ErrPartitionNotFound)
		}
	}
	return int(affected), nil
}

// Partitions lists partition names in creation order
func (r *PostgresRecordStore) Partitions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM record_partitions ORDER BY created_at ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeletePartition drops a partition and, by cascade, its rows
func (r *PostgresRecordStore) DeletePartition(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM record_partitions WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete partition %s: %w", name, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to delete %s: %w", name, ErrPartitionNotFound)
	}
	return nil
}

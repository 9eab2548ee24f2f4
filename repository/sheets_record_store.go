package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsRecordStore stores partitions as sheets of one Google spreadsheet
type SheetsRecordStore struct {
	client        *sheets.Service
	spreadsheetID string

	mu    sync.Mutex
	known map[string]bool

	// held while a partition is checked and created
	createMu sync.Mutex
}

// NewSheetsRecordStore creates a Sheets client with the given credentials options
func NewSheetsRecordStore(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsRecordStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	client, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return NewSheetsRecordStoreWithClient(client, spreadsheetID), nil
}

// NewSheetsRecordStoreWithClient wraps an existing Sheets client
func NewSheetsRecordStoreWithClient(client *sheets.Service, spreadsheetID string) *SheetsRecordStore {
	return &SheetsRecordStore{
		client:        client,
		spreadsheetID: spreadsheetID,
		known:         make(map[string]bool),
	}
}

// Ensure SheetsRecordStore implements RecordStore
var _ RecordStore = (*SheetsRecordStore)(nil)

// quoteSheet quotes a sheet title for A1 notation
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// columnLetter converts a zero-based column index to its A1 letters
func columnLetter(column int) string {
	letters := ""
	for n := column + 1; n > 0; n = (n - 1) / 26 {
		letters = string(rune('A'+(n-1)%26)) + letters
	}
	return letters
}

// rangeError maps the "Unable to parse range" reply for a missing sheet to ErrPartitionNotFound
func rangeError(rng string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 400 && strings.Contains(apiErr.Message, "Unable to parse range") {
		return fmt.Errorf("failed to read %s: %w", rng, ErrPartitionNotFound)
	}
	return fmt.Errorf("failed to read %s: %w", rng, err)
}

func (s *SheetsRecordStore) sheetIDs(ctx context.Context) (map[string]int64, []string, error) {
	resp, err := s.client.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}
	ids := make(map[string]int64, len(resp.Sheets))
	titles := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		ids[sh.Properties.Title] = sh.Properties.SheetId
		titles = append(titles, sh.Properties.Title)
	}
	return ids, titles, nil
}

func (s *SheetsRecordStore) isKnown(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.known[name]
}

// sheetExists reports the 400 Sheets returns when AddSheet races another writer
func sheetExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 400 && strings.Contains(apiErr.Message, "already exists")
}

// EnsurePartition adds the sheet when missing and writes headers into an empty first row.
// A sheet created concurrently by another instance counts as present.
func (s *SheetsRecordStore) EnsurePartition(ctx context.Context, name string, headers []string) error {
	if s.isKnown(name) {
		return nil
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()
	if s.isKnown(name) {
		return nil
	}

	ids, _, err := s.sheetIDs(ctx)
	if err != nil {
		return err
	}

	if _, ok := ids[name]; !ok {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: name}},
			}},
		}
		_, err := s.client.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
		switch {
		case sheetExists(err):
			log.Printf("ℹ️  Sheet %s was created by another writer", name)
		case err != nil:
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		default:
			log.Printf("✓ Created sheet: %s", name)
		}
	}

	headerRange := quoteSheet(name) + "!1:1"
	existing, err := s.client.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read headers of %s: %w", name, err)
	}
	if len(existing.Values) == 0 || len(existing.Values[0]) == 0 {
		row := make([]interface{}, len(headers))
		for i, h := range headers {
			row[i] = h
		}
		vr := &sheets.ValueRange{Values: [][]interface{}{row}}
		if _, err := s.client.Spreadsheets.Values.Update(s.spreadsheetID, quoteSheet(name)+"!A1", vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to write headers of %s: %w", name, err)
		}
	}

	s.mu.Lock()
	s.known[name] = true
	s.mu.Unlock()
	return nil
}

// Append inserts rows after the last non-empty row of the sheet
func (s *SheetsRecordStore) Append(ctx context.Context, name string, rows [][]interface{}) error {
	vr := &sheets.ValueRange{Values: rows}
	_, err := s.client.Spreadsheets.Values.Append(s.spreadsheetID, quoteSheet(name)+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	return nil
}

// ReadColumn reads one column from row 2 down
func (s *SheetsRecordStore) ReadColumn(ctx context.Context, name string, column int) ([]string, error) {
	letter := columnLetter(column)
	rng := fmt.Sprintf("%s!%s2:%s", quoteSheet(name), letter, letter)
	resp, err := s.client.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, rangeError(rng, err)
	}
	values := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		values = append(values, cellString(row, 0))
	}
	return values, nil
}

// WriteRows overwrites a block. Values are parsed as if typed, so formulas are evaluated.
func (s *SheetsRecordStore) WriteRows(ctx context.Context, name string, startRow int, rows [][]interface{}) error {
	if startRow < 1 {
		return fmt.Errorf("invalid start row %d", startRow)
	}
	rng := fmt.Sprintf("%s!A%d", quoteSheet(name), startRow)
	vr := &sheets.ValueRange{Values: rows}
	if _, err := s.client.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to write %s: %w", rng, err)
	}
	return nil
}

// ClearRows clears everything below the header row
func (s *SheetsRecordStore) ClearRows(ctx context.Context, name string) (int, error) {
	existing, err := s.ReadColumn(ctx, name, 0)
	if err != nil {
		return 0, err
	}
	if len(existing) == 0 {
		return 0, nil
	}
	rng := quoteSheet(name) + "!A2:Z"
	if _, err := s.client.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", rng, err)
	}
	return len(existing), nil
}

// Partitions lists the sheet titles in spreadsheet order
func (s *SheetsRecordStore) Partitions(ctx context.Context) ([]string, error) {
	_, titles, err := s.sheetIDs(ctx)
	return titles, err
}

// DeletePartition removes a sheet by title
func (s *SheetsRecordStore) DeletePartition(ctx context.Context, name string) error {
	ids, _, err := s.sheetIDs(ctx)
	if err != nil {
		return err
	}
	id, ok := ids[name]
	if !ok {
		return fmt.Errorf("failed to delete %s: %w", name, ErrPartitionNotFound)
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{DeleteSheet: &sheets.DeleteSheetRequest{SheetId: id, ForceSendFields: []string{"SheetId"}}}},
	}
	if _, err := s.client.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete sheet %s: %w", name, err)
	}

	s.mu.Lock()
	delete(s.known, name)
	s.mu.Unlock()
	return nil
}

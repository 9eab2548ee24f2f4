package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheetsAPI answers the handful of Sheets v4 calls the store makes
type fakeSheetsAPI struct {
	mu       sync.Mutex
	titles   []string
	appended map[string]int
	requests []string

	// rejectDuplicates answers AddSheet for an existing title with a 400, as Sheets does
	rejectDuplicates bool
	// hideSheets leaves every sheet out of the spreadsheet metadata
	hideSheets bool
}

func (f *fakeSheetsAPI) hasTitle(title string) bool {
	for _, t := range f.titles {
		if t == title {
			return true
		}
	}
	return false
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &req)
		for _, rq := range req.Requests {
			if rq.AddSheet == nil {
				continue
			}
			title := rq.AddSheet.Properties.Title
			if f.rejectDuplicates && f.hasTitle(title) {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintf(w, `{"error":{"code":400,"message":"Invalid requests[0].addSheet: A sheet with the name \"%s\" already exists. Please enter another name.","status":"INVALID_ARGUMENT"}}`, title)
				return
			}
			f.titles = append(f.titles, title)
		}
		w.Write([]byte(`{}`))
	case strings.HasSuffix(path, ":append"):
		var vr sheets.ValueRange
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &vr)
		f.appended[path] += len(vr.Values)
		w.Write([]byte(`{}`))
	case strings.Contains(path, "/values/") && strings.Contains(path, "!B2:B"):
		w.Write([]byte(`{"values":[["tok-1"],["tok-2"],[]]}`))
	case strings.Contains(path, "/values/"):
		w.Write([]byte(`{"values":[]}`))
	default:
		resp := sheets.Spreadsheet{}
		if f.hideSheets {
			json.NewEncoder(w).Encode(resp)
			return
		}
		for i, title := range f.titles {
			resp.Sheets = append(resp.Sheets, &sheets.Sheet{Properties: &sheets.SheetProperties{Title: title, SheetId: int64(i)}})
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func newFakeSheetsStore(t *testing.T, api *fakeSheetsAPI) *SheetsRecordStore {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	store, err := NewSheetsRecordStore(context.Background(), "sheet-id",
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewSheetsRecordStore() error = %v", err)
	}
	return store
}

func TestSheetsRecordStoreEnsureAndAppend(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Sheet1"}, appended: map[string]int{}}
	store := newFakeSheetsStore(t, api)
	ctx := context.Background()

	if err := store.EnsurePartition(ctx, "Quick Support", []string{"Timestamp"}); err != nil {
		t.Fatalf("EnsurePartition() error = %v", err)
	}
	if err := store.EnsurePartition(ctx, "Quick Support", []string{"Timestamp"}); err != nil {
		t.Fatalf("EnsurePartition() error = %v", err)
	}
	if err := store.Append(ctx, "Quick Support", [][]interface{}{{"a"}, {"b"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	names, err := store.Partitions(ctx)
	if err != nil {
		t.Fatalf("Partitions() error = %v", err)
	}
	if strings.Join(names, ",") != "Sheet1,Quick Support" {
		t.Errorf("Partitions() = %q", names)
	}

	total := 0
	for _, n := range api.appended {
		total += n
	}
	if total != 2 {
		t.Errorf("appended rows = %d, want 2", total)
	}

	creates := 0
	for _, req := range api.requests {
		if strings.HasSuffix(req, ":batchUpdate") {
			creates++
		}
	}
	if creates != 1 {
		t.Errorf("sheet created %d times, want 1", creates)
	}
}

func TestSheetsRecordStoreReadColumn(t *testing.T) {
	api := &fakeSheetsAPI{titles: []string{"Push Notification Subscribers"}, appended: map[string]int{}}
	store := newFakeSheetsStore(t, api)

	values, err := store.ReadColumn(context.Background(), "Push Notification Subscribers", 1)
	if err != nil {
		t.Fatalf("ReadColumn() error = %v", err)
	}
	if strings.Join(values, ",") != "tok-1,tok-2," {
		t.Errorf("ReadColumn() = %q", values)
	}
}

func TestColumnLetter(t *testing.T) {
	tests := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"}
	for in, want := range tests {
		if got := columnLetter(in); got != want {
			t.Errorf("columnLetter(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestQuoteSheet(t *testing.T) {
	if got := quoteSheet("Bob's Votes"); got != "'Bob''s Votes'" {
		t.Errorf("quoteSheet() = %q", got)
	}
}

func TestSheetsRecordStoreMissingSheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"Unable to parse range: 'Votes'!B2:B","status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	store, err := NewSheetsRecordStore(context.Background(), "sheet-id",
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.ReadColumn(context.Background(), "Votes", 1)
	if !errors.Is(err, ErrPartitionNotFound) {
		t.Errorf("ReadColumn(missing) error = %v, want ErrPartitionNotFound", err)
	}
}

func countCreates(api *fakeSheetsAPI) int {
	api.mu.Lock()
	defer api.mu.Unlock()
	creates := 0
	for _, req := range api.requests {
		if strings.HasSuffix(req, ":batchUpdate") {
			creates++
		}
	}
	return creates
}

func TestSheetsRecordStoreConcurrentEnsure(t *testing.T) {
	api := &fakeSheetsAPI{appended: map[string]int{}, rejectDuplicates: true}
	store := newFakeSheetsStore(t, api)

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.EnsurePartition(context.Background(), "Quick Support", []string{"Timestamp"})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("EnsurePartition() writer %d error = %v", i, err)
		}
	}
	if n := countCreates(api); n != 1 {
		t.Errorf("sheet created %d times, want 1", n)
	}
}

func TestSheetsRecordStoreEnsureAfterOtherWriter(t *testing.T) {
	// metadata is stale: the sheet exists but is not listed yet
	api := &fakeSheetsAPI{titles: []string{"Quick Support"}, appended: map[string]int{}, rejectDuplicates: true, hideSheets: true}
	store := newFakeSheetsStore(t, api)

	if err := store.EnsurePartition(context.Background(), "Quick Support", []string{"Timestamp"}); err != nil {
		t.Fatalf("EnsurePartition() error = %v", err)
	}
	if err := store.Append(context.Background(), "Quick Support", [][]interface{}{{"a"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}

func TestSheetExists(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate sheet", &googleapi.Error{Code: 400, Message: `A sheet with the name "Votes" already exists.`}, true},
		{"other bad request", &googleapi.Error{Code: 400, Message: "Unable to parse range"}, false},
		{"server error", &googleapi.Error{Code: 500, Message: "already exists"}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sheetExists(tt.err); got != tt.want {
				t.Errorf("sheetExists() = %v, want %v", got, tt.want)
			}
		})
	}
}

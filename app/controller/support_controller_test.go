package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bar-council-campaign/composer"
	"bar-council-campaign/models"
	"bar-council-campaign/service"
)

func newSupportController(cards *fakeCards) (*SupportController, *fakeRecords, *syncTasks) {
	records := &fakeRecords{}
	tasks := &syncTasks{}
	c := NewSupportController(cards, records, tasks)
	c.now = testNow
	return c, records, tasks
}

func TestSupportQuick(t *testing.T) {
	c, records, _ := newSupportController(&fakeCards{})

	req := httptest.NewRequest(http.MethodPost, "/api/support", strings.NewReader(`{"supportType":"Quick Support","language":"te"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.Support(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != true || !strings.HasPrefix(resp["image"].(string), "data:image/png;base64,") {
		t.Errorf("response = %v", resp)
	}

	events := records.logged()
	if len(events) != 1 {
		t.Fatalf("events = %v", events)
	}
	if _, ok := events[0].(models.QuickSupport); !ok {
		t.Errorf("event = %T, want QuickSupport", events[0])
	}
}

func TestSupportDetailedFromForm(t *testing.T) {
	cards := &fakeCards{}
	c, records, _ := newSupportController(cards)

	form := url.Values{"name": {"P. Kumar"}, "district": {"Hyderabad"}, "language": {"en"}}
	req := httptest.NewRequest(http.MethodPost, "/api/support", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	c.Support(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if cards.got.Name != "P. Kumar" || cards.format != service.CardFormatPNG {
		t.Errorf("render input = %+v %s", cards.got, cards.format)
	}
	detailed, ok := records.logged()[0].(models.DetailedSupport)
	if !ok || detailed.Supporter.District != "Hyderabad" {
		t.Errorf("event = %#v", records.logged()[0])
	}
}

func TestSupportErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		renderErr  error
		wantStatus int
	}{
		{"wrong method", http.MethodGet, "", nil, http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, "{", nil, http.StatusBadRequest},
		{"photo unavailable", http.MethodPost, "{}", &composer.ImageLoadError{Ref: "x", Err: errors.New("404")}, http.StatusBadGateway},
		{"render failure", http.MethodPost, "{}", &composer.RenderContextError{Reason: "no fonts"}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newSupportController(&fakeCards{err: tt.renderErr})
			req := httptest.NewRequest(tt.method, "/api/support", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			c.Support(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCardDownload(t *testing.T) {
	cards := &fakeCards{}
	c, records, _ := newSupportController(cards)

	body := `{"name":"P. Kumar","enrollmentNumber":"TS/1234/2020"}`
	req := httptest.NewRequest(http.MethodPost, "/api/support/card?format=jpeg", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.Card(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="support-card.jpg"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "card-bytes" {
		t.Errorf("body = %q", rec.Body)
	}

	download, ok := records.logged()[0].(models.ImageDownload)
	if !ok || download.Format != "jpeg" || download.SupportType != models.SupportTypeDetailed || download.EnrollmentNumber != "TS/1234/2020" {
		t.Errorf("event = %#v", records.logged()[0])
	}
}

func TestCardDownloadFormatFromBody(t *testing.T) {
	cards := &fakeCards{}
	c, _, _ := newSupportController(cards)

	form := url.Values{"format": {"jpeg"}}
	req := httptest.NewRequest(http.MethodPost, "/api/support/card", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	c.Card(rec, req)

	if cards.format != service.CardFormatJPEG {
		t.Errorf("format = %q, want jpeg", cards.format)
	}
}

func TestSupportLogFailureDoesNotFailRequest(t *testing.T) {
	c, records, tasks := newSupportController(&fakeCards{})
	records.logErr = errors.New("sheets down")

	req := httptest.NewRequest(http.MethodPost, "/api/support", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	c.Support(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if len(tasks.errs) != 1 {
		t.Errorf("background errors = %v, want the log failure reported", tasks.errs)
	}
}

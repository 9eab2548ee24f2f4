package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bar-council-campaign/config"
	"bar-council-campaign/flow"
	"bar-council-campaign/models"
)

func newPageController(pages *fakePages) *PageController {
	fc, _ := newFlowController()
	return NewPageController(pages, fc)
}

func TestHomeAdvancesFlow(t *testing.T) {
	pages := &fakePages{}
	c := newPageController(pages)

	rec := httptest.NewRecorder()
	c.Home(rec, httptest.NewRequest(http.MethodGet, "/?lang=te", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if pages.state != flow.CalendarShown || pages.lang != models.LanguageTelugu {
		t.Errorf("rendered with %s/%s", pages.state, pages.lang)
	}
	if got := flowCookie(t, rec); got != string(flow.CalendarShown) {
		t.Errorf("cookie = %q", got)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestHomeUnknownPath(t *testing.T) {
	c := newPageController(&fakePages{})
	rec := httptest.NewRecorder()
	c.Home(rec, httptest.NewRequest(http.MethodGet, "/wp-admin", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHomeRenderError(t *testing.T) {
	c := newPageController(&fakePages{err: errors.New("template")})
	rec := httptest.NewRecorder()
	c.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestVisionPDF(t *testing.T) {
	pages := &fakePages{}
	c := newPageController(pages)
	rec := httptest.NewRecorder()
	c.VisionPDF(rec, httptest.NewRequest(http.MethodGet, "/vision.pdf?lang=te", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="vision-te.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}

	failing := newPageController(&fakePages{err: errors.New("chrome missing")})
	rec = httptest.NewRecorder()
	failing.VisionPDF(rec, httptest.NewRequest(http.MethodGet, "/vision.pdf", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestVision(t *testing.T) {
	c := newPageController(&fakePages{})
	rec := httptest.NewRecorder()
	c.Vision(rec, httptest.NewRequest(http.MethodGet, "/vision", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "vision") {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}
}

func TestFirebaseConfig(t *testing.T) {
	c := NewFirebaseController(config.FirebaseConfig{
		ProjectID:         "bar-council",
		APIKey:            "key",
		MessagingSenderID: "1234",
		AppID:             "app",
	})
	rec := httptest.NewRecorder()
	c.Config(rec, httptest.NewRequest(http.MethodGet, "/api/firebase-config", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
	for _, want := range []string{`"authDomain":"bar-council.firebaseapp.com"`, `"storageBucket":"bar-council.appspot.com"`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("body missing %s: %s", want, rec.Body)
		}
	}

	unset := NewFirebaseController(config.FirebaseConfig{})
	rec = httptest.NewRecorder()
	unset.Config(rec, httptest.NewRequest(http.MethodGet, "/api/firebase-config", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

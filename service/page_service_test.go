package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bar-council-campaign/flow"
	"bar-council-campaign/locale"
	"bar-council-campaign/models"
)

func newTestPageService(t *testing.T, photo string) *PageService {
	t.Helper()
	svc, err := NewPageService(Candidate{Name: "ADVOCATE NAME", Photo: photo}, "https://example.org/", "", time.Second)
	if err != nil {
		t.Fatalf("NewPageService() error = %v", err)
	}
	return svc
}

func TestRenderHomeShowsModalForState(t *testing.T) {
	svc := newTestPageService(t, "/candidate/candidate.png")

	tests := []struct {
		state        flow.State
		wantCalendar bool
		wantVote     bool
	}{
		{flow.Unseen, false, false},
		{flow.CalendarShown, true, false},
		{flow.VoteShown, false, true},
		{flow.ContentShown, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			var buf bytes.Buffer
			if err := svc.RenderHome(&buf, models.LanguageEnglish, tt.state); err != nil {
				t.Fatalf("RenderHome() error = %v", err)
			}
			html := buf.String()
			if got := strings.Contains(html, `id="calendar-modal"`); got != tt.wantCalendar {
				t.Errorf("calendar modal shown = %v", got)
			}
			if got := strings.Contains(html, `id="vote-modal"`); got != tt.wantVote {
				t.Errorf("vote modal shown = %v", got)
			}
		})
	}
}

func TestRenderHomeLocalized(t *testing.T) {
	svc := newTestPageService(t, "drive:abc123")
	var buf bytes.Buffer
	if err := svc.RenderHome(&buf, models.LanguageTelugu, flow.VoteShown); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	site := locale.Site(models.LanguageTelugu)
	for _, want := range []string{site.AboutTitle, site.VoteTitle, `lang="te"`, "?lang=en", "https://drive.google.com/uc?id=abc123", `<option value="24">`} {
		if !strings.Contains(html, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if !strings.Contains(html, "https://wa.me/?text=") || !strings.Contains(html, "example.org") {
		t.Error("missing WhatsApp share link with site url")
	}
}

func TestRenderVision(t *testing.T) {
	svc := newTestPageService(t, "/candidate/candidate.png")
	var buf bytes.Buffer
	if err := svc.RenderVision(&buf, models.LanguageEnglish); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, bullet := range locale.Site(models.LanguageEnglish).VisionBullets {
		if !strings.Contains(html, bullet) {
			t.Errorf("vision page missing %q", bullet)
		}
	}
	if strings.Contains(html, `id="support"`) {
		t.Error("vision page should not carry the support form")
	}
}

func TestDetectChromePath(t *testing.T) {
	dir := t.TempDir()
	chrome := filepath.Join(dir, "chrome")
	if err := os.WriteFile(chrome, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := detectChromePath(chrome); got != chrome {
		t.Errorf("detectChromePath(existing) = %q, want %q", got, chrome)
	}

	saved := chromeCandidates
	t.Cleanup(func() { chromeCandidates = saved })
	chromeCandidates = []string{filepath.Join(dir, "missing"), chrome}
	if got := detectChromePath(filepath.Join(dir, "nope")); got != chrome {
		t.Errorf("detectChromePath(fallback) = %q, want %q", got, chrome)
	}
	chromeCandidates = nil
	if got := detectChromePath(""); got != "" {
		t.Errorf("detectChromePath(none) = %q, want empty", got)
	}
}

package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"bar-council-campaign/composer"
	"bar-council-campaign/flow"
	"bar-council-campaign/locale"
	"bar-council-campaign/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/*.html
var templateFS embed.FS

// CalendarURL is the static path of the court calendar handed out by the calendar modal
const CalendarURL = "/static/calendar-2026.pdf"

var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// detectChromePath detects the path to Chrome/Chromium executable.
// The configured path wins when it exists.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  CHROME_PATH %s not found, trying common locations", configured)
	}
	for _, path := range chromeCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// PageData is passed to the page templates
type PageData struct {
	Lang          models.Language
	Toggle        models.Language
	Site          locale.SiteStrings
	CandidateName string
	PhotoURL      string
	Flow          flow.State
	ShowCalendar  bool
	ShowVote      bool
	VoteOrders    []int
	CalendarURL   string
	WhatsAppURL   string
}

// PageService renders the landing pages and exports the vision page as PDF
type PageService struct {
	pages      map[string]*template.Template
	candidate  Candidate
	baseURL    string
	chromePath string
	pdfTimeout time.Duration
}

// NewPageService parses the embedded templates
func NewPageService(candidate Candidate, baseURL, chromePath string, pdfTimeout time.Duration) (*PageService, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"home", "vision"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	if pdfTimeout <= 0 {
		pdfTimeout = 30 * time.Second
	}
	return &PageService{
		pages:      pages,
		candidate:  candidate,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		chromePath: chromePath,
		pdfTimeout: pdfTimeout,
	}, nil
}

// photoURL turns the candidate photo reference into something a browser can load
func (s *PageService) photoURL() string {
	if id, ok := strings.CutPrefix(s.candidate.Photo, composer.DrivePrefix); ok {
		return fmt.Sprintf("https://drive.google.com/uc?id=%s", id)
	}
	return s.candidate.Photo
}

func (s *PageService) pageData(lang models.Language, state flow.State) PageData {
	site := locale.Site(lang)
	orders := make([]int, 0, models.MaxPreferentialOrder)
	for i := models.MinPreferentialOrder; i <= models.MaxPreferentialOrder; i++ {
		orders = append(orders, i)
	}
	return PageData{
		Lang:          lang,
		Toggle:        lang.Toggle(),
		Site:          site,
		CandidateName: s.candidate.Name,
		PhotoURL:      s.photoURL(),
		Flow:          state,
		ShowCalendar:  state == flow.CalendarShown,
		ShowVote:      state == flow.VoteShown,
		VoteOrders:    orders,
		CalendarURL:   CalendarURL,
		WhatsAppURL:   "https://wa.me/?text=" + url.QueryEscape(site.WhatsAppShareText+s.baseURL),
	}
}

func (s *PageService) render(w io.Writer, name string, data PageData) error {
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, name+".html", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderHome renders the landing page with the modal for the flow state
func (s *PageService) RenderHome(w io.Writer, lang models.Language, state flow.State) error {
	return s.render(w, "home", s.pageData(lang, state))
}

// RenderVision renders the printable vision page
func (s *PageService) RenderVision(w io.Writer, lang models.Language) error {
	return s.render(w, "vision", s.pageData(lang, flow.ContentShown))
}

// VisionPDF prints the vision page through headless Chrome
func (s *PageService) VisionPDF(ctx context.Context, lang models.Language) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.pdfTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	if err := chromedp.Run(chromedpCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Enable().Do(ctx)
	})); err != nil {
		log.Printf("⚠️  Failed to enable page domain: %v", err)
	}

	renderURL := fmt.Sprintf("%s/vision?lang=%s", s.baseURL, lang)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Vision PDF generated (%s, %d bytes)", lang, len(pdfBuf))
	return pdfBuf, nil
}

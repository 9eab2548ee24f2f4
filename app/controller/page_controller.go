package controller

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"bar-council-campaign/models"
	"bar-council-campaign/service"
)

// PageController serves the landing pages
type PageController struct {
	pages service.PageServiceInterface
	flow  *FlowController
}

// NewPageController creates a new PageController
func NewPageController(pages service.PageServiceInterface, flow *FlowController) *PageController {
	return &PageController{pages: pages, flow: flow}
}

func requestLanguage(r *http.Request) models.Language {
	return models.ParseLanguage(r.URL.Query().Get("lang"))
}

// Home handles GET /?lang=en|te. Each visit advances the modal flow.
func (c *PageController) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Home", r)
		return
	}

	step, err := c.flow.Advance(w, r, visitTrigger(r))
	if err != nil {
		log.Printf("❌ Home: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := c.pages.RenderHome(&buf, requestLanguage(r), step.To); err != nil {
		log.Printf("❌ Home: Error rendering page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Vision handles GET /vision?lang=en|te
func (c *PageController) Vision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Vision", r)
		return
	}
	var buf bytes.Buffer
	if err := c.pages.RenderVision(&buf, requestLanguage(r)); err != nil {
		log.Printf("❌ Vision: Error rendering page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// VisionPDF handles GET /vision.pdf?lang=en|te
func (c *PageController) VisionPDF(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 VisionPDF: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		methodNotAllowed(w, "VisionPDF", r)
		return
	}

	lang := requestLanguage(r)
	pdf, err := c.pages.VisionPDF(r.Context(), lang)
	if err != nil {
		log.Printf("❌ VisionPDF: Error generating PDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"vision-%s.pdf\"", lang))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

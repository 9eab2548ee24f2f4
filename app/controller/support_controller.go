package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"bar-council-campaign/composer"
	"bar-council-campaign/models"
	"bar-council-campaign/service"
	"bar-council-campaign/utils"
)

// SupportController handles support pledges and support card downloads
type SupportController struct {
	cards   service.CardServiceInterface
	records service.RecordServiceInterface
	tasks   service.TaskSubmitter
	now     func() time.Time
}

// NewSupportController creates a new SupportController
func NewSupportController(cards service.CardServiceInterface, records service.RecordServiceInterface, tasks service.TaskSubmitter) *SupportController {
	return &SupportController{cards: cards, records: records, tasks: tasks, now: utils.NowIST}
}

// decodeSubmission reads a support submission from JSON or from the landing page form
func decodeSubmission(r *http.Request) (models.SupportSubmission, error) {
	var sub models.SupportSubmission
	if !isForm(r) {
		return sub, decodeJSON(r, &sub)
	}
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return sub, fmt.Errorf("invalid form body: %w", err)
	}
	sub = models.SupportSubmission{
		SupportType:      models.SupportType(r.FormValue("supportType")),
		Name:             r.FormValue("name"),
		EnrollmentNumber: r.FormValue("enrollmentNumber"),
		District:         r.FormValue("district"),
		BarAssociation:   r.FormValue("barAssociation"),
		Phone:            r.FormValue("phone"),
		Language:         r.FormValue("language"),
		CustomMessage:    r.FormValue("customMessage"),
		Format:           r.FormValue("format"),
	}
	return sub, nil
}

// renderStatus maps a card failure to an HTTP status
func renderStatus(err error) int {
	var loadErr *composer.ImageLoadError
	if errors.As(err, &loadErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (c *SupportController) supportEvent(sub models.SupportSubmission, downloaded bool) models.Event {
	if sub.ResolvedType() == models.SupportTypeDetailed {
		return models.DetailedSupport{
			At:              c.now(),
			Supporter:       sub.Supporter(),
			Language:        models.ParseLanguage(sub.Language),
			ImageDownloaded: downloaded,
		}
	}
	return models.QuickSupport{At: c.now(), DetailsProvided: false, ImageDownloaded: downloaded}
}

func (c *SupportController) logInBackground(task string, event models.Event) {
	c.tasks.Go(task, func(ctx context.Context) error {
		return c.records.Log(ctx, event)
	})
}

// Support handles POST /api/support
// Example request:
// POST /api/support
//
//	{
//	  "supportType": "Detailed Support",
//	  "name": "P. Kumar",
//	  "enrollmentNumber": "TS/1234/2020",
//	  "district": "Hyderabad",
//	  "language": "en",
//	  "customMessage": "Please support for a stronger Bar Council!"
//	}
//
// Example response:
//
//	{
//	  "success": true,
//	  "supportType": "Detailed Support",
//	  "image": "data:image/png;base64,..."
//	}
func (c *SupportController) Support(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Support: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Support", r)
		return
	}

	sub, err := decodeSubmission(r)
	if err != nil {
		log.Printf("❌ Support: %v", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	supportType := sub.ResolvedType()
	c.logInBackground("log-support", c.supportEvent(sub, false))

	card, err := c.cards.Render(r.Context(), sub, service.CardFormatPNG)
	if err != nil {
		log.Printf("❌ Support: Error rendering card: %v", err)
		writeJSONError(w, renderStatus(err), "failed to generate support image")
		return
	}

	log.Printf("✓ Support: %s recorded", supportType)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"supportType": supportType,
		"image":       card.PNG.DataURI(),
	})
}

// Card handles POST /api/support/card?format=png|jpeg and streams the card as a download
func (c *SupportController) Card(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Card: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Card", r)
		return
	}

	sub, err := decodeSubmission(r)
	if err != nil {
		log.Printf("❌ Card: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	formatValue := r.URL.Query().Get("format")
	if formatValue == "" {
		formatValue = sub.Format
	}
	format := service.ParseCardFormat(formatValue)

	card, err := c.cards.Render(r.Context(), sub, format)
	if err != nil {
		log.Printf("❌ Card: Error rendering card: %v", err)
		http.Error(w, "failed to generate support image", renderStatus(err))
		return
	}

	supporter := sub.Supporter()
	c.logInBackground("log-image-download", models.ImageDownload{
		At:               c.now(),
		SupportType:      sub.ResolvedType(),
		Name:             supporter.Name,
		EnrollmentNumber: supporter.EnrollmentNumber,
		Format:           string(format),
	})

	w.Header().Set("Content-Type", card.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", card.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(card.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(card.Data)
}

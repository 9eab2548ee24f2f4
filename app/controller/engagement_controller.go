package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bar-council-campaign/models"
	"bar-council-campaign/service"
	"bar-council-campaign/utils"
)

// EngagementController records push subscriptions, calendar downloads and votes
type EngagementController struct {
	records service.RecordServiceInterface
	tasks   service.TaskSubmitter
	now     func() time.Time
}

// NewEngagementController creates a new EngagementController
func NewEngagementController(records service.RecordServiceInterface, tasks service.TaskSubmitter) *EngagementController {
	return &EngagementController{records: records, tasks: tasks, now: utils.NowIST}
}

// SaveToken handles POST /api/save-fcm-token
// Example request:
// POST /api/save-fcm-token
// {"token": "fcm-registration-token"}
// Example response:
// {"success": true, "created": true, "message": "Token saved successfully"}
func (c *EngagementController) SaveToken(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SaveToken: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "SaveToken", r)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		log.Printf("❌ SaveToken: token is required")
		writeJSONError(w, http.StatusBadRequest, "Token is required")
		return
	}

	created, err := c.records.SaveSubscriptionToken(r.Context(), req.Token)
	if err != nil {
		log.Printf("❌ SaveToken: Error saving token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save token")
		return
	}

	message := "Token saved successfully"
	if !created {
		message = "Token already exists"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "created": created, "message": message})
}

// CalendarDownload handles POST /api/calendar-download. The body is JSON or a
// multipart form with a JSON "data" field.
// Example request:
// POST /api/calendar-download
// {"action": "downloaded", "permissionGranted": true}
func (c *EngagementController) CalendarDownload(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CalendarDownload: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "CalendarDownload", r)
		return
	}

	var req struct {
		Action            string `json:"action"`
		PermissionGranted bool   `json:"permissionGranted"`
	}
	if err := decodeBeacon(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch req.Action {
	case models.CalendarActionDownloaded, models.CalendarActionClosedWithoutDownload:
	default:
		log.Printf("❌ CalendarDownload: invalid action %q", req.Action)
		writeJSONError(w, http.StatusBadRequest, "action must be downloaded or closed_without_download")
		return
	}

	event := models.CalendarDownload{At: c.now(), Action: req.Action, PermissionGranted: req.PermissionGranted}
	c.tasks.Go("log-calendar", func(ctx context.Context) error {
		return c.records.Log(ctx, event)
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// parseOrder accepts the preferential order as a JSON number or string
func parseOrder(raw json.RawMessage) (int, error) {
	var value interface{}
	if len(raw) == 0 {
		return 0, fmt.Errorf("preferentialOrder is required")
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("invalid preferentialOrder")
	}
	var order int
	switch v := value.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("preferentialOrder must be a whole number")
		}
		order = int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("preferentialOrder must be a number")
		}
		order = n
	default:
		return 0, fmt.Errorf("preferentialOrder is required")
	}
	if order < models.MinPreferentialOrder || order > models.MaxPreferentialOrder {
		return 0, fmt.Errorf("preferentialOrder must be between %d and %d", models.MinPreferentialOrder, models.MaxPreferentialOrder)
	}
	return order, nil
}

// Vote handles POST /api/preferential-vote
// Example request:
// POST /api/preferential-vote
// {"preferentialOrder": 3}
// Example response:
// {"success": true, "preferentialOrder": 3}
func (c *EngagementController) Vote(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Vote: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Vote", r)
		return
	}

	var raw json.RawMessage
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		raw, _ = json.Marshal(r.FormValue("preferentialOrder"))
	} else {
		var req struct {
			PreferentialOrder json.RawMessage `json:"preferentialOrder"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		raw = req.PreferentialOrder
	}

	order, err := parseOrder(raw)
	if err != nil {
		log.Printf("❌ Vote: %v", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := c.now()
	if err := c.records.Log(r.Context(), models.VoteCast{At: now, Order: order}); err != nil {
		log.Printf("❌ Vote: Error saving vote: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save vote")
		return
	}
	c.tasks.Go("log-vote-tracking", func(ctx context.Context) error {
		return c.records.Log(ctx, models.VoteTracking{At: now, Action: models.TrackingVoted})
	})
	c.tasks.Go("setup-vote-summary", c.records.EnsureVoteSummary)

	log.Printf("✓ Vote: preferential order %d recorded", order)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "preferentialOrder": order})
}

var trackingActions = map[string]string{
	"opened":              models.TrackingModalOpened,
	"closed_without_vote": models.TrackingClosedWithoutVote,
}

// VoteTrack handles POST /api/preferential-vote-track
// Example request:
// POST /api/preferential-vote-track
// {"action": "closed_without_vote"}
func (c *EngagementController) VoteTrack(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 VoteTrack: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "VoteTrack", r)
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := decodeBeacon(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, ok := trackingActions[req.Action]
	if !ok {
		log.Printf("❌ VoteTrack: invalid action %q", req.Action)
		writeJSONError(w, http.StatusBadRequest, "action must be opened or closed_without_vote")
		return
	}

	if err := c.records.Log(r.Context(), models.VoteTracking{At: c.now(), Action: action}); err != nil {
		log.Printf("❌ VoteTrack: Error saving tracking: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to save tracking")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "action": action})
}

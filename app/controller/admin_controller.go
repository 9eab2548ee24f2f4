package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"bar-council-campaign/config"
	"bar-council-campaign/models"
	"bar-council-campaign/service"
	"bar-council-campaign/utils"
)

// AdminController handles the password gated admin endpoints
type AdminController struct {
	records     service.RecordServiceInterface
	broadcaster service.BroadcastServiceInterface
	sender      service.PushSender
	whatsapp    service.WhatsAppServiceInterface
	firebase    config.FirebaseConfig
}

// NewAdminController creates a new AdminController. broadcaster and sender are nil
// when push is not configured.
func NewAdminController(
	records service.RecordServiceInterface,
	broadcaster service.BroadcastServiceInterface,
	sender service.PushSender,
	whatsapp service.WhatsAppServiceInterface,
	firebase config.FirebaseConfig,
) *AdminController {
	return &AdminController{
		records:     records,
		broadcaster: broadcaster,
		sender:      sender,
		whatsapp:    whatsapp,
		firebase:    firebase,
	}
}

func (c *AdminController) pushEnabled(w http.ResponseWriter) bool {
	if c.broadcaster == nil || c.sender == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Push notifications are not configured")
		return false
	}
	return true
}

// PushSend handles POST /admin/push/send
// Example request:
// POST /admin/push/send
// {"title": "Polling day", "body": "Please vote today", "sendToAll": true}
// Example response:
//
//	{
//	  "success": true,
//	  "message": "Sent to 240 of 245 devices",
//	  "successCount": 240,
//	  "failureCount": 5,
//	  "totalTokens": 245,
//	  "batches": 3,
//	  "failedTokens": ["..."]
//	}
func (c *AdminController) PushSend(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 PushSend: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "PushSend", r)
		return
	}
	if !c.pushEnabled(w) {
		return
	}

	var req models.PushRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)
	if req.Title == "" || req.Body == "" {
		writeJSONError(w, http.StatusBadRequest, "Title and body are required")
		return
	}

	var result *models.BroadcastResult
	var err error
	if req.SendToAll {
		result, err = c.broadcaster.BroadcastToAll(r.Context(), req.Title, req.Body)
	} else {
		tokens := utils.ValidTokens(req.Tokens)
		if len(tokens) == 0 {
			writeJSONError(w, http.StatusBadRequest, "No valid FCM tokens provided")
			return
		}
		result, err = c.broadcaster.Broadcast(r.Context(), tokens, req.Title, req.Body)
	}
	if errors.Is(err, service.ErrNoSubscribers) {
		writeJSONError(w, http.StatusBadRequest, "No FCM tokens found. Make sure users have subscribed to notifications.")
		return
	}
	if err != nil {
		log.Printf("❌ PushSend: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to send notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("Sent to %d of %d devices", result.SuccessCount, result.TotalTokens),
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
		"totalTokens":  result.TotalTokens,
		"batches":      result.Batches,
		"failedTokens": result.FailedTokens,
	})
}

// PushTest handles GET /admin/push/test?token=. Without a token the first stored
// subscriber is used.
func (c *AdminController) PushTest(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 PushTest: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		methodNotAllowed(w, "PushTest", r)
		return
	}
	if !c.pushEnabled(w) {
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		tokens, err := c.records.SubscriptionTokens(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "Failed to read subscribers")
			return
		}
		if len(tokens) == 0 {
			writeJSONError(w, http.StatusBadRequest, "No FCM tokens found. Pass ?token= or subscribe a device first.")
			return
		}
		token = tokens[0]
	}

	result := c.sender.Send(r.Context(), token, "Test notification", "Push notifications are working.")
	writeJSON(w, http.StatusOK, result)
}

// SubscribersCount handles GET /admin/subscribers/count
func (c *AdminController) SubscribersCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "SubscribersCount", r)
		return
	}
	count, err := c.records.SubscriberCount(r.Context())
	if err != nil {
		log.Printf("❌ SubscribersCount: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to count subscribers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "count": count})
}

// SubscribersClear handles POST (or GET) /admin/subscribers/clear
func (c *AdminController) SubscribersClear(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SubscribersClear: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		methodNotAllowed(w, "SubscribersClear", r)
		return
	}
	cleared, err := c.records.ClearSubscribers(r.Context())
	if err != nil {
		log.Printf("❌ SubscribersClear: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to clear subscribers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cleared": cleared,
		"message": fmt.Sprintf("Cleared %d subscribers", cleared),
	})
}

// ConfigCheck handles GET /admin/config-check. It compares the project the web
// tokens are issued for with the project of the sending service account.
func (c *AdminController) ConfigCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "ConfigCheck", r)
		return
	}

	tokenProjectID := c.firebase.ProjectID
	serviceAccountProjectID := ""
	var parseErr error
	if c.firebase.ServiceAccount != "" {
		serviceAccountProjectID, parseErr = service.ServiceAccountProjectID(c.firebase.ServiceAccount)
	}

	vapid := "NOT SET"
	if c.firebase.VAPIDKey != "" {
		vapid = models.TruncateRunes(c.firebase.VAPIDKey, 20) + "..."
	}

	match := tokenProjectID != "" && tokenProjectID == serviceAccountProjectID
	resp := map[string]interface{}{
		"match":                   match,
		"tokenProjectId":          tokenProjectID,
		"serviceAccountProjectId": serviceAccountProjectID,
		"vapidKey":                vapid,
		"pushEnabled":             c.sender != nil,
	}
	switch {
	case parseErr != nil:
		resp["message"] = "Service account could not be parsed: " + parseErr.Error()
		resp["recommendation"] = "Paste the full service account JSON into FIREBASE_SERVICE_ACCOUNT."
	case serviceAccountProjectID == "":
		resp["message"] = "FIREBASE_SERVICE_ACCOUNT is not set; the project cannot be compared."
		resp["recommendation"] = "Set FIREBASE_SERVICE_ACCOUNT to the service account of the Firebase project."
	case match:
		resp["message"] = "Firebase project ids match."
		resp["recommendation"] = "No action needed."
	default:
		resp["message"] = "Firebase project ids do not match. Tokens will fail with SENDER_ID_MISMATCH."
		resp["recommendation"] = "Use a service account from the same Firebase project as FIREBASE_PROJECT_ID."
	}
	writeJSON(w, http.StatusOK, resp)
}

// VoteSummarySetup handles POST /admin/preferential-vote/setup-summary
func (c *AdminController) VoteSummarySetup(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 VoteSummarySetup: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "VoteSummarySetup", r)
		return
	}
	created, err := c.records.SetupVoteSummary(r.Context())
	if err != nil {
		log.Printf("❌ VoteSummarySetup: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to set up vote summary")
		return
	}
	message := "Summary sheet created with formulas"
	if !created {
		message = "Summary sheet already exists"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "created": created, "message": message})
}

// VoteSummary handles GET /admin/preferential-vote/summary
func (c *AdminController) VoteSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "VoteSummary", r)
		return
	}
	summary, err := c.records.VoteSummary(r.Context())
	if err != nil {
		log.Printf("❌ VoteSummary: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to read votes")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// VoteConflicts handles POST /admin/preferential-vote/cleanup-conflicts, removing
// the duplicate vote sheets created by concurrent first writes
func (c *AdminController) VoteConflicts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "VoteConflicts", r)
		return
	}
	var removed []string
	for _, name := range []string{models.PartitionVotes, models.PartitionVoteTracking} {
		names, err := c.records.RemoveConflictedPartitions(r.Context(), name)
		removed = append(removed, names...)
		if err != nil {
			log.Printf("❌ VoteConflicts: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to remove conflicted sheets")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "removed": removed})
}

func (c *AdminController) decodeWhatsApp(w http.ResponseWriter, r *http.Request) (models.WhatsAppRequest, []string, bool) {
	var req models.WhatsAppRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return req, nil, false
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return req, nil, false
	}
	contacts := c.whatsapp.Contacts(req)
	if len(contacts) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No valid phone numbers found")
		return req, nil, false
	}
	return req, contacts, true
}

// WhatsAppLinks handles POST /admin/whatsapp/links
// Example request:
// POST /admin/whatsapp/links
// {"csv": "name,phone\nRavi,9876543210", "message": "Please support: "}
func (c *AdminController) WhatsAppLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "WhatsAppLinks", r)
		return
	}
	req, contacts, ok := c.decodeWhatsApp(w, r)
	if !ok {
		return
	}
	links := c.whatsapp.BuildLinks(contacts, req.Message)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "count": len(links), "links": links})
}

// WhatsAppSend handles POST /admin/whatsapp/send
func (c *AdminController) WhatsAppSend(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 WhatsAppSend: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		methodNotAllowed(w, "WhatsAppSend", r)
		return
	}
	if !c.whatsapp.CanSend() {
		writeJSONError(w, http.StatusServiceUnavailable, "WhatsApp delivery is not configured")
		return
	}
	req, contacts, ok := c.decodeWhatsApp(w, r)
	if !ok {
		return
	}
	deliveries, err := c.whatsapp.Send(r.Context(), contacts, req.Message)
	if err != nil {
		log.Printf("❌ WhatsAppSend: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to send WhatsApp messages")
		return
	}
	sent := 0
	for _, d := range deliveries {
		if d.Success {
			sent++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"sent":       sent,
		"failed":     len(deliveries) - sent,
		"deliveries": deliveries,
	})
}

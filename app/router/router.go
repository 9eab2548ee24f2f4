package router

import (
	"net/http"

	"bar-council-campaign/app/controller"
	"bar-council-campaign/app/middleware"
	"bar-council-campaign/metrics"
)

type Controllers struct {
	Page       *controller.PageController
	Flow       *controller.FlowController
	Support    *controller.SupportController
	Engagement *controller.EngagementController
	Firebase   *controller.FirebaseController
	Admin      *controller.AdminController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter registers every route on a fresh mux. Admin routes go through gate.
func NewRouter(controllers *Controllers, gate *middleware.AdminGate, staticDir string) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Metrics(pattern, h))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		handle(pattern, gate.Wrap(h))
	}

	// Ping endpoint
	handle("/ping", pingHandler)
	mux.Handle("/metrics", metrics.Handler())

	// Static assets (candidate photo, calendar PDF, service worker)
	mux.Handle("/static/", middleware.Metrics("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir)))))

	// Pages
	handle("/", controllers.Page.Home)
	handle("/vision", controllers.Page.Vision)
	handle("/vision.pdf", controllers.Page.VisionPDF)

	// Support card
	handle("/api/support", controllers.Support.Support)
	handle("/api/support/card", controllers.Support.Card)

	// Engagement
	handle("/api/save-fcm-token", controllers.Engagement.SaveToken)
	handle("/api/calendar-download", controllers.Engagement.CalendarDownload)
	handle("/api/preferential-vote", controllers.Engagement.Vote)
	handle("/api/preferential-vote-track", controllers.Engagement.VoteTrack)

	// Modal flow
	handle("/api/flow", controllers.Flow.Flow)
	handle("/api/firebase-config", controllers.Firebase.Config)

	// Push notifications
	admin("/admin/push/send", controllers.Admin.PushSend)
	admin("/admin/push/test", controllers.Admin.PushTest)
	admin("/admin/subscribers/count", controllers.Admin.SubscribersCount)
	admin("/admin/subscribers/clear", controllers.Admin.SubscribersClear)
	admin("/admin/config-check", controllers.Admin.ConfigCheck)

	// Preferential votes
	admin("/admin/preferential-vote/setup-summary", controllers.Admin.VoteSummarySetup)
	admin("/admin/preferential-vote/summary", controllers.Admin.VoteSummary)
	admin("/admin/preferential-vote/cleanup-conflicts", controllers.Admin.VoteConflicts)

	// WhatsApp outreach
	admin("/admin/whatsapp/links", controllers.Admin.WhatsAppLinks)
	admin("/admin/whatsapp/send", controllers.Admin.WhatsAppSend)

	return middleware.CorrelationID(middleware.Logger(mux))
}

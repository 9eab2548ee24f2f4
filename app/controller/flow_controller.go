package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"bar-council-campaign/flow"
	"bar-council-campaign/models"
	"bar-council-campaign/service"
	"bar-council-campaign/utils"
)

// FlowController advances the home page modal sequence kept in the flow cookie
type FlowController struct {
	records service.RecordServiceInterface
	tasks   service.TaskSubmitter
	now     func() time.Time
}

// NewFlowController creates a new FlowController
func NewFlowController(records service.RecordServiceInterface, tasks service.TaskSubmitter) *FlowController {
	return &FlowController{records: records, tasks: tasks, now: utils.NowIST}
}

// visitTrigger is Visit, or QueryOverride when the link carries ?vote=true
func visitTrigger(r *http.Request) flow.Trigger {
	if r.URL.Query().Get("vote") == "true" {
		return flow.QueryOverride
	}
	return flow.Visit
}

// Advance applies trigger to the request's state, persists the result and records
// vote modal tracking in the background
func (c *FlowController) Advance(w http.ResponseWriter, r *http.Request, trigger flow.Trigger) (flow.Step, error) {
	step, err := flow.Apply(flow.FromRequest(r), trigger)
	if err != nil {
		return step, err
	}
	flow.SetCookie(w, step.To)

	if action, ok := step.Tracking(); ok {
		event := models.VoteTracking{At: c.now(), Action: action}
		c.tasks.Go("log-flow-tracking", func(ctx context.Context) error {
			return c.records.Log(ctx, event)
		})
	}
	if step.From != step.To {
		log.Printf("🔄 Flow: %s -> %s (%s)", step.From, step.To, step.Trigger)
	}
	return step, nil
}

func stepResponse(step flow.Step) map[string]interface{} {
	return map[string]interface{}{
		"success":  true,
		"previous": step.From,
		"state":    step.To,
		"trigger":  step.Trigger,
	}
}

// Flow handles GET /api/flow (a visit, ?vote=true forces the vote modal) and
// POST /api/flow {"trigger": "user_closed"|"user_submitted"}
func (c *FlowController) Flow(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		step, err := c.Advance(w, r, visitTrigger(r))
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stepResponse(step))
	case http.MethodPost:
		var req struct {
			Trigger string `json:"trigger"`
		}
		if err := decodeBeacon(r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		trigger, err := flow.ParseTrigger(req.Trigger)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		step, err := c.Advance(w, r, trigger)
		if errors.Is(err, flow.ErrInvalidTransition) {
			log.Printf("⚠️  Flow: %v", err)
			writeJSONError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stepResponse(step))
	default:
		methodNotAllowed(w, "Flow", r)
	}
}

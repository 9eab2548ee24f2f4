// Package flow sequences the landing page modals: the calendar offer, then the
// preferential vote prompt, then the page content.
package flow

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bar-council-campaign/models"
)

// State is the single persisted position of a visitor in the modal sequence
type State string

const (
	Unseen        State = "unseen"
	CalendarShown State = "calendar_shown"
	VoteShown     State = "vote_shown"
	ContentShown  State = "content_shown"
)

// Trigger is an event that moves a visitor through the sequence
type Trigger string

const (
	Visit         Trigger = "visit"
	UserClosed    Trigger = "user_closed"
	UserSubmitted Trigger = "user_submitted"
	QueryOverride Trigger = "query_override"
)

// CookieName holds the persisted state
const CookieName = "campaign_flow"

// ErrInvalidTransition is returned when a trigger does not apply to the current state
var ErrInvalidTransition = errors.New("invalid flow transition")

var transitions = map[State]map[Trigger]State{
	Unseen: {
		Visit: CalendarShown,
	},
	CalendarShown: {
		Visit:         CalendarShown,
		UserClosed:    VoteShown,
		UserSubmitted: VoteShown,
	},
	VoteShown: {
		Visit:         VoteShown,
		UserClosed:    ContentShown,
		UserSubmitted: ContentShown,
	},
	ContentShown: {
		Visit: ContentShown,
	},
}

// ParseState maps a stored value to a state. Unknown values start the sequence over.
func ParseState(value string) State {
	s := State(strings.TrimSpace(value))
	if _, ok := transitions[s]; ok {
		return s
	}
	return Unseen
}

// ParseTrigger validates a trigger name
func ParseTrigger(value string) (Trigger, error) {
	t := Trigger(strings.TrimSpace(value))
	switch t {
	case Visit, UserClosed, UserSubmitted, QueryOverride:
		return t, nil
	}
	return "", fmt.Errorf("unknown trigger %q: %w", value, ErrInvalidTransition)
}

// Next returns the state reached from s by trigger t
func Next(s State, t Trigger) (State, error) {
	if t == QueryOverride {
		return VoteShown, nil
	}
	next, ok := transitions[s][t]
	if !ok {
		return s, fmt.Errorf("%s on %s: %w", t, s, ErrInvalidTransition)
	}
	return next, nil
}

// Step is an applied transition
type Step struct {
	From    State
	To      State
	Trigger Trigger
}

// Apply runs trigger t from s
func Apply(s State, t Trigger) (Step, error) {
	next, err := Next(s, t)
	if err != nil {
		return Step{}, err
	}
	return Step{From: s, To: next, Trigger: t}, nil
}

// Tracking returns the vote tracking action the step should record, if any.
// Submitting from VoteShown records nothing here because the vote itself is logged.
func (st Step) Tracking() (string, bool) {
	if st.From == VoteShown && st.Trigger == UserClosed {
		return models.TrackingClosedWithoutVote, true
	}
	if st.To == VoteShown && st.From != VoteShown {
		return models.TrackingModalOpened, true
	}
	return "", false
}

// FromRequest reads the persisted state from the request cookie
func FromRequest(r *http.Request) State {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Unseen
	}
	return ParseState(c.Value)
}

// SetCookie persists s on the response
func SetCookie(w http.ResponseWriter, s State) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(s),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package models

import (
	"strconv"
	"time"
)

// Partition names in the record store
const (
	PartitionSubscribers    = "Push Notification Subscribers"
	PartitionQuickSupport   = "Quick Support"
	PartitionDetailed       = "Detailed Support"
	PartitionImageDownloads = "Image Downloads"
	PartitionCalendar       = "Calendar Downloads"
	PartitionVotes          = "Preferential Votes"
	PartitionVoteTracking   = "Preferential Vote Tracking"
	PartitionVoteSummary    = "Preferential Votes Summary"
)

// TimestampLayout is the cell format of every Timestamp column
const TimestampLayout = "2006-01-02 15:04:05"

// Event is one row destined for the record store. The set of implementations is closed:
// every kind of interaction has its own struct with an explicit field set.
type Event interface {
	Partition() string
	Headers() []string
	Row() []interface{}
	event()
}

func stamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// SubscriptionSaved records a push subscription token
type SubscriptionSaved struct {
	At    time.Time
	Token string
}

func (SubscriptionSaved) Partition() string { return PartitionSubscribers }
func (SubscriptionSaved) Headers() []string {
	return []string{"Timestamp", "FCM Token", "Status"}
}
func (e SubscriptionSaved) Row() []interface{} {
	return []interface{}{stamp(e.At), e.Token, "Active"}
}
func (SubscriptionSaved) event() {}

// QuickSupport records a pledge without supporter details
type QuickSupport struct {
	At              time.Time
	DetailsProvided bool
	ImageDownloaded bool
}

func (QuickSupport) Partition() string { return PartitionQuickSupport }
func (QuickSupport) Headers() []string {
	return []string{"Timestamp", "Support Type", "Details Provided", "Image Generated", "Image Downloaded"}
}
func (e QuickSupport) Row() []interface{} {
	return []interface{}{stamp(e.At), string(SupportTypeQuick), yesNo(e.DetailsProvided), "Yes", yesNo(e.ImageDownloaded)}
}
func (QuickSupport) event() {}

// DetailedSupport records a pledge with supporter details
type DetailedSupport struct {
	At              time.Time
	Supporter       SupporterDetails
	Language        Language
	ImageDownloaded bool
}

func (DetailedSupport) Partition() string { return PartitionDetailed }
func (DetailedSupport) Headers() []string {
	return []string{
		"Timestamp", "Support Type", "Name", "Enrollment Number", "District",
		"Bar Association", "Phone", "Language", "Image Generated", "Image Downloaded",
	}
}
func (e DetailedSupport) Row() []interface{} {
	return []interface{}{
		stamp(e.At),
		string(SupportTypeDetailed),
		e.Supporter.Name,
		e.Supporter.EnrollmentNumber,
		e.Supporter.District,
		e.Supporter.BarAssociation,
		e.Supporter.Phone,
		string(e.Language),
		"Yes",
		yesNo(e.ImageDownloaded),
	}
}
func (DetailedSupport) event() {}

// ImageDownload records a support card download
type ImageDownload struct {
	At               time.Time
	SupportType      SupportType
	Name             string
	EnrollmentNumber string
	Format           string
}

func (ImageDownload) Partition() string { return PartitionImageDownloads }
func (ImageDownload) Headers() []string {
	return []string{"Timestamp", "Support Type", "Name", "Enrollment Number", "Format"}
}
func (e ImageDownload) Row() []interface{} {
	supportType := string(e.SupportType)
	if supportType == "" {
		supportType = "Unknown"
	}
	return []interface{}{stamp(e.At), supportType, e.Name, e.EnrollmentNumber, e.Format}
}
func (ImageDownload) event() {}

// Calendar modal actions
const (
	CalendarActionDownloaded            = "downloaded"
	CalendarActionClosedWithoutDownload = "closed_without_download"
)

// CalendarDownload records the outcome of the calendar modal
type CalendarDownload struct {
	At                time.Time
	Action            string
	PermissionGranted bool
}

func (CalendarDownload) Partition() string { return PartitionCalendar }
func (CalendarDownload) Headers() []string {
	return []string{"Timestamp", "Action", "Permission Granted"}
}
func (e CalendarDownload) Row() []interface{} {
	return []interface{}{stamp(e.At), e.Action, yesNo(e.PermissionGranted)}
}
func (CalendarDownload) event() {}

// Preferential order bounds
const (
	MinPreferentialOrder = 1
	MaxPreferentialOrder = 24
)

// VoteCast records a mock preferential vote
type VoteCast struct {
	At    time.Time
	Order int
}

func (VoteCast) Partition() string { return PartitionVotes }
func (VoteCast) Headers() []string {
	return []string{"Timestamp", "Preferential Order"}
}
func (e VoteCast) Row() []interface{} {
	return []interface{}{stamp(e.At), strconv.Itoa(e.Order)}
}
func (VoteCast) event() {}

// Vote modal tracking actions as written to the store
const (
	TrackingModalOpened       = "Modal Opened"
	TrackingClosedWithoutVote = "Closed Without Vote"
	TrackingVoted             = "Voted"
)

// VoteTracking records what the visitor did with the vote modal
type VoteTracking struct {
	At     time.Time
	Action string
}

func (VoteTracking) Partition() string { return PartitionVoteTracking }
func (VoteTracking) Headers() []string {
	return []string{"Timestamp", "Action"}
}
func (e VoteTracking) Row() []interface{} {
	return []interface{}{stamp(e.At), e.Action}
}
func (VoteTracking) event() {}

// Compile-time checks that every kind satisfies Event
var (
	_ Event = SubscriptionSaved{}
	_ Event = QuickSupport{}
	_ Event = DetailedSupport{}
	_ Event = ImageDownload{}
	_ Event = CalendarDownload{}
	_ Event = VoteCast{}
	_ Event = VoteTracking{}
)

package models

// PushResult is the outcome of sending one notification to one device token
type PushResult struct {
	Token     string `json:"token"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	Error     string `json:"error,omitempty"`
	Hint      string `json:"hint,omitempty"`
}

// BroadcastResult aggregates a fan-out over many tokens
type BroadcastResult struct {
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	TotalTokens  int      `json:"totalTokens"`
	Batches      int      `json:"batches"`
	FailedTokens []string `json:"failedTokens,omitempty"`
}

// PushRequest is the body of POST /admin/push/send
type PushRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tokens    []string `json:"tokens"`
	SendToAll bool     `json:"sendToAll"`
}

// VoteSummaryRow is one preferential order with its tally
type VoteSummaryRow struct {
	Order      int     `json:"order"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// VoteSummary is the tally of all preferential votes
type VoteSummary struct {
	Rows  []VoteSummaryRow `json:"rows"`
	Total int              `json:"total"`
}

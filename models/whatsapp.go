package models

// WhatsAppRequest is the body of the admin WhatsApp endpoints. Contacts may be given
// as raw CSV text, as a list, or both.
type WhatsAppRequest struct {
	CSV      string   `json:"csv"`
	Contacts []string `json:"contacts"`
	Message  string   `json:"message"`
}

// WhatsAppLink is a click-to-chat link for one contact
type WhatsAppLink struct {
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

// WhatsAppDelivery is the outcome of one Twilio WhatsApp message
type WhatsAppDelivery struct {
	Phone   string `json:"phone"`
	Success bool   `json:"success"`
	SID     string `json:"sid,omitempty"`
	Error   string `json:"error,omitempty"`
}

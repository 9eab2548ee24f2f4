package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"bar-council-campaign/metrics"
	"bar-council-campaign/models"

	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	notificationIcon = "/A-logo.png"
	notificationLink = "/"
)

// PushSender delivers one notification to one device token
type PushSender interface {
	Send(ctx context.Context, token, title, body string) models.PushResult
}

// PushService sends notifications through the FCM HTTP v1 API
type PushService struct {
	client    *fcm.Service
	projectID string
}

// Ensure PushService implements PushSender
var _ PushSender = (*PushService)(nil)

// CleanServiceAccountJSON strips the surrounding quotes and escaped quotes that
// hosting dashboards often add to a pasted service account
func CleanServiceAccountJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if len(cleaned) >= 2 && strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`) {
		cleaned = cleaned[1 : len(cleaned)-1]
		cleaned = strings.NewReplacer(`\"`, `"`, `\'`, `'`).Replace(cleaned)
	}
	return cleaned
}

// ServiceAccountProjectID reads project_id from a service account JSON document
func ServiceAccountProjectID(raw string) (string, error) {
	var sa struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal([]byte(CleanServiceAccountJSON(raw)), &sa); err != nil {
		return "", fmt.Errorf("failed to parse service account: %w", err)
	}
	if sa.ProjectID == "" {
		return "", errors.New("project_id not found in service account")
	}
	return sa.ProjectID, nil
}

// NewPushService creates an FCM client. The project id falls back to the one in the
// service account when empty.
func NewPushService(ctx context.Context, projectID, credentialsFile, serviceAccountJSON string) (*PushService, error) {
	var opts []option.ClientOption
	switch {
	case serviceAccountJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(CleanServiceAccountJSON(serviceAccountJSON))))
		if projectID == "" {
			id, err := ServiceAccountProjectID(serviceAccountJSON)
			if err != nil {
				return nil, err
			}
			projectID = id
		}
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	default:
		return nil, errors.New("FIREBASE_SERVICE_ACCOUNT or FIREBASE_CREDENTIALS_FILE is required")
	}
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	return NewPushServiceWithOptions(ctx, projectID, opts...)
}

// NewPushServiceWithOptions creates an FCM client from raw client options
func NewPushServiceWithOptions(ctx context.Context, projectID string, opts ...option.ClientOption) (*PushService, error) {
	client, err := fcm.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create fcm service: %w", err)
	}
	return &PushService{client: client, projectID: projectID}, nil
}

// ProjectID returns the Firebase project the service sends through
func (s *PushService) ProjectID() string {
	return s.projectID
}

// Send delivers a notification that opens the site when clicked
func (s *PushService) Send(ctx context.Context, token, title, body string) models.PushResult {
	webNotification, _ := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
		"icon":  notificationIcon,
		"badge": notificationIcon,
	})
	req := &fcm.SendMessageRequest{
		Message: &fcm.Message{
			Token:        token,
			Notification: &fcm.Notification{Title: title, Body: body},
			Webpush: &fcm.WebpushConfig{
				Notification: googleapi.RawMessage(webNotification),
				FcmOptions:   &fcm.WebpushFcmOptions{Link: notificationLink},
			},
		},
	}

	msg, err := s.client.Projects.Messages.Send("projects/"+s.projectID, req).Context(ctx).Do()
	if err != nil {
		result := pushFailure(token, err)
		log.Printf("❌ Push failed: code=%s error=%s", result.ErrorCode, result.Error)
		metrics.PushSent(false)
		return result
	}
	metrics.PushSent(true)
	return models.PushResult{Token: token, Success: true, MessageID: msg.Name}
}

var pushErrorHints = map[string]string{
	"UNREGISTERED":           "Token is no longer valid. The user unsubscribed or the token expired.",
	"INVALID_ARGUMENT":       "Token format is invalid or the message payload is malformed.",
	"SENDER_ID_MISMATCH":     "Token was created for a different Firebase project. Check FIREBASE_PROJECT_ID against the service account.",
	"THIRD_PARTY_AUTH_ERROR": "Web push credentials were rejected. Check the VAPID key configuration.",
	"QUOTA_EXCEEDED":         "Sending rate exceeded. Retry later with smaller batches.",
	"UNAVAILABLE":            "FCM is temporarily unavailable. Retry later.",
	"INTERNAL":               "FCM internal error. Retry later.",
}

// PushErrorHint returns a human readable hint for an FCM error code
func PushErrorHint(code string) string {
	return pushErrorHints[code]
}

func pushFailure(token string, err error) models.PushResult {
	code := fcmErrorCode(err)
	return models.PushResult{
		Token:     token,
		ErrorCode: code,
		Error:     err.Error(),
		Hint:      PushErrorHint(code),
	}
}

// fcmErrorCode extracts the FCM error code from the error details, falling back to
// the HTTP status
func fcmErrorCode(err error) string {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return "UNKNOWN"
	}
	for _, detail := range gerr.Details {
		if m, ok := detail.(map[string]interface{}); ok {
			if code, ok := m["errorCode"].(string); ok && code != "" {
				return code
			}
		}
	}
	switch gerr.Code {
	case http.StatusNotFound:
		return "UNREGISTERED"
	case http.StatusBadRequest:
		return "INVALID_ARGUMENT"
	case http.StatusForbidden:
		return "SENDER_ID_MISMATCH"
	case http.StatusUnauthorized:
		return "THIRD_PARTY_AUTH_ERROR"
	case http.StatusTooManyRequests:
		return "QUOTA_EXCEEDED"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	case http.StatusInternalServerError:
		return "INTERNAL"
	}
	return "UNKNOWN"
}

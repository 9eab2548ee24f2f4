package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Record store backends
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config aggregates application settings sourced from environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Candidate CandidateConfig `mapstructure:"candidate"`
	Google    GoogleConfig    `mapstructure:"google"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Firebase  FirebaseConfig  `mapstructure:"firebase"`
	Push      PushConfig      `mapstructure:"push"`
	Card      CardConfig      `mapstructure:"card"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Chrome    ChromeConfig    `mapstructure:"chrome"`
	Twilio    TwilioConfig    `mapstructure:"twilio"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CandidateConfig identifies whose card is rendered.
type CandidateConfig struct {
	Name  string `mapstructure:"name"`
	Photo string `mapstructure:"photo"`
}

// GoogleConfig contains service account credentials for Sheets and Drive.
type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	SheetID         string `mapstructure:"sheet_id"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// FirebaseConfig holds the messaging project and the public web app settings.
type FirebaseConfig struct {
	ProjectID         string `mapstructure:"project_id"`
	CredentialsFile   string `mapstructure:"credentials_file"`
	ServiceAccount    string `mapstructure:"service_account"`
	APIKey            string `mapstructure:"api_key"`
	MessagingSenderID string `mapstructure:"messaging_sender_id"`
	AppID             string `mapstructure:"app_id"`
	VAPIDKey          string `mapstructure:"vapid_key"`
}

// PushConfig tunes broadcast fan-out.
type PushConfig struct {
	BatchSize   int           `mapstructure:"batch_size"`
	BatchDelay  time.Duration `mapstructure:"batch_delay"`
	Concurrency int           `mapstructure:"concurrency"`
}

// CardConfig tunes support card rendering.
type CardConfig struct {
	MessageWrap     string `mapstructure:"message_wrap"`
	MessageMaxChars int    `mapstructure:"message_max_chars"`
	FontRegularPath string `mapstructure:"font_regular_path"`
	FontBoldPath    string `mapstructure:"font_bold_path"`
}

// AdminConfig guards the admin endpoints.
type AdminConfig struct {
	PasswordHash string `mapstructure:"password_hash"`
}

// ChromeConfig locates the headless browser used for PDF export.
type ChromeConfig struct {
	Path       string        `mapstructure:"path"`
	PDFTimeout time.Duration `mapstructure:"pdf_timeout"`
}

// TwilioConfig enables WhatsApp delivery through Twilio.
type TwilioConfig struct {
	AccountSID   string `mapstructure:"account_sid"`
	AuthToken    string `mapstructure:"auth_token"`
	WhatsAppFrom string `mapstructure:"whatsapp_from"`
}

// Addr returns the listen address. A leading colon in PORT is tolerated.
func (s ServerConfig) Addr() string {
	return "0.0.0.0:" + strings.TrimPrefix(s.Port, ":")
}

// IsProduction reports whether ENV is production
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

// HasCredentials reports whether Google service account credentials are configured
func (g GoogleConfig) HasCredentials() bool {
	return g.CredentialsFile != "" || g.CredentialsJSON != ""
}

// Backend resolves the record store backend. Without an explicit choice, Sheets is
// used when a spreadsheet is configured and memory otherwise.
func (c Config) Backend() string {
	if c.Store.Backend != "" {
		return strings.ToLower(c.Store.Backend)
	}
	if c.Google.SheetID != "" {
		return BackendSheets
	}
	return BackendMemory
}

// TwilioEnabled reports whether every Twilio setting is present
func (t TwilioConfig) TwilioEnabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppFrom != ""
}

// Load reads configuration solely from environment variables (with defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.public_base_url", "http://localhost:8080")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("candidate.name", "ADVOCATE NAME")
	v.SetDefault("candidate.photo", "/candidate/candidate.png")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("push.batch_size", 100)
	v.SetDefault("push.batch_delay", 100*time.Millisecond)
	v.SetDefault("push.concurrency", 10)
	v.SetDefault("card.message_wrap", "words")
	v.SetDefault("card.message_max_chars", 35)
	v.SetDefault("chrome.pdf_timeout", 30*time.Second)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"server.port":                  "PORT",
		"server.env":                   "ENV",
		"server.public_base_url":       "PUBLIC_BASE_URL",
		"server.static_dir":            "STATIC_DIR",
		"server.shutdown_timeout":      "SHUTDOWN_TIMEOUT",
		"candidate.name":               "CANDIDATE_NAME",
		"candidate.photo":              "CANDIDATE_PHOTO",
		"google.credentials_file":      "GOOGLE_APPLICATION_CREDENTIALS",
		"google.credentials_json":      "GOOGLE_APPLICATION_CREDENTIALS_JSON",
		"google.sheet_id":              "GOOGLE_SHEET_ID",
		"store.backend":                "RECORD_STORE",
		"database.url":                 "DATABASE_URL",
		"database.host":                "DB_HOST",
		"database.port":                "DB_PORT",
		"database.name":                "DB_NAME",
		"database.user":                "DB_USER",
		"database.password":            "DB_PASSWORD",
		"database.sslmode":             "DB_SSLMODE",
		"firebase.project_id":          "FIREBASE_PROJECT_ID",
		"firebase.credentials_file":    "FIREBASE_CREDENTIALS_FILE",
		"firebase.service_account":     "FIREBASE_SERVICE_ACCOUNT",
		"firebase.api_key":             "FIREBASE_API_KEY",
		"firebase.messaging_sender_id": "FIREBASE_MESSAGING_SENDER_ID",
		"firebase.app_id":              "FIREBASE_APP_ID",
		"firebase.vapid_key":           "FIREBASE_VAPID_KEY",
		"push.batch_size":              "PUSH_BATCH_SIZE",
		"push.batch_delay":             "PUSH_BATCH_DELAY",
		"push.concurrency":             "PUSH_CONCURRENCY",
		"card.message_wrap":            "CARD_MESSAGE_WRAP",
		"card.message_max_chars":       "CARD_MESSAGE_MAX_CHARS",
		"card.font_regular_path":       "FONT_REGULAR_PATH",
		"card.font_bold_path":          "FONT_BOLD_PATH",
		"admin.password_hash":          "ADMIN_PASSWORD_HASH",
		"chrome.path":                  "CHROME_PATH",
		"chrome.pdf_timeout":           "CHROME_PDF_TIMEOUT",
		"twilio.account_sid":           "TWILIO_ACCOUNT_SID",
		"twilio.auth_token":            "TWILIO_AUTH_TOKEN",
		"twilio.whatsapp_from":         "TWILIO_WHATSAPP_FROM",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if strings.TrimPrefix(cfg.Server.Port, ":") == "" {
		return errors.New("server port is required")
	}
	if cfg.Candidate.Name == "" {
		return errors.New("candidate name is required")
	}
	if cfg.Candidate.Photo == "" {
		return errors.New("candidate photo is required")
	}

	switch cfg.Backend() {
	case BackendSheets:
		if cfg.Google.SheetID == "" {
			return errors.New("GOOGLE_SHEET_ID is required for the sheets record store")
		}
		if !cfg.Google.HasCredentials() {
			return errors.New("GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS_JSON is required for the sheets record store")
		}
	case BackendPostgres:
		if cfg.Database.URL == "" && (cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "") {
			return errors.New("DATABASE_URL or DB_HOST, DB_USER, DB_NAME are required for the postgres record store")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown record store %q", cfg.Store.Backend)
	}

	if cfg.Push.BatchSize <= 0 || cfg.Push.BatchSize > 500 {
		return errors.New("push batch size must be between 1 and 500")
	}
	if cfg.Push.Concurrency <= 0 {
		return errors.New("push concurrency must be positive")
	}
	if cfg.Push.BatchDelay < 0 {
		return errors.New("push batch delay must not be negative")
	}

	switch strings.ToLower(cfg.Card.MessageWrap) {
	case "words", "chars":
	default:
		return fmt.Errorf("card message wrap must be words or chars, got %q", cfg.Card.MessageWrap)
	}
	if cfg.Card.MessageMaxChars <= 0 {
		return errors.New("card message max chars must be positive")
	}
	return nil
}

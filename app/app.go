package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"google.golang.org/api/option"

	"bar-council-campaign/app/controller"
	"bar-council-campaign/app/middleware"
	"bar-council-campaign/app/router"
	"bar-council-campaign/composer"
	"bar-council-campaign/config"
	"bar-council-campaign/db"
	"bar-council-campaign/locale"
	"bar-council-campaign/repository"
	"bar-council-campaign/service"
)

const backgroundTaskTimeout = 30 * time.Second

// App is the wired HTTP handler plus the resources it owns
type App struct {
	Handler http.Handler
	Close   func()
}

func googleOptions(cfg config.GoogleConfig) []option.ClientOption {
	if cfg.CredentialsJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(service.CleanServiceAccountJSON(cfg.CredentialsJSON)))}
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
}

func openRecordStore(ctx context.Context, cfg *config.Config) (repository.RecordStore, *sql.DB, error) {
	switch cfg.Backend() {
	case config.BackendSheets:
		store, err := repository.NewSheetsRecordStore(ctx, cfg.Google.SheetID, googleOptions(cfg.Google)...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sheets store: %w", err)
		}
		log.Printf("✓ Using Google Sheets record store")
		return store, nil, nil
	case config.BackendPostgres:
		conn, err := db.Open(ctx, db.Settings{
			URL:      cfg.Database.URL,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.EnsureSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Printf("✓ Using PostgreSQL record store")
		return repository.NewPostgresRecordStore(conn), conn, nil
	default:
		log.Printf("⚠️  Using in-memory record store, records are lost on restart")
		return repository.NewMemoryRecordStore(), nil, nil
	}
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	store, conn, err := openRecordStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	records := service.NewRecordService(store)

	// Drive is only needed for drive:<id> photos
	var driveDownloader composer.DriveDownloader
	if cfg.Google.HasCredentials() {
		driveService, err := service.NewDriveService(ctx, googleOptions(cfg.Google)...)
		if err != nil {
			log.Printf("⚠️  Drive photos disabled: %v", err)
		} else {
			driveDownloader = driveService
		}
	}

	fonts, err := composer.LoadFonts(cfg.Card.FontRegularPath, cfg.Card.FontBoldPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	if err := fonts.CheckCoverage(locale.Languages()...); err != nil {
		if cfg.Server.IsProduction() {
			return nil, err
		}
		log.Printf("⚠️  %v", err)
	}
	layout := composer.DefaultLayout()
	layout.MessageWrap = composer.ParseWrapPolicy(cfg.Card.MessageWrap)
	layout.MessageMaxChars = cfg.Card.MessageMaxChars

	candidate := service.Candidate{Name: cfg.Candidate.Name, Photo: cfg.Candidate.Photo}
	loader := composer.NewSourceLoader(cfg.Server.PublicBaseURL, cfg.Server.StaticDir, driveDownloader)
	cards := service.NewCardService(composer.New(fonts, loader, layout), candidate)

	pages, err := service.NewPageService(candidate, cfg.Server.PublicBaseURL, cfg.Chrome.Path, cfg.Chrome.PDFTimeout)
	if err != nil {
		return nil, err
	}

	var broadcaster service.BroadcastServiceInterface
	var sender service.PushSender
	push, err := service.NewPushService(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile, cfg.Firebase.ServiceAccount)
	if err != nil {
		log.Printf("⚠️  Push notifications disabled: %v", err)
	} else {
		sender = push
		broadcaster = service.NewBroadcastService(push, records, service.BroadcastOptions{
			BatchSize:   cfg.Push.BatchSize,
			BatchDelay:  cfg.Push.BatchDelay,
			Concurrency: cfg.Push.Concurrency,
		})
		log.Printf("✓ Push notifications enabled for project %s", push.ProjectID())
	}

	var messenger service.WhatsAppMessenger
	if cfg.Twilio.TwilioEnabled() {
		messenger = service.NewTwilioMessenger(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom)
	}
	whatsapp := service.NewWhatsAppService(cfg.Server.PublicBaseURL, messenger)

	tasks := service.NewTaskRunner(backgroundTaskTimeout)

	// Create controllers
	flowController := controller.NewFlowController(records, tasks)
	controllers := &router.Controllers{
		Page:       controller.NewPageController(pages, flowController),
		Flow:       flowController,
		Support:    controller.NewSupportController(cards, records, tasks),
		Engagement: controller.NewEngagementController(records, tasks),
		Firebase:   controller.NewFirebaseController(cfg.Firebase),
		Admin:      controller.NewAdminController(records, broadcaster, sender, whatsapp, cfg.Firebase),
	}

	gate := middleware.NewAdminGate(cfg.Admin.PasswordHash)
	if !gate.Enabled() {
		log.Printf("ℹ️  ADMIN_PASSWORD_HASH not set, admin endpoints are disabled")
	}

	return &App{
		Handler: router.NewRouter(controllers, gate, cfg.Server.StaticDir),
		Close: func() {
			tasks.Close()
			if conn != nil {
				if err := conn.Close(); err != nil {
					log.Printf("❌ Error closing database: %v", err)
				}
			}
		},
	}, nil
}

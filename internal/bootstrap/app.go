package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	authhandler "realestate-backend/internal/auth"
	"realestate-backend/internal/certificates"
	"realestate-backend/internal/ingest"
	"realestate-backend/internal/inquiries"
	"realestate-backend/internal/maps"
	"realestate-backend/internal/properties"
	"realestate-backend/internal/seed"
	"realestate-backend/internal/services/health"
	"realestate-backend/internal/shared/auth"
	"realestate-backend/internal/shared/config"
	"realestate-backend/internal/shared/server"
	"realestate-backend/internal/shared/storage/db"
	"realestate-backend/internal/shared/storage/object"
	localstore "realestate-backend/internal/shared/storage/object/local"
	s3store "realestate-backend/internal/shared/storage/object/s3"
	"realestate-backend/internal/shared/telemetry"
	"realestate-backend/internal/stats"
	"realestate-backend/internal/subscribers"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	Issuer       *auth.Issuer
	Properties   *properties.Service
	Maps         *maps.Service
	Certificates *certificates.Service
	Inquiries    *inquiries.Service
	Subscribers  *subscribers.Service
	Stats        *stats.Service
}

// Build connects stores, wires services and handlers, seeds empty catalogs
// and returns the ready router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	cfg.Normalize()
	telemetry.SetLevel(cfg.LogLevel)

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Issuer: issuer,
	}
	buildServices(app)

	if cfg.SeedOnStart {
		cat, err := seed.DefaultCatalog()
		if err != nil {
			return nil, err
		}
		if _, err := seed.SeedIfEmpty(ctx, seed.Targets{Properties: app.Properties, Maps: app.Maps}, cat); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	var uploadsDir string
	if local, ok := store.(*localstore.Store); ok {
		uploadsDir = local.Dir()
	}
	creds := auth.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     cfg,
		Verifier:   issuer,
		Health:     health.NewService(pinger(sqlDB)),
		UploadsDir: uploadsDir,
		Handlers: []server.RouteRegistrar{
			authhandler.NewHandler(creds, issuer),
			properties.NewHandler(app.Properties),
			maps.NewHandler(app.Maps),
			certificates.NewHandler(app.Certificates),
			inquiries.NewHandler(app.Inquiries),
			subscribers.NewHandler(app.Subscribers),
			stats.NewHandler(app.Stats),
		},
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			KMSKeyID:        cfg.SSEKMSKeyID,
		})
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.UploadsURLPrefix), nil
	}
}

func buildServices(app *App) {
	var (
		propertyRepo    properties.Repo
		mapRepo         maps.Repo
		certificateRepo certificates.Repo
		inquiryRepo     inquiries.Repo
		subscriberRepo  subscribers.Repo
	)
	if app.DB != nil {
		propertyRepo = &properties.PGRepo{DB: app.DB}
		mapRepo = &maps.PGRepo{DB: app.DB}
		certificateRepo = &certificates.PGRepo{DB: app.DB}
		inquiryRepo = &inquiries.PGRepo{DB: app.DB}
		subscriberRepo = &subscribers.PGRepo{DB: app.DB}
	} else {
		propertyRepo = properties.NewMemoryRepo()
		mapRepo = maps.NewMemoryRepo()
		certificateRepo = certificates.NewMemoryRepo()
		inquiryRepo = inquiries.NewMemoryRepo()
		subscriberRepo = subscribers.NewMemoryRepo()
	}

	ing := ingest.New(app.Store, app.Config.MaxUploadBytes)

	app.Properties = &properties.Service{Repo: propertyRepo, Ingest: ing, MaxImages: app.Config.MaxPropertyImages}
	app.Maps = &maps.Service{Repo: mapRepo, Ingest: ing}
	app.Certificates = &certificates.Service{Repo: certificateRepo, Ingest: ing}
	app.Inquiries = &inquiries.Service{Repo: inquiryRepo, Titles: app.Properties}
	app.Subscribers = &subscribers.Service{Repo: subscriberRepo}
	app.Stats = &stats.Service{
		Properties:   app.Properties,
		Maps:         app.Maps,
		Certificates: app.Certificates,
		Inquiries:    app.Inquiries,
		Subscribers:  app.Subscribers,
	}
}

// pinger avoids handing health a typed-nil *sql.DB.
func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}

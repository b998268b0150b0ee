package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	review "ratehub/contexts/community-feedback/review-service"
	reviewpostgres "ratehub/contexts/community-feedback/review-service/adapters/postgres"
	catalog "ratehub/contexts/content-catalog/catalog-service"
	catalogpostgres "ratehub/contexts/content-catalog/catalog-service/adapters/postgres"
	catalogports "ratehub/contexts/content-catalog/catalog-service/ports"
	authorization "ratehub/contexts/identity-access/authorization-service"
	identity "ratehub/contexts/identity-access/identity-service"
	eventsadapter "ratehub/contexts/identity-access/identity-service/adapters/events"
	jwtadapter "ratehub/contexts/identity-access/identity-service/adapters/jwt"
	identitypostgres "ratehub/contexts/identity-access/identity-service/adapters/postgres"
	identityservices "ratehub/contexts/identity-access/identity-service/domain/services"
	"ratehub/internal/platform/config"
	"ratehub/internal/platform/db"
	"ratehub/internal/platform/httpserver"
	"ratehub/internal/platform/mailer"
	"ratehub/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server       *httpserver.Server
	postgres     *db.Postgres
	bus          *messaging.Bus
	mail         *mailer.Mailer
	dispatchMail bool
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)

	identityRepo := identitypostgres.NewRepository(pg.DB, logger)
	identityModule := identity.NewModule(identity.Dependencies{
		Repository: identityRepo,
		Notifier: eventsadapter.Notifier{
			Publisher: bus,
			Source:    cfg.ServiceName,
		},
		Tokens:      jwtadapter.NewIssuer(cfg.AuthSecret, cfg.TokenTTL),
		Codes:       identityservices.NewCodeEngine(cfg.AuthSecret),
		Clock:       identitypostgres.SystemClock{},
		IDGenerator: identitypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	authorizationModule := authorization.NewModule(authorization.Dependencies{
		Logger: logger,
	})

	reviewRepo := reviewpostgres.NewRepository(pg.DB, logger)
	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)

	reviewModule := review.NewModule(review.Dependencies{
		Reviews:     reviewRepo,
		Comments:    reviewRepo.CommentView(),
		Titles:      titleChecker{titles: catalogRepo.TitleView()},
		Clock:       identitypostgres.SystemClock{},
		IDGenerator: identitypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	catalogModule := catalog.NewModule(catalog.Dependencies{
		Categories:  catalogRepo,
		Genres:      catalogRepo.GenreView(),
		Titles:      catalogRepo.TitleView(),
		Ratings:     reviewModule.Service,
		Clock:       identitypostgres.SystemClock{},
		IDGenerator: identitypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	app := &APIApp{
		server: httpserver.New(
			identityModule,
			authorizationModule,
			catalogModule,
			reviewModule,
			logger,
			normalizeAddr(cfg.HTTPPort),
		),
		postgres:     pg,
		bus:          bus,
		dispatchMail: cfg.EnableMailDispatch,
		logger:       logger,
	}

	if cfg.EnableMailDispatch {
		smtpCfg, err := mailer.LoadSMTPConfig()
		if err != nil {
			return nil, err
		}
		app.mail = mailer.New(smtpCfg, logger)
	}
	return app, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.dispatchMail && a.mail != nil {
		if err := a.mail.StartCodeDispatcher(ctx, a.bus, eventsadapter.TopicCodeIssued); err != nil {
			return err
		}
	}

	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"mail_dispatch", a.dispatchMail,
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// titleChecker bridges the review module's title-existence port onto the
// catalog's title repository.
type titleChecker struct {
	titles catalogports.TitleRepository
}

func (t titleChecker) TitleExists(ctx context.Context, titleID string) error {
	_, err := t.titles.Get(ctx, titleID)
	return err
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

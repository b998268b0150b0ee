package identity

import (
	"log/slog"
	"time"

	httpadapter "ratehub/contexts/identity-access/identity-service/adapters/http"
	jwtadapter "ratehub/contexts/identity-access/identity-service/adapters/jwt"
	"ratehub/contexts/identity-access/identity-service/adapters/memory"
	"ratehub/contexts/identity-access/identity-service/application"
	"ratehub/contexts/identity-access/identity-service/domain/services"
	"ratehub/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Notifier    ports.Notifier
	Tokens      ports.TokenIssuer
	Codes       services.CodeEngine
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Notifier:    deps.Notifier,
		Tokens:      deps.Tokens,
		Codes:       deps.Codes,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters; the store doubles as the notifier so issued codes are readable.
func NewInMemoryModule(secret string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Notifier:    store,
		Tokens:      jwtadapter.NewIssuer(secret, 24*time.Hour),
		Codes:       services.NewCodeEngine(secret),
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

// Package review manages scored reviews on catalog titles and the comment
// threads under them. It also feeds the catalog's aggregate title rating.
package review

import (
	"log/slog"

	httpadapter "ratehub/contexts/community-feedback/review-service/adapters/http"
	"ratehub/contexts/community-feedback/review-service/adapters/memory"
	"ratehub/contexts/community-feedback/review-service/application"
	"ratehub/contexts/community-feedback/review-service/ports"
)

// Module is the review-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Reviews     ports.ReviewRepository
	Comments    ports.CommentRepository
	Titles      ports.TitleChecker
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Reviews:     deps.Reviews,
		Comments:    deps.Comments,
		Titles:      deps.Titles,
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
// adapters.
func NewInMemoryModule(titles ports.TitleChecker, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Reviews:     store,
		Comments:    store.CommentView(),
		Titles:      titles,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

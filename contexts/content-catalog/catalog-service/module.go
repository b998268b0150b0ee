// Package catalog manages the reviewable works directory: categories, genres,
// and titles, with titles projected alongside their aggregate review rating.
package catalog

import (
	"log/slog"

	httpadapter "ratehub/contexts/content-catalog/catalog-service/adapters/http"
	"ratehub/contexts/content-catalog/catalog-service/adapters/memory"
	"ratehub/contexts/content-catalog/catalog-service/application"
	"ratehub/contexts/content-catalog/catalog-service/ports"
)

// Module is the catalog-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
// Ratings is optional; without it titles report a null rating.
type Dependencies struct {
	Categories  ports.CategoryRepository
	Genres      ports.GenreRepository
	Titles      ports.TitleRepository
	Ratings     ports.RatingSource
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Categories:  deps.Categories,
		Genres:      deps.Genres,
		Titles:      deps.Titles,
		Ratings:     deps.Ratings,
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
func NewInMemoryModule(ratings ports.RatingSource, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Categories:  store,
		Genres:      store.GenreView(),
		Titles:      store.TitleView(),
		Ratings:     ratings,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

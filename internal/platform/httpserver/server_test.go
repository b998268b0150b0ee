package httpserver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	review "ratehub/contexts/community-feedback/review-service"
	catalog "ratehub/contexts/content-catalog/catalog-service"
	catalogmemory "ratehub/contexts/content-catalog/catalog-service/adapters/memory"
	catalogapp "ratehub/contexts/content-catalog/catalog-service/application"
	authorization "ratehub/contexts/identity-access/authorization-service"
	identity "ratehub/contexts/identity-access/identity-service"
	identityapp "ratehub/contexts/identity-access/identity-service/application"
)

// memoryTitleChecker bridges the review module's title-existence port onto the
// in-memory catalog store, mirroring the bootstrap wiring.
type memoryTitleChecker struct {
	titles catalogmemory.TitleStore
}

func (m memoryTitleChecker) TitleExists(ctx context.Context, titleID string) error {
	_, err := m.titles.Get(ctx, titleID)
	return err
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	identityModule := identity.NewInMemoryModule("test-secret", logger)
	authorizationModule := authorization.NewModule(authorization.Dependencies{Logger: logger})

	catalogStore := catalogmemory.NewStore()
	reviewModule := review.NewInMemoryModule(memoryTitleChecker{titles: catalogStore.TitleView()}, logger)
	catalogModule := catalog.NewModule(catalog.Dependencies{
		Categories:  catalogStore,
		Genres:      catalogStore.GenreView(),
		Titles:      catalogStore.TitleView(),
		Ratings:     reviewModule.Service,
		Clock:       catalogStore,
		IDGenerator: catalogStore,
		Logger:      logger,
	})

	return New(identityModule, authorizationModule, catalogModule, reviewModule, logger, ":0")
}

// bearerFor provisions an identity with the given role and walks the
// signup/token flow against the in-memory modules. Pass "user" for a plain
// account.
func bearerFor(t *testing.T, server *Server, username, role string) string {
	t.Helper()
	ctx := context.Background()
	email := username + "@example.com"

	if role != "" && role != "user" {
		if _, err := server.identity.Service.CreateUser(ctx, identityapp.CreateUserInput{
			Username: username,
			Email:    email,
			Role:     role,
		}); err != nil {
			t.Fatalf("provisioning %s failed: %v", username, err)
		}
	}
	if _, err := server.identity.Service.SignUp(ctx, username, email); err != nil {
		t.Fatalf("signup for %s failed: %v", username, err)
	}
	notification, ok := server.identity.Store.LastNotification()
	if !ok {
		t.Fatalf("no confirmation code recorded for %s", username)
	}
	token, err := server.identity.Service.IssueToken(ctx, username, notification.Code)
	if err != nil {
		t.Fatalf("token exchange for %s failed: %v", username, err)
	}
	return token
}

func seedTitle(t *testing.T, server *Server, name string) string {
	t.Helper()
	view, err := server.catalog.Service.CreateTitle(context.Background(), catalogapp.CreateTitleInput{
		Name: name,
		Year: 2000,
	})
	if err != nil {
		t.Fatalf("seeding title %q failed: %v", name, err)
	}
	return view.Title.ID
}

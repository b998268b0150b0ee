package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	review "ratehub/contexts/community-feedback/review-service"
	catalog "ratehub/contexts/content-catalog/catalog-service"
	authorization "ratehub/contexts/identity-access/authorization-service"
	authzerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "ratehub/contexts/identity-access/authorization-service/transport/http"
	identity "ratehub/contexts/identity-access/identity-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ratehub/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	identity      identity.Module
	authorization authorization.Module
	catalog       catalog.Module
	review        review.Module
}

func New(
	identityModule identity.Module,
	authorizationModule authorization.Module,
	catalogModule catalog.Module,
	reviewModule review.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		identity:      identityModule,
		authorization: authorizationModule,
		catalog:       catalogModule,
		review:        reviewModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignUp)
	s.mux.HandleFunc("POST /api/v1/auth/token", s.handleIssueToken)

	s.mux.HandleFunc("GET /api/v1/users/me", s.handleGetMe)
	s.mux.HandleFunc("PATCH /api/v1/users/me", s.handleUpdateMe)
	s.mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	s.mux.HandleFunc("POST /api/v1/users", s.handleCreateUser)
	s.mux.HandleFunc("GET /api/v1/users/{username}", s.handleGetUser)
	s.mux.HandleFunc("PATCH /api/v1/users/{username}", s.handleUpdateUser)
	s.mux.HandleFunc("DELETE /api/v1/users/{username}", s.handleDeleteUser)

	s.mux.HandleFunc("GET /api/v1/categories", s.handleListCategories)
	s.mux.HandleFunc("POST /api/v1/categories", s.handleCreateCategory)
	s.mux.HandleFunc("DELETE /api/v1/categories/{slug}", s.handleDeleteCategory)
	s.mux.HandleFunc("GET /api/v1/genres", s.handleListGenres)
	s.mux.HandleFunc("POST /api/v1/genres", s.handleCreateGenre)
	s.mux.HandleFunc("DELETE /api/v1/genres/{slug}", s.handleDeleteGenre)
	s.mux.HandleFunc("GET /api/v1/titles", s.handleListTitles)
	s.mux.HandleFunc("POST /api/v1/titles", s.handleCreateTitle)
	s.mux.HandleFunc("GET /api/v1/titles/{title_id}", s.handleGetTitle)
	s.mux.HandleFunc("PATCH /api/v1/titles/{title_id}", s.handleUpdateTitle)
	s.mux.HandleFunc("DELETE /api/v1/titles/{title_id}", s.handleDeleteTitle)

	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews", s.handleListReviews)
	s.mux.HandleFunc("POST /api/v1/titles/{title_id}/reviews", s.handleCreateReview)
	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews/{review_id}", s.handleGetReview)
	s.mux.HandleFunc("PATCH /api/v1/titles/{title_id}/reviews/{review_id}", s.handleUpdateReview)
	s.mux.HandleFunc("DELETE /api/v1/titles/{title_id}/reviews/{review_id}", s.handleDeleteReview)

	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews/{review_id}/comments", s.handleListComments)
	s.mux.HandleFunc("POST /api/v1/titles/{title_id}/reviews/{review_id}/comments", s.handleCreateComment)
	s.mux.HandleFunc("GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", s.handleGetComment)
	s.mux.HandleFunc("PATCH /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", s.handleUpdateComment)
	s.mux.HandleFunc("DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}", s.handleDeleteComment)
}

func writeDenied(w http.ResponseWriter, err error) {
	status := http.StatusForbidden
	code := "forbidden"
	if errors.Is(err, authzerrors.ErrUnauthorized) {
		status = http.StatusUnauthorized
		code = "unauthorized"
	}
	writeJSON(w, status, authzhttp.ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

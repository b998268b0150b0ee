package httpserver

import (
	"net/http"
	"strings"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	identityentities "ratehub/contexts/identity-access/identity-service/domain/entities"
)

// caller is the resolved request principal plus the backing identity record.
// A zero caller is anonymous.
type caller struct {
	user      identityentities.User
	principal authzentities.Principal
}

// resolveCaller turns the Authorization header into a caller. Every failure
// mode (missing header, malformed scheme, bad signature, expired token,
// deleted identity) collapses to anonymous; the policy engine decides what
// anonymous may do per route.
func (s *Server) resolveCaller(r *http.Request) caller {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return caller{}
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return caller{}
	}

	user, err := s.identity.Service.Authenticate(r.Context(), token)
	if err != nil {
		s.logger.Debug("bearer token rejected",
			"event", "http_bearer_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		return caller{}
	}
	return caller{
		user: user,
		principal: authzentities.Principal{
			UserID:        user.ID,
			Role:          authzentities.Role(user.Role),
			Superuser:     user.Superuser,
			Authenticated: true,
		},
	}
}

// authorize runs the policy check and writes the denial response on failure.
func (s *Server) authorize(w http.ResponseWriter, c caller, res authzentities.ResourceClass, act authzentities.Action, ownerID string) bool {
	if err := s.authorization.Authorize(c.principal, res, act, ownerID); err != nil {
		writeDenied(w, err)
		return false
	}
	return true
}

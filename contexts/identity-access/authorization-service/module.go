package authorization

import (
	"log/slog"

	"ratehub/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/authorization-service/domain/errors"
	"ratehub/contexts/identity-access/authorization-service/domain/services"
)

// Module is the policy engine facade exposed to runtime wiring.
type Module struct {
	Logger *slog.Logger
}

// Dependencies captures runtime config required by NewModule.
type Dependencies struct {
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{Logger: deps.Logger}
}

// Decide evaluates the policy table and returns the raw decision.
func (m Module) Decide(p entities.Principal, res entities.ResourceClass, act entities.Action, ownerID string) entities.Decision {
	return services.Decide(p, res, act, ownerID)
}

// Authorize maps a denial to the error taxonomy: anonymous callers get
// ErrUnauthorized, authenticated callers failing a predicate get ErrForbidden.
func (m Module) Authorize(p entities.Principal, res entities.ResourceClass, act entities.Action, ownerID string) error {
	decision := services.Decide(p, res, act, ownerID)
	if decision.Allowed {
		return nil
	}

	if m.Logger != nil {
		m.Logger.Debug("access denied",
			"event", "authorization_denied",
			"module", "identity-access/authorization-service",
			"layer", "domain",
			"resource", string(res),
			"action", string(act),
			"rule", decision.Rule,
			"authenticated", p.Authenticated,
		)
	}
	if !p.Authenticated {
		return domainerrors.ErrUnauthorized
	}
	return domainerrors.ErrForbidden
}

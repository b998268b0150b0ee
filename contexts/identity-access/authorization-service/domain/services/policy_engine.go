package services

import "ratehub/contexts/identity-access/authorization-service/domain/entities"

// Rank maps a stored role to its position in the hierarchy. Unrecognized
// values rank below user so corrupted data degrades to "no privilege".
func Rank(role entities.Role) int {
	switch role {
	case entities.RoleUser:
		return 0
	case entities.RoleModerator:
		return 1
	case entities.RoleAdmin:
		return 2
	default:
		return -1
	}
}

// Satisfies reports whether actual meets or exceeds required.
func Satisfies(actual, required entities.Role) bool {
	return Rank(actual) >= Rank(required)
}

func isAdmin(p entities.Principal) bool {
	if p.Superuser {
		return true
	}
	return p.Authenticated && Satisfies(p.Role, entities.RoleAdmin)
}

// Decide evaluates the policy table for one (principal, resource, action)
// triple. ownerID is the author recorded on the stored target object; pass ""
// when the operation has no object-level check (lists, creates).
//
// Evaluation order: anonymous-read rows first, then the authentication
// requirement, then the role/ownership predicate.
func Decide(p entities.Principal, res entities.ResourceClass, act entities.Action, ownerID string) entities.Decision {
	switch res {
	case entities.ResourceCategory, entities.ResourceGenre, entities.ResourceTitle:
		if act == entities.ActionRead {
			return entities.Decision{Allowed: true, Rule: "anonymous_read"}
		}
		if !p.Authenticated {
			return entities.Decision{Rule: "authentication_required"}
		}
		if isAdmin(p) {
			return entities.Decision{Allowed: true, Rule: "admin_write"}
		}
		return entities.Decision{Rule: "admin_required"}

	case entities.ResourceUserAdmin:
		if !p.Authenticated {
			return entities.Decision{Rule: "authentication_required"}
		}
		if isAdmin(p) {
			return entities.Decision{Allowed: true, Rule: "admin_only"}
		}
		return entities.Decision{Rule: "admin_required"}

	case entities.ResourceProfile:
		if !p.Authenticated {
			return entities.Decision{Rule: "authentication_required"}
		}
		return entities.Decision{Allowed: true, Rule: "authenticated_self"}

	case entities.ResourceReview, entities.ResourceComment:
		if act == entities.ActionRead {
			return entities.Decision{Allowed: true, Rule: "anonymous_read"}
		}
		if !p.Authenticated {
			return entities.Decision{Rule: "authentication_required"}
		}
		if ownerID == "" {
			return entities.Decision{Allowed: true, Rule: "authenticated_write"}
		}
		if p.UserID == ownerID {
			return entities.Decision{Allowed: true, Rule: "author_match"}
		}
		// Authorship is strict: no role or superuser escape on someone
		// else's review or comment.
		return entities.Decision{Rule: "author_required"}

	default:
		return entities.Decision{Rule: "unknown_resource"}
	}
}

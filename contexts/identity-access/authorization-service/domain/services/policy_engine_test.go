package services

import (
	"testing"

	"ratehub/contexts/identity-access/authorization-service/domain/entities"
)

var (
	anonymous = entities.Principal{}
	plainUser = entities.Principal{UserID: "u1", Role: entities.RoleUser, Authenticated: true}
	moderator = entities.Principal{UserID: "m1", Role: entities.RoleModerator, Authenticated: true}
	admin     = entities.Principal{UserID: "a1", Role: entities.RoleAdmin, Authenticated: true}
	superuser = entities.Principal{UserID: "s1", Role: entities.RoleUser, Superuser: true, Authenticated: true}
)

func TestRankOrdering(t *testing.T) {
	if !(Rank(entities.RoleUser) < Rank(entities.RoleModerator) && Rank(entities.RoleModerator) < Rank(entities.RoleAdmin)) {
		t.Fatal("expected user < moderator < admin")
	}
	if Rank(entities.Role("owner")) >= Rank(entities.RoleUser) {
		t.Fatal("expected unknown role to rank below user")
	}
}

func TestSatisfies(t *testing.T) {
	if !Satisfies(entities.RoleAdmin, entities.RoleModerator) {
		t.Fatal("admin should satisfy moderator")
	}
	if Satisfies(entities.RoleUser, entities.RoleModerator) {
		t.Fatal("user should not satisfy moderator")
	}
	if !Satisfies(entities.RoleModerator, entities.RoleModerator) {
		t.Fatal("moderator should satisfy moderator")
	}
}

func TestDecideTable(t *testing.T) {
	cases := []struct {
		name    string
		p       entities.Principal
		res     entities.ResourceClass
		act     entities.Action
		ownerID string
		allowed bool
		rule    string
	}{
		{"anonymous reads catalog", anonymous, entities.ResourceTitle, entities.ActionRead, "", true, "anonymous_read"},
		{"anonymous cannot write catalog", anonymous, entities.ResourceCategory, entities.ActionWrite, "", false, "authentication_required"},
		{"user cannot write catalog", plainUser, entities.ResourceGenre, entities.ActionWrite, "", false, "admin_required"},
		{"moderator cannot write catalog", moderator, entities.ResourceTitle, entities.ActionWrite, "", false, "admin_required"},
		{"admin writes catalog", admin, entities.ResourceTitle, entities.ActionWrite, "", true, "admin_write"},
		{"superuser writes catalog regardless of role", superuser, entities.ResourceTitle, entities.ActionWrite, "", true, "admin_write"},

		{"anonymous cannot list users", anonymous, entities.ResourceUserAdmin, entities.ActionRead, "", false, "authentication_required"},
		{"user cannot list users", plainUser, entities.ResourceUserAdmin, entities.ActionRead, "", false, "admin_required"},
		{"moderator cannot manage users", moderator, entities.ResourceUserAdmin, entities.ActionWrite, "", false, "admin_required"},
		{"admin manages users", admin, entities.ResourceUserAdmin, entities.ActionWrite, "", true, "admin_only"},
		{"superuser manages users", superuser, entities.ResourceUserAdmin, entities.ActionWrite, "", true, "admin_only"},

		{"anonymous has no profile", anonymous, entities.ResourceProfile, entities.ActionRead, "", false, "authentication_required"},
		{"user edits own profile", plainUser, entities.ResourceProfile, entities.ActionWrite, "u1", true, "authenticated_self"},

		{"anonymous reads reviews", anonymous, entities.ResourceReview, entities.ActionRead, "", true, "anonymous_read"},
		{"anonymous cannot post review", anonymous, entities.ResourceReview, entities.ActionWrite, "", false, "authentication_required"},
		{"user posts review", plainUser, entities.ResourceReview, entities.ActionWrite, "u1", true, "author_match"},
		{"author edits own comment", plainUser, entities.ResourceComment, entities.ActionWrite, "u1", true, "author_match"},
		{"user cannot edit another's review", plainUser, entities.ResourceReview, entities.ActionWrite, "other", false, "author_required"},
		{"moderator cannot edit another's review", moderator, entities.ResourceReview, entities.ActionWrite, "other", false, "author_required"},
		{"admin cannot edit another's comment", admin, entities.ResourceComment, entities.ActionWrite, "other", false, "author_required"},
		{"superuser cannot edit another's review", superuser, entities.ResourceReview, entities.ActionWrite, "other", false, "author_required"},

		{"unknown resource denied", admin, entities.ResourceClass("billing"), entities.ActionWrite, "", false, "unknown_resource"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Decide(tc.p, tc.res, tc.act, tc.ownerID)
			if decision.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%v, got %v (rule %s)", tc.allowed, decision.Allowed, decision.Rule)
			}
			if decision.Rule != tc.rule {
				t.Fatalf("expected rule %s, got %s", tc.rule, decision.Rule)
			}
		})
	}
}

func TestNonAuthorWriteIsDeniedRegardlessOfRole(t *testing.T) {
	for _, p := range []entities.Principal{plainUser, moderator, admin, superuser} {
		for _, res := range []entities.ResourceClass{entities.ResourceReview, entities.ResourceComment} {
			decision := Decide(p, res, entities.ActionWrite, "someone-else")
			if decision.Allowed {
				t.Fatalf("role %s allowed to modify another author's %s (rule %s)", p.Role, res, decision.Rule)
			}
			if decision.Rule != "author_required" {
				t.Fatalf("expected author_required for role %s on %s, got %s", p.Role, res, decision.Rule)
			}
		}
	}
}

func TestUnknownRoleGetsNoPrivilege(t *testing.T) {
	corrupted := entities.Principal{UserID: "x1", Role: entities.Role("owner"), Authenticated: true}
	decision := Decide(corrupted, entities.ResourceTitle, entities.ActionWrite, "")
	if decision.Allowed {
		t.Fatal("expected corrupted role to be denied admin writes")
	}
}

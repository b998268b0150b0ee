package services

import (
	"testing"
	"time"

	"ratehub/contexts/identity-access/identity-service/domain/entities"
)

func fixedUser() entities.User {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return entities.User{
		ID:          "user_1",
		Username:    "alice",
		Email:       "alice@example.com",
		Role:        entities.RoleUser,
		LastLoginAt: base,
		UpdatedAt:   base,
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	engine := NewCodeEngine("secret")
	user := fixedUser()

	first := engine.Derive(user)
	second := engine.Derive(user)
	if first != second {
		t.Fatalf("expected identical codes, got %s vs %s", first, second)
	}
	if len(first) != 32 {
		t.Fatalf("expected 32-char code, got %d chars", len(first))
	}
}

func TestVerifyAcceptsDerivedCode(t *testing.T) {
	engine := NewCodeEngine("secret")
	user := fixedUser()

	if !engine.Verify(user, engine.Derive(user)) {
		t.Fatal("expected derived code to verify")
	}
}

func TestVerifyRejectsTamperedCode(t *testing.T) {
	engine := NewCodeEngine("secret")
	user := fixedUser()

	code := engine.Derive(user)
	tampered := "0" + code[1:]
	if tampered == code {
		tampered = "1" + code[1:]
	}
	if engine.Verify(user, tampered) {
		t.Fatal("expected tampered code to fail")
	}
	if engine.Verify(user, "") {
		t.Fatal("expected empty code to fail")
	}
	if engine.Verify(user, "not-a-code") {
		t.Fatal("expected garbage code to fail")
	}
}

func TestDeriveChangesWithTrackedState(t *testing.T) {
	engine := NewCodeEngine("secret")
	user := fixedUser()
	original := engine.Derive(user)

	loggedIn := user
	loggedIn.LastLoginAt = user.LastLoginAt.Add(time.Minute)
	if engine.Derive(loggedIn) == original {
		t.Fatal("expected last-login change to rotate the code")
	}

	updated := user
	updated.UpdatedAt = user.UpdatedAt.Add(time.Minute)
	if engine.Derive(updated) == original {
		t.Fatal("expected profile update to rotate the code")
	}

	promoted := user
	promoted.Role = entities.RoleAdmin
	if engine.Derive(promoted) == original {
		t.Fatal("expected role change to rotate the code")
	}
}

func TestDeriveDependsOnSecret(t *testing.T) {
	user := fixedUser()
	if NewCodeEngine("secret-a").Derive(user) == NewCodeEngine("secret-b").Derive(user) {
		t.Fatal("expected different secrets to yield different codes")
	}
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	jwtadapter "ratehub/contexts/identity-access/identity-service/adapters/jwt"
	"ratehub/contexts/identity-access/identity-service/adapters/memory"
	domainerrors "ratehub/contexts/identity-access/identity-service/domain/errors"
	"ratehub/contexts/identity-access/identity-service/domain/services"
	"ratehub/contexts/identity-access/identity-service/ports"
)

func newTestService() (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Repo:        store,
		Notifier:    store,
		Tokens:      jwtadapter.NewIssuer("test-secret", time.Hour),
		Codes:       services.NewCodeEngine("test-secret"),
		Clock:       store,
		IDGenerator: store,
	}
	return service, store
}

func TestSignUpIssuesCode(t *testing.T) {
	service, store := newTestService()

	user, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("expected default role user, got %s", user.Role)
	}

	notification, ok := store.LastNotification()
	if !ok {
		t.Fatal("expected a code notification")
	}
	if notification.Email != "alice@example.com" {
		t.Fatalf("expected code sent to alice@example.com, got %s", notification.Email)
	}
	if len(notification.Code) != 32 {
		t.Fatalf("expected 32-char code, got %d chars", len(notification.Code))
	}
}

func TestSignUpIsIdempotentForSamePair(t *testing.T) {
	service, store := newTestService()

	first, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	firstNotification, _ := store.LastNotification()

	second, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("repeat signup failed: %v", err)
	}
	secondNotification, _ := store.LastNotification()

	if first.ID != second.ID {
		t.Fatalf("expected same identity, got %s vs %s", first.ID, second.ID)
	}
	if firstNotification.Code != secondNotification.Code {
		t.Fatal("expected repeat signup to re-send the same still-valid code")
	}
}

func TestSignUpRejectsPairCollisions(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.SignUp(context.Background(), "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	var validation *domainerrors.ValidationError
	if _, err := service.SignUp(context.Background(), "alice", "other@example.com"); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for taken username, got %v", err)
	}
	if _, err := service.SignUp(context.Background(), "bob", "alice@example.com"); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for taken email, got %v", err)
	}
}

func TestSignUpValidatesInput(t *testing.T) {
	service, _ := newTestService()

	cases := []struct {
		name     string
		username string
		email    string
		field    string
	}{
		{"missing username", "", "a@example.com", "username"},
		{"reserved username", "me", "a@example.com", "username"},
		{"bad username chars", "a!ice", "a@example.com", "username"},
		{"missing email", "alice", "", "email"},
		{"bad email", "alice", "not-an-email", "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.SignUp(context.Background(), tc.username, tc.email)
			var validation *domainerrors.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := validation.Fields[tc.field]; !ok {
				t.Fatalf("expected error on field %s, got %v", tc.field, validation.Fields)
			}
		})
	}
}

func TestIssueTokenWithValidCode(t *testing.T) {
	service, store := newTestService()

	if _, err := service.SignUp(context.Background(), "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	notification, _ := store.LastNotification()

	token, err := service.IssueToken(context.Background(), "alice", notification.Code)
	if err != nil {
		t.Fatalf("token exchange failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	user, err := service.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected alice, got %s", user.Username)
	}
}

func TestIssueTokenUnknownUsername(t *testing.T) {
	service, _ := newTestService()

	_, err := service.IssueToken(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestIssueTokenWrongCode(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.SignUp(context.Background(), "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := service.IssueToken(context.Background(), "alice", "00000000000000000000000000000000")
	if !errors.Is(err, domainerrors.ErrInvalidConfirmationCode) {
		t.Fatalf("expected invalid confirmation code, got %v", err)
	}
}

func TestStateChangeInvalidatesIssuedCode(t *testing.T) {
	service, store := newTestService()

	user, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	notification, _ := store.LastNotification()

	if _, err := service.IssueToken(context.Background(), "alice", notification.Code); err != nil {
		t.Fatalf("first exchange failed: %v", err)
	}

	// A tracked-state bump (here: recording a login) rotates the fingerprint.
	loginAt := time.Now().UTC()
	if _, err := store.Update(context.Background(), user.Username, ports.UserUpdate{LastLoginAt: &loginAt}, time.Now()); err != nil {
		t.Fatalf("state bump failed: %v", err)
	}

	_, err = service.IssueToken(context.Background(), "alice", notification.Code)
	if !errors.Is(err, domainerrors.ErrInvalidConfirmationCode) {
		t.Fatalf("expected stale code to be rejected, got %v", err)
	}
}

func TestUpdateProfilePinsRole(t *testing.T) {
	service, _ := newTestService()

	user, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	role := "admin"
	bio := "hello"
	updated, err := service.UpdateProfile(context.Background(), user.ID, UpdateUserInput{
		Bio:  &bio,
		Role: &role,
	})
	if err != nil {
		t.Fatalf("profile update failed: %v", err)
	}
	if updated.Role != "user" {
		t.Fatalf("expected role pinned to user, got %s", updated.Role)
	}
	if updated.Bio != "hello" {
		t.Fatalf("expected bio applied, got %q", updated.Bio)
	}
}

func TestAdminUpdateCanChangeRole(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.SignUp(context.Background(), "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	role := "moderator"
	updated, err := service.UpdateUser(context.Background(), "alice", UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Role != "moderator" {
		t.Fatalf("expected moderator, got %s", updated.Role)
	}
}

func TestCreateUserRejectsInvalidRole(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "bob",
		Email:    "bob@example.com",
		Role:     "owner",
	})
	var validation *domainerrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.SignUp(context.Background(), "alice", "alice@example.com"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := service.DeleteUser(context.Background(), "alice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetUser(context.Background(), "alice"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
}

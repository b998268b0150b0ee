package ports

import (
	"context"
	"time"

	"ratehub/contexts/identity-access/identity-service/domain/entities"
)

// ListFilter defines read-side filtering for the user-admin list.
type ListFilter struct {
	Search string
}

// UserUpdate carries partial field changes; nil pointers leave the stored
// value untouched.
type UserUpdate struct {
	Email       *string
	FirstName   *string
	LastName    *string
	Bio         *string
	Role        *string
	LastLoginAt *time.Time
}

// Repository owns identity persistence. Implementations must enforce unique
// username and email at the storage layer.
type Repository interface {
	// GetOrCreate atomically reuses the identity matching the exact
	// (username, email) pair or creates one from defaults. A collision of
	// username or email with a different pair fails with ErrUsernameTaken or
	// ErrEmailTaken.
	GetOrCreate(ctx context.Context, username, email string, defaults entities.User) (entities.User, bool, error)
	GetByUsername(ctx context.Context, username string) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	List(ctx context.Context, filter ListFilter) ([]entities.User, error)
	Create(ctx context.Context, user entities.User) error
	Update(ctx context.Context, username string, update UserUpdate, now time.Time) (entities.User, error)
	Delete(ctx context.Context, username string) error
}

// CodeNotification is handed to the notifier when a confirmation code is
// issued. Delivery is fire-and-forget: the registration flow never fails on
// notifier errors.
type CodeNotification struct {
	Username string
	Email    string
	Code     string
}

type Notifier interface {
	NotifyCodeIssued(ctx context.Context, notification CodeNotification) error
}

// TokenIssuer mints and decodes self-contained bearer credentials scoped to a
// user's primary key. Decode failures (bad signature, expiry, garbage) are
// all equivalent to "anonymous" for the caller.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string, now time.Time) (string, error)
	Decode(ctx context.Context, token string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

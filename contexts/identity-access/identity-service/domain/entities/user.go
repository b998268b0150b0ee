package entities

import "time"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// IsValidRole reports whether value is one of the stored role strings.
func IsValidRole(value string) bool {
	switch value {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the registered identity record. LastLoginAt and UpdatedAt feed the
// confirmation-code state fingerprint: bumping either invalidates every
// previously derived code for this user.
type User struct {
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        string
	Superuser   bool
	LastLoginAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

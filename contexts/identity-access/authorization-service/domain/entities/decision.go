package entities

// Role is the closed set of stored user roles, ordered user < moderator < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Principal is the resolved caller of a request. A zero Principal is anonymous.
type Principal struct {
	UserID        string
	Role          Role
	Superuser     bool
	Authenticated bool
}

// ResourceClass selects a row of the policy table.
type ResourceClass string

const (
	ResourceCategory  ResourceClass = "category"
	ResourceGenre     ResourceClass = "genre"
	ResourceTitle     ResourceClass = "title"
	ResourceUserAdmin ResourceClass = "user_admin"
	ResourceProfile   ResourceClass = "own_profile"
	ResourceReview    ResourceClass = "review"
	ResourceComment   ResourceClass = "comment"
)

// Action is the safety classification of the attempted operation.
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Decision is the policy output: the verdict plus the rule that produced it.
type Decision struct {
	Allowed bool
	Rule    string
}

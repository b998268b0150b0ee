package application

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"regexp"
	"strings"
	"time"

	"ratehub/contexts/identity-access/identity-service/domain/entities"
	domainerrors "ratehub/contexts/identity-access/identity-service/domain/errors"
	"ratehub/contexts/identity-access/identity-service/domain/services"
	"ratehub/contexts/identity-access/identity-service/ports"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	Repo        ports.Repository
	Notifier    ports.Notifier
	Tokens      ports.TokenIssuer
	Codes       services.CodeEngine
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type signupInput struct {
	Username string `json:"username" validate:"required,max=150,slug,ne=me"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// CreateUserInput is the admin-facing creation payload.
type CreateUserInput struct {
	Username  string `json:"username" validate:"required,max=150,slug,ne=me"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateUserInput carries partial field changes; nil pointers are untouched.
type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// SignUp is the idempotent registration flow: get-or-create the identity,
// derive the confirmation code, and hand it to the notifier. A resend with
// the exact same (username, email) pair reuses the identity and re-derives
// the same still-valid code.
func (s Service) SignUp(ctx context.Context, username, email string) (entities.User, error) {
	input := signupInput{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
	}
	if err := validate.Struct(input); err != nil {
		return entities.User{}, asValidationError(err)
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := s.now()
	defaults := entities.User{
		ID:        id,
		Username:  input.Username,
		Email:     input.Email,
		Role:      entities.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	user, created, err := s.Repo.GetOrCreate(ctx, input.Username, input.Email, defaults)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrUsernameTaken):
			return entities.User{}, domainerrors.NewValidationError("username", "already bound to another identity")
		case errors.Is(err, domainerrors.ErrEmailTaken):
			return entities.User{}, domainerrors.NewValidationError("email", "already bound to another identity")
		}
		return entities.User{}, err
	}

	code := s.Codes.Derive(user)
	// Fire-and-forget: signup must not fail because the side channel is down;
	// resubmitting identical registration data yields a fresh delivery.
	if err := s.Notifier.NotifyCodeIssued(ctx, ports.CodeNotification{
		Username: user.Username,
		Email:    user.Email,
		Code:     code,
	}); err != nil {
		s.logger().Warn("confirmation code notification failed",
			"event", "identity_code_notification_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"username", user.Username,
			"error", err.Error(),
		)
	}

	s.logger().Info("signup processed",
		"event", "identity_signup_processed",
		"module", "identity-access/identity-service",
		"layer", "application",
		"username", user.Username,
		"created", created,
	)
	return user, nil
}

// IssueToken verifies the submitted confirmation code against the identity's
// current state and, on match, issues a bearer credential. Nothing is mutated
// on success or failure; the flow is safely retryable.
func (s Service) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	// Wrong code and malformed code are deliberately indistinguishable.
	if !s.Codes.Verify(user, strings.TrimSpace(confirmationCode)) {
		return "", domainerrors.ErrInvalidConfirmationCode
	}
	return s.Tokens.Issue(ctx, user.ID, s.now())
}

// Authenticate resolves a presented bearer credential to its identity. Any
// decode failure is returned as-is; the caller treats it as anonymous.
func (s Service) Authenticate(ctx context.Context, token string) (entities.User, error) {
	userID, err := s.Tokens.Decode(ctx, token)
	if err != nil {
		return entities.User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s Service) ListUsers(ctx context.Context, filter ports.ListFilter) ([]entities.User, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.Repo.List(ctx, filter)
}

func (s Service) GetUser(ctx context.Context, username string) (entities.User, error) {
	return s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s Service) CreateUser(ctx context.Context, input CreateUserInput) (entities.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validate.Struct(input); err != nil {
		return entities.User{}, asValidationError(err)
	}
	role := input.Role
	if role == "" {
		role = entities.RoleUser
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := s.now()
	user := entities.User{
		ID:        id,
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrUsernameTaken):
			return entities.User{}, domainerrors.NewValidationError("username", "already bound to another identity")
		case errors.Is(err, domainerrors.ErrEmailTaken):
			return entities.User{}, domainerrors.NewValidationError("email", "already bound to another identity")
		}
		return entities.User{}, err
	}
	return user, nil
}

func (s Service) UpdateUser(ctx context.Context, username string, input UpdateUserInput) (entities.User, error) {
	if err := validate.Struct(input); err != nil {
		return entities.User{}, asValidationError(err)
	}
	return s.Repo.Update(ctx, strings.TrimSpace(username), ports.UserUpdate{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}, s.now())
}

func (s Service) DeleteUser(ctx context.Context, username string) error {
	return s.Repo.Delete(ctx, strings.TrimSpace(username))
}

func (s Service) GetProfile(ctx context.Context, userID string) (entities.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile applies a self-edit with the role field silently pinned to
// its stored value, whatever the payload says.
func (s Service) UpdateProfile(ctx context.Context, userID string, input UpdateUserInput) (entities.User, error) {
	input.Role = nil
	if err := validate.Struct(input); err != nil {
		return entities.User{}, asValidationError(err)
	}
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return entities.User{}, err
	}
	return s.Repo.Update(ctx, user.Username, ports.UserUpdate{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}, s.now())
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func asValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &domainerrors.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "slug":
		return "only letters, digits, '-', '_' and '.' are allowed"
	case "ne":
		return "this value is reserved"
	case "max":
		return "value is too long"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "invalid value"
	}
}

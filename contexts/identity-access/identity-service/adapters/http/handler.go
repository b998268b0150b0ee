package httpadapter

import (
	"context"
	"log/slog"

	"ratehub/contexts/identity-access/identity-service/application"
	"ratehub/contexts/identity-access/identity-service/domain/entities"
	"ratehub/contexts/identity-access/identity-service/ports"
	httptransport "ratehub/contexts/identity-access/identity-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SignUpHandler(ctx context.Context, req httptransport.SignUpRequest) (httptransport.SignUpResponse, error) {
	user, err := h.Service.SignUp(ctx, req.Username, req.Email)
	if err != nil {
		return httptransport.SignUpResponse{}, err
	}
	return httptransport.SignUpResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (h Handler) TokenHandler(ctx context.Context, req httptransport.TokenRequest) (httptransport.TokenResponse, error) {
	token, err := h.Service.IssueToken(ctx, req.Username, req.ConfirmationCode)
	if err != nil {
		return httptransport.TokenResponse{}, err
	}
	return httptransport.TokenResponse{Token: token}, nil
}

func (h Handler) MeHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.GetProfile(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponseFromEntity(user), nil
}

func (h Handler) UpdateMeHandler(ctx context.Context, userID string, req httptransport.UpdateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.UpdateProfile(ctx, userID, application.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponseFromEntity(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context, search string) ([]httptransport.UserResponse, error) {
	users, err := h.Service.ListUsers(ctx, ports.ListFilter{Search: search})
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, userResponseFromEntity(user))
	}
	return items, nil
}

func (h Handler) CreateUserHandler(ctx context.Context, req httptransport.CreateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.CreateUser(ctx, application.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponseFromEntity(user), nil
}

func (h Handler) GetUserHandler(ctx context.Context, username string) (httptransport.UserResponse, error) {
	user, err := h.Service.GetUser(ctx, username)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponseFromEntity(user), nil
}

func (h Handler) UpdateUserHandler(ctx context.Context, username string, req httptransport.UpdateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.UpdateUser(ctx, username, application.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponseFromEntity(user), nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, username string) error {
	return h.Service.DeleteUser(ctx, username)
}

func userResponseFromEntity(user entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}

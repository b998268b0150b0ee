package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	identityerrors "ratehub/contexts/identity-access/identity-service/domain/errors"
	identityhttp "ratehub/contexts/identity-access/identity-service/transport/http"
)

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{Code: code, Message: message})
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	var validation *identityerrors.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, identityhttp.ErrorResponse{
			Code:    "validation_error",
			Message: validation.Error(),
			Fields:  validation.Fields,
		})
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, identityerrors.ErrInvalidConfirmationCode):
		writeIdentityError(w, http.StatusBadRequest, "invalid_confirmation_code", err.Error())
	case errors.Is(err, identityerrors.ErrUsernameTaken),
		errors.Is(err, identityerrors.ErrEmailTaken):
		writeIdentityError(w, http.StatusBadRequest, "identity_taken", err.Error())
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.identity.Handler.SignUpHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.identity.Handler.TokenHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

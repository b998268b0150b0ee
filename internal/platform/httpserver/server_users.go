package httpserver

import (
	"encoding/json"
	"net/http"

	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
	identityhttp "ratehub/contexts/identity-access/identity-service/transport/http"
)

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceProfile, authzentities.ActionRead, c.principal.UserID) {
		return
	}

	resp, err := s.identity.Handler.MeHandler(r.Context(), c.user.ID)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceProfile, authzentities.ActionWrite, c.principal.UserID) {
		return
	}

	var req identityhttp.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.identity.Handler.UpdateMeHandler(r.Context(), c.user.ID, req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceUserAdmin, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.identity.Handler.ListUsersHandler(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceUserAdmin, authzentities.ActionWrite, "") {
		return
	}

	var req identityhttp.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.identity.Handler.CreateUserHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceUserAdmin, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.identity.Handler.GetUserHandler(r.Context(), r.PathValue("username"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceUserAdmin, authzentities.ActionWrite, "") {
		return
	}

	var req identityhttp.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.identity.Handler.UpdateUserHandler(r.Context(), r.PathValue("username"), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceUserAdmin, authzentities.ActionWrite, "") {
		return
	}

	if err := s.identity.Handler.DeleteUserHandler(r.Context(), r.PathValue("username")); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	catalogerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	catalogports "ratehub/contexts/content-catalog/catalog-service/ports"
	cataloghttp "ratehub/contexts/content-catalog/catalog-service/transport/http"
	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
)

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{Code: code, Message: message})
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrCategoryNotFound),
		errors.Is(err, catalogerrors.ErrGenreNotFound),
		errors.Is(err, catalogerrors.ErrTitleNotFound):
		writeCatalogError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrSlugTaken):
		writeCatalogError(w, http.StatusBadRequest, "slug_taken", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidSlug),
		errors.Is(err, catalogerrors.ErrNameRequired),
		errors.Is(err, catalogerrors.ErrInvalidYear),
		errors.Is(err, catalogerrors.ErrUnknownCategory),
		errors.Is(err, catalogerrors.ErrUnknownGenre):
		writeCatalogError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceCategory, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.catalog.Handler.ListCategoriesHandler(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceCategory, authzentities.ActionWrite, "") {
		return
	}

	var req cataloghttp.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.CreateCategoryHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceCategory, authzentities.ActionWrite, "") {
		return
	}

	if err := s.catalog.Handler.DeleteCategoryHandler(r.Context(), r.PathValue("slug")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceGenre, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.catalog.Handler.ListGenresHandler(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceGenre, authzentities.ActionWrite, "") {
		return
	}

	var req cataloghttp.CreateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.CreateGenreHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceGenre, authzentities.ActionWrite, "") {
		return
	}

	if err := s.catalog.Handler.DeleteGenreHandler(r.Context(), r.PathValue("slug")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTitles(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceTitle, authzentities.ActionRead, "") {
		return
	}

	query := r.URL.Query()
	filter := catalogports.TitleFilter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}
	if yearRaw := query.Get("year"); yearRaw != "" {
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "invalid_year", "year must be an integer")
			return
		}
		filter.Year = &year
	}

	resp, err := s.catalog.Handler.ListTitlesHandler(r.Context(), filter)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTitle(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceTitle, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.catalog.Handler.GetTitleHandler(r.Context(), r.PathValue("title_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTitle(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceTitle, authzentities.ActionWrite, "") {
		return
	}

	var req cataloghttp.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.CreateTitleHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceTitle, authzentities.ActionWrite, "") {
		return
	}

	var req cataloghttp.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.UpdateTitleHandler(r.Context(), r.PathValue("title_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTitle(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceTitle, authzentities.ActionWrite, "") {
		return
	}

	if err := s.catalog.Handler.DeleteTitleHandler(r.Context(), r.PathValue("title_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	reviewapp "ratehub/contexts/community-feedback/review-service/application"
	reviewerrors "ratehub/contexts/community-feedback/review-service/domain/errors"
	reviewhttp "ratehub/contexts/community-feedback/review-service/transport/http"
	catalogerrors "ratehub/contexts/content-catalog/catalog-service/domain/errors"
	authzentities "ratehub/contexts/identity-access/authorization-service/domain/entities"
)

func writeReviewError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reviewhttp.ErrorResponse{Code: code, Message: message})
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrTitleNotFound):
		writeReviewError(w, http.StatusNotFound, "title_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrReviewNotFound),
		errors.Is(err, reviewerrors.ErrCommentNotFound):
		writeReviewError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrReviewExists):
		writeReviewError(w, http.StatusBadRequest, "review_exists", err.Error())
	case errors.Is(err, reviewerrors.ErrInvalidScore),
		errors.Is(err, reviewerrors.ErrTextRequired):
		writeReviewError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeReviewError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.review.Handler.ListReviewsHandler(r.Context(), r.PathValue("title_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.review.Handler.GetReviewHandler(r.Context(), r.PathValue("title_id"), r.PathValue("review_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionWrite, c.principal.UserID) {
		return
	}

	var req reviewhttp.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.review.Handler.CreateReviewHandler(
		r.Context(),
		r.PathValue("title_id"),
		reviewapp.Author{ID: c.user.ID, Username: c.user.Username},
		req,
	)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	titleID := r.PathValue("title_id")
	reviewID := r.PathValue("review_id")

	// Authentication comes before the object lookup so anonymous writers get
	// 401 even for targets that do not exist.
	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionWrite, "") {
		return
	}

	existing, err := s.review.Service.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionWrite, existing.AuthorID) {
		return
	}

	var req reviewhttp.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.review.Handler.UpdateReviewHandler(r.Context(), titleID, reviewID, req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	titleID := r.PathValue("title_id")
	reviewID := r.PathValue("review_id")

	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionWrite, "") {
		return
	}

	existing, err := s.review.Service.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	if !s.authorize(w, c, authzentities.ResourceReview, authzentities.ActionWrite, existing.AuthorID) {
		return
	}

	if err := s.review.Handler.DeleteReviewHandler(r.Context(), titleID, reviewID); err != nil {
		writeReviewDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.review.Handler.ListCommentsHandler(r.Context(), r.PathValue("title_id"), r.PathValue("review_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionRead, "") {
		return
	}

	resp, err := s.review.Handler.GetCommentHandler(
		r.Context(),
		r.PathValue("title_id"),
		r.PathValue("review_id"),
		r.PathValue("comment_id"),
	)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionWrite, c.principal.UserID) {
		return
	}

	var req reviewhttp.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.review.Handler.CreateCommentHandler(
		r.Context(),
		r.PathValue("title_id"),
		r.PathValue("review_id"),
		reviewapp.Author{ID: c.user.ID, Username: c.user.Username},
		req,
	)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	titleID := r.PathValue("title_id")
	reviewID := r.PathValue("review_id")
	commentID := r.PathValue("comment_id")

	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionWrite, "") {
		return
	}

	existing, err := s.review.Service.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionWrite, existing.AuthorID) {
		return
	}

	var req reviewhttp.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.review.Handler.UpdateCommentHandler(r.Context(), titleID, reviewID, commentID, req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	c := s.resolveCaller(r)
	titleID := r.PathValue("title_id")
	reviewID := r.PathValue("review_id")
	commentID := r.PathValue("comment_id")

	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionWrite, "") {
		return
	}

	existing, err := s.review.Service.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	if !s.authorize(w, c, authzentities.ResourceComment, authzentities.ActionWrite, existing.AuthorID) {
		return
	}

	if err := s.review.Handler.DeleteCommentHandler(r.Context(), titleID, reviewID, commentID); err != nil {
		writeReviewDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

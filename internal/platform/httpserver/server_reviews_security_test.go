package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	reviewhttp "ratehub/contexts/community-feedback/review-service/transport/http"
	cataloghttp "ratehub/contexts/content-catalog/catalog-service/transport/http"
)

func postReview(t *testing.T, server *Server, token, titleID, text string, score int) reviewhttp.ReviewResponse {
	t.Helper()
	body, _ := json.Marshal(reviewhttp.CreateReviewRequest{Text: text, Score: score})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/"+titleID+"/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 review create, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp reviewhttp.ReviewResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("review decode failed: %v", err)
	}
	return resp
}

func TestReviewReadIsPublic(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")
	token := bearerFor(t, server, "alice", "user")
	postReview(t, server, token, titleID, "fine", 7)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/"+titleID+"/reviews", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 anonymous list, got %d body=%s", rr.Code, rr.Body.String())
	}

	var reviews []reviewhttp.ReviewResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &reviews); err != nil {
		t.Fatalf("list decode failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Author != "alice" {
		t.Fatalf("expected alice's review, got %+v", reviews)
	}
}

func TestReviewCreateRequiresAuthentication(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/"+titleID+"/reviews", bytes.NewReader([]byte(`{"text":"fine","score":7}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReviewCreateUnknownTitle(t *testing.T) {
	server := newTestServer()
	token := bearerFor(t, server, "alice", "user")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/ghost/reviews", bytes.NewReader([]byte(`{"text":"fine","score":7}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSecondReviewOnSameTitleRejected(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")
	token := bearerFor(t, server, "alice", "user")
	postReview(t, server, token, titleID, "fine", 7)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles/"+titleID+"/reviews", bytes.NewReader([]byte(`{"text":"changed my mind","score":9}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 duplicate, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp reviewhttp.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decode failed: %v", err)
	}
	if resp.Code != "review_exists" {
		t.Fatalf("expected review_exists, got %s", resp.Code)
	}
}

func TestReviewEditIsAuthorOnly(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")
	authorToken := bearerFor(t, server, "alice", "user")
	created := postReview(t, server, authorToken, titleID, "fine", 7)
	path := "/api/v1/titles/" + titleID + "/reviews/" + created.ID

	otherToken := bearerFor(t, server, "bob", "user")
	otherReq := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader([]byte(`{"text":"hijacked"}`)))
	otherReq.Header.Set("Content-Type", "application/json")
	otherReq.Header.Set("Authorization", "Bearer "+otherToken)
	otherRR := httptest.NewRecorder()
	server.mux.ServeHTTP(otherRR, otherReq)
	if otherRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d body=%s", otherRR.Code, otherRR.Body.String())
	}

	// Elevated roles get no authorship escape either.
	for _, account := range []struct{ username, role string }{
		{"mod", "moderator"},
		{"boss", "admin"},
	} {
		token := bearerFor(t, server, account.username, account.role)
		req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader([]byte(`{"text":"hijacked"}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		server.mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s, got %d body=%s", account.role, rr.Code, rr.Body.String())
		}
	}

	authorEditReq := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader([]byte(`{"text":"revised"}`)))
	authorEditReq.Header.Set("Content-Type", "application/json")
	authorEditReq.Header.Set("Authorization", "Bearer "+authorToken)
	authorEditRR := httptest.NewRecorder()
	server.mux.ServeHTTP(authorEditRR, authorEditReq)
	if authorEditRR.Code != http.StatusOK {
		t.Fatalf("expected 200 author edit, got %d body=%s", authorEditRR.Code, authorEditRR.Body.String())
	}

	authorReq := httptest.NewRequest(http.MethodDelete, path, nil)
	authorReq.Header.Set("Authorization", "Bearer "+authorToken)
	authorRR := httptest.NewRecorder()
	server.mux.ServeHTTP(authorRR, authorReq)
	if authorRR.Code != http.StatusNoContent {
		t.Fatalf("expected 204 author delete, got %d body=%s", authorRR.Code, authorRR.Body.String())
	}
}

func TestAnonymousWriteToMissingReviewIsUnauthorized(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")

	updateReq := httptest.NewRequest(http.MethodPatch, "/api/v1/titles/"+titleID+"/reviews/ghost", bytes.NewReader([]byte(`{"text":"hi"}`)))
	updateReq.Header.Set("Content-Type", "application/json")
	updateRR := httptest.NewRecorder()
	server.mux.ServeHTTP(updateRR, updateReq)
	if updateRR.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before any lookup, got %d body=%s", updateRR.Code, updateRR.Body.String())
	}

	deleteReq := httptest.NewRequest(http.MethodDelete, "/api/v1/titles/"+titleID+"/reviews/ghost/comments/ghost", nil)
	deleteRR := httptest.NewRecorder()
	server.mux.ServeHTTP(deleteRR, deleteReq)
	if deleteRR.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before any lookup, got %d body=%s", deleteRR.Code, deleteRR.Body.String())
	}

	// An authenticated caller still gets the 404 for the missing target.
	token := bearerFor(t, server, "alice", "user")
	authReq := httptest.NewRequest(http.MethodPatch, "/api/v1/titles/"+titleID+"/reviews/ghost", bytes.NewReader([]byte(`{"text":"hi"}`)))
	authReq.Header.Set("Content-Type", "application/json")
	authReq.Header.Set("Authorization", "Bearer "+token)
	authRR := httptest.NewRecorder()
	server.mux.ServeHTTP(authRR, authReq)
	if authRR.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for authenticated caller, got %d body=%s", authRR.Code, authRR.Body.String())
	}
}

func TestCommentOwnership(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")
	authorToken := bearerFor(t, server, "alice", "user")
	created := postReview(t, server, authorToken, titleID, "fine", 7)
	commentsPath := "/api/v1/titles/" + titleID + "/reviews/" + created.ID + "/comments"

	commenterToken := bearerFor(t, server, "bob", "user")
	createReq := httptest.NewRequest(http.MethodPost, commentsPath, bytes.NewReader([]byte(`{"text":"agreed"}`)))
	createReq.Header.Set("Content-Type", "application/json")
	createReq.Header.Set("Authorization", "Bearer "+commenterToken)
	createRR := httptest.NewRecorder()
	server.mux.ServeHTTP(createRR, createReq)
	if createRR.Code != http.StatusCreated {
		t.Fatalf("expected 201 comment, got %d body=%s", createRR.Code, createRR.Body.String())
	}
	var comment reviewhttp.CommentResponse
	if err := json.Unmarshal(createRR.Body.Bytes(), &comment); err != nil {
		t.Fatalf("comment decode failed: %v", err)
	}
	commentPath := commentsPath + "/" + comment.ID

	// The review author owns the review, not the comment under it.
	authorReq := httptest.NewRequest(http.MethodDelete, commentPath, nil)
	authorReq.Header.Set("Authorization", "Bearer "+authorToken)
	authorRR := httptest.NewRecorder()
	server.mux.ServeHTTP(authorRR, authorReq)
	if authorRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for review author, got %d body=%s", authorRR.Code, authorRR.Body.String())
	}

	// Nor does an admin hold an authorship escape.
	adminToken := bearerFor(t, server, "boss", "admin")
	adminReq := httptest.NewRequest(http.MethodDelete, commentPath, nil)
	adminReq.Header.Set("Authorization", "Bearer "+adminToken)
	adminRR := httptest.NewRecorder()
	server.mux.ServeHTTP(adminRR, adminReq)
	if adminRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin, got %d body=%s", adminRR.Code, adminRR.Body.String())
	}

	commenterReq := httptest.NewRequest(http.MethodDelete, commentPath, nil)
	commenterReq.Header.Set("Authorization", "Bearer "+commenterToken)
	commenterRR := httptest.NewRecorder()
	server.mux.ServeHTTP(commenterRR, commenterReq)
	if commenterRR.Code != http.StatusNoContent {
		t.Fatalf("expected 204 commenter delete, got %d body=%s", commenterRR.Code, commenterRR.Body.String())
	}
}

func TestTitleRatingReflectsReviews(t *testing.T) {
	server := newTestServer()
	titleID := seedTitle(t, server, "Film")

	aliceToken := bearerFor(t, server, "alice", "user")
	postReview(t, server, aliceToken, titleID, "fine", 6)
	bobToken := bearerFor(t, server, "bob", "user")
	postReview(t, server, bobToken, titleID, "great", 9)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/"+titleID, nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var title cataloghttp.TitleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &title); err != nil {
		t.Fatalf("title decode failed: %v", err)
	}
	if title.Rating == nil || *title.Rating != 8 {
		t.Fatalf("expected rating 8 (round of 7.5), got %v", title.Rating)
	}
}

package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cataloghttp "ratehub/contexts/content-catalog/catalog-service/transport/http"
)

func TestCatalogReadIsPublic(t *testing.T) {
	server := newTestServer()
	seedTitle(t, server, "Public Film")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous read, got %d body=%s", rr.Code, rr.Body.String())
	}

	// A garbage bearer collapses to anonymous and keeps read access.
	garbageReq := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)
	garbageReq.Header.Set("Authorization", "Bearer not-a-token")
	garbageRR := httptest.NewRecorder()
	server.mux.ServeHTTP(garbageRR, garbageReq)
	if garbageRR.Code != http.StatusOK {
		t.Fatalf("expected 200 with garbage bearer, got %d body=%s", garbageRR.Code, garbageRR.Body.String())
	}
}

func TestCatalogWriteRequiresAdmin(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"name":"Films","slug":"films"}`)

	anonReq := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewReader(body))
	anonReq.Header.Set("Content-Type", "application/json")
	anonRR := httptest.NewRecorder()
	server.mux.ServeHTTP(anonRR, anonReq)
	if anonRR.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d body=%s", anonRR.Code, anonRR.Body.String())
	}

	userToken := bearerFor(t, server, "plain", "user")
	userReq := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewReader(body))
	userReq.Header.Set("Content-Type", "application/json")
	userReq.Header.Set("Authorization", "Bearer "+userToken)
	userRR := httptest.NewRecorder()
	server.mux.ServeHTTP(userRR, userReq)
	if userRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user, got %d body=%s", userRR.Code, userRR.Body.String())
	}

	// Moderators get no catalog write privilege.
	modToken := bearerFor(t, server, "mod", "moderator")
	modReq := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewReader(body))
	modReq.Header.Set("Content-Type", "application/json")
	modReq.Header.Set("Authorization", "Bearer "+modToken)
	modRR := httptest.NewRecorder()
	server.mux.ServeHTTP(modRR, modReq)
	if modRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator, got %d body=%s", modRR.Code, modRR.Body.String())
	}

	adminToken := bearerFor(t, server, "boss", "admin")
	adminReq := httptest.NewRequest(http.MethodPost, "/api/v1/categories", bytes.NewReader(body))
	adminReq.Header.Set("Content-Type", "application/json")
	adminReq.Header.Set("Authorization", "Bearer "+adminToken)
	adminRR := httptest.NewRecorder()
	server.mux.ServeHTTP(adminRR, adminReq)
	if adminRR.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d body=%s", adminRR.Code, adminRR.Body.String())
	}

	deleteReq := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/films", nil)
	deleteReq.Header.Set("Authorization", "Bearer "+adminToken)
	deleteRR := httptest.NewRecorder()
	server.mux.ServeHTTP(deleteRR, deleteReq)
	if deleteRR.Code != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", deleteRR.Code, deleteRR.Body.String())
	}
}

func TestCreateTitleRejectsUnknownCategory(t *testing.T) {
	server := newTestServer()
	adminToken := bearerFor(t, server, "boss", "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/titles", bytes.NewReader([]byte(`{"name":"Film","year":1999,"category":"ghost"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListTitlesRejectsMalformedYear(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles?year=abc", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp cataloghttp.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decode failed: %v", err)
	}
	if resp.Code != "invalid_year" {
		t.Fatalf("expected invalid_year, got %s", resp.Code)
	}
}

func TestUnknownTitleReturnsNotFound(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/titles/ghost", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

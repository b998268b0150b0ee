package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	identityhttp "ratehub/contexts/identity-access/identity-service/transport/http"
)

func TestMeRequiresAuthentication(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProfileEditCannotEscalateRole(t *testing.T) {
	server := newTestServer()
	token := bearerFor(t, server, "alice", "user")

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader([]byte(`{"bio":"hello","role":"admin"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp identityhttp.UserResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response decode failed: %v", err)
	}
	if resp.Role != "user" {
		t.Fatalf("expected role pinned to user, got %s", resp.Role)
	}
	if resp.Bio != "hello" {
		t.Fatalf("expected bio applied, got %q", resp.Bio)
	}
}

func TestUserAdministrationRequiresAdmin(t *testing.T) {
	server := newTestServer()

	userToken := bearerFor(t, server, "plain", "user")
	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	listReq.Header.Set("Authorization", "Bearer "+userToken)
	listRR := httptest.NewRecorder()
	server.mux.ServeHTTP(listRR, listReq)
	if listRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user, got %d body=%s", listRR.Code, listRR.Body.String())
	}

	adminToken := bearerFor(t, server, "boss", "admin")
	adminListReq := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	adminListReq.Header.Set("Authorization", "Bearer "+adminToken)
	adminListRR := httptest.NewRecorder()
	server.mux.ServeHTTP(adminListRR, adminListReq)
	if adminListRR.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d body=%s", adminListRR.Code, adminListRR.Body.String())
	}
}

func TestAdminUserLifecycle(t *testing.T) {
	server := newTestServer()
	adminToken := bearerFor(t, server, "boss", "admin")

	createReq := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader([]byte(`{"username":"bob","email":"bob@example.com"}`)))
	createReq.Header.Set("Content-Type", "application/json")
	createReq.Header.Set("Authorization", "Bearer "+adminToken)
	createRR := httptest.NewRecorder()
	server.mux.ServeHTTP(createRR, createReq)
	if createRR.Code != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", createRR.Code, createRR.Body.String())
	}

	promoteReq := httptest.NewRequest(http.MethodPatch, "/api/v1/users/bob", bytes.NewReader([]byte(`{"role":"moderator"}`)))
	promoteReq.Header.Set("Content-Type", "application/json")
	promoteReq.Header.Set("Authorization", "Bearer "+adminToken)
	promoteRR := httptest.NewRecorder()
	server.mux.ServeHTTP(promoteRR, promoteReq)
	if promoteRR.Code != http.StatusOK {
		t.Fatalf("expected 200 promote, got %d body=%s", promoteRR.Code, promoteRR.Body.String())
	}

	var promoted identityhttp.UserResponse
	if err := json.Unmarshal(promoteRR.Body.Bytes(), &promoted); err != nil {
		t.Fatalf("response decode failed: %v", err)
	}
	if promoted.Role != "moderator" {
		t.Fatalf("expected moderator, got %s", promoted.Role)
	}

	deleteReq := httptest.NewRequest(http.MethodDelete, "/api/v1/users/bob", nil)
	deleteReq.Header.Set("Authorization", "Bearer "+adminToken)
	deleteRR := httptest.NewRecorder()
	server.mux.ServeHTTP(deleteRR, deleteReq)
	if deleteRR.Code != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", deleteRR.Code, deleteRR.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/users/bob", nil)
	getReq.Header.Set("Authorization", "Bearer "+adminToken)
	getRR := httptest.NewRecorder()
	server.mux.ServeHTTP(getRR, getReq)
	if getRR.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d body=%s", getRR.Code, getRR.Body.String())
	}
}

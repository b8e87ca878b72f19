package sepm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/endpointops/clientsweep/internal/models"
	"github.com/endpointops/clientsweep/pkg/config"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL: srv.URL,
		http:    srv.Client(),
		domain:  "CORP",
	}
}

func TestNewRequiresServer(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for missing server")
	}

	cfg.Server = "sepm.internal"
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if client.baseURL != "https://sepm.internal:8446" {
		t.Fatalf("unexpected base URL: %q", client.baseURL)
	}
}

func TestAuthenticateStoresToken(t *testing.T) {
	var gotBody authRequest
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != authenticatePath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode auth body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(authResponse{Token: "tok-123"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	if err := client.Authenticate(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if client.token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", client.token)
	}
	if gotBody.Username != "admin" || gotBody.Password != "secret" || gotBody.Domain != "CORP" {
		t.Fatalf("unexpected auth body: %+v", gotBody)
	}
}

func TestAuthenticateRejectedCredentials(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	err := client.Authenticate(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestAuthenticateEmptyToken(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(authResponse{})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	err := client.Authenticate(context.Background(), "admin", "secret")
	if !IsAuthError(err) {
		t.Fatalf("expected auth error for empty token, got %v", err)
	}
}

func TestListPageSendsPagingAndBearer(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != inventoryPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		if got := r.URL.Query().Get(pageIndexParam); got != "2" {
			t.Errorf("pageIndex = %q, want 2", got)
		}
		if got := r.URL.Query().Get(pageSizeParam); got != "1000" {
			t.Errorf("pageSize = %q, want 1000", got)
		}
		_ = json.NewEncoder(w).Encode(models.Page{
			Content: []models.ClientRecord{
				{ID: "a", Name: "HOST-A", LastCheckin: 100},
			},
			TotalElements: 1001,
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.token = "tok-123"

	page, err := client.ListPage(context.Background(), 2, 1000)
	if err != nil {
		t.Fatalf("ListPage failed: %v", err)
	}
	if page.TotalElements != 1001 {
		t.Fatalf("TotalElements = %d, want 1001", page.TotalElements)
	}
	if len(page.Content) != 1 || page.Content[0].Name != "HOST-A" {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
}

func TestListPageServerError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	if _, err := client.ListPage(context.Background(), 1, 1000); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestDeleteRecord(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.token = "tok-123"

	if err := client.DeleteRecord(context.Background(), "rec-42"); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != inventoryPath+"/rec-42" {
		t.Errorf("path = %q, want %s/rec-42", gotPath, inventoryPath)
	}
}

func TestDeleteRecordEmptyID(t *testing.T) {
	client := &Client{}
	if err := client.DeleteRecord(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestLogout(t *testing.T) {
	called := false
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.URL.Path != logoutPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.token = "tok-123"

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if !called {
		t.Fatalf("expected logout request")
	}
	if client.token != "" {
		t.Fatalf("expected token to be cleared")
	}
}

func TestLogoutWithoutSessionIsNoop(t *testing.T) {
	client := &Client{}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

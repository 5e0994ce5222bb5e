package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSelf_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET method, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/users/self" {
			t.Errorf("expected path /api/v1/users/self, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(User{
			ID:      9,
			Name:    "Test Student",
			LoginID: "tstudent",
			Email:   "tstudent@example.invalid",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	user, err := client.GetSelf(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != 9 {
		t.Errorf("expected ID 9, got %d", user.ID)
	}
	if user.Name != "Test Student" {
		t.Errorf("expected name 'Test Student', got %q", user.Name)
	}
}

func TestGetSelf_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(errorBody("Invalid access token."))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	_, err := client.GetSelf(context.Background())
	if err == nil {
		t.Fatal("expected error for unauthorized request")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected error to wrap *APIError, got %T", err)
	}
	if apiErr.StatusCode != 401 {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
}

func TestGetUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/42" {
			t.Errorf("expected path /api/v1/users/42, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(User{ID: 42, Name: "Another User"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	user, err := client.GetUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Name != "Another User" {
		t.Errorf("expected name 'Another User', got %q", user.Name)
	}
}

func TestGetUser_InvalidID(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")

	_, err := client.GetUser(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error for missing user ID")
	}

	expected := "user ID is required"
	if err.Error() != expected {
		t.Errorf("expected error %q, got %q", expected, err.Error())
	}
}

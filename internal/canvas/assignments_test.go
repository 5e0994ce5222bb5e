package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListAssignments_Success(t *testing.T) {
	due := time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/101/assignments" {
			t.Errorf("expected path /api/v1/courses/101/assignments, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Assignment{
			{ID: 1, CourseID: 101, Name: "Problem Set 1", DueAt: &due, PointsPossible: 100, Published: true},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	assignments, _, err := client.ListAssignments(context.Background(), 101, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].Name != "Problem Set 1" {
		t.Errorf("expected name 'Problem Set 1', got %q", assignments[0].Name)
	}
	if assignments[0].DueAt == nil || !assignments[0].DueAt.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, assignments[0].DueAt)
	}
}

func TestListAssignments_WithOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("bucket") != "upcoming" {
			t.Errorf("expected bucket=upcoming, got %s", q.Get("bucket"))
		}
		if q.Get("order_by") != "due_at" {
			t.Errorf("expected order_by=due_at, got %s", q.Get("order_by"))
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Assignment{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	opts := &ListAssignmentsOptions{Bucket: "upcoming", OrderBy: "due_at"}
	_, _, err := client.ListAssignments(context.Background(), 101, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListAssignments_InvalidCourseID(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")

	_, _, err := client.ListAssignments(context.Background(), 0, nil)
	if err == nil {
		t.Fatal("expected error for missing course ID")
	}
}

func TestGetAssignment_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/101/assignments/7" {
			t.Errorf("expected path /api/v1/courses/101/assignments/7, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Assignment{
			ID:             7,
			CourseID:       101,
			Name:           "Final Project",
			PointsPossible: 200,
			GradingType:    "points",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	assignment, err := client.GetAssignment(context.Background(), 101, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assignment.ID != 7 {
		t.Errorf("expected ID 7, got %d", assignment.ID)
	}
	if assignment.PointsPossible != 200 {
		t.Errorf("expected 200 points, got %v", assignment.PointsPossible)
	}
}

func TestGetAssignment_InvalidIDs(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")
	ctx := context.Background()

	if _, err := client.GetAssignment(ctx, 0, 7); err == nil {
		t.Error("expected error for missing course ID")
	}
	if _, err := client.GetAssignment(ctx, 101, 0); err == nil {
		t.Error("expected error for missing assignment ID")
	}
}

package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListEnrollments_Success(t *testing.T) {
	current := 91.3
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/self/enrollments" {
			t.Errorf("expected path /api/v1/users/self/enrollments, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Enrollment{
			{
				ID:       1,
				CourseID: 101,
				Type:     "StudentEnrollment",
				State:    "active",
				Grades:   &Grades{CurrentScore: &current, CurrentGrade: "A-"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	enrollments, _, err := client.ListEnrollments(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(enrollments) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(enrollments))
	}
	if enrollments[0].Grades == nil || enrollments[0].Grades.CurrentGrade != "A-" {
		t.Errorf("expected current grade 'A-', got %+v", enrollments[0].Grades)
	}
}

func TestListEnrollments_WithFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q["state[]"]; len(got) != 1 || got[0] != "active" {
			t.Errorf("expected state[]=active, got %v", got)
		}
		if got := q["type[]"]; len(got) != 1 || got[0] != "StudentEnrollment" {
			t.Errorf("expected type[]=StudentEnrollment, got %v", got)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Enrollment{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	opts := &ListEnrollmentsOptions{State: []string{"active"}, Type: []string{"StudentEnrollment"}}
	_, _, err := client.ListEnrollments(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListCourseEnrollments_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/101/enrollments" {
			t.Errorf("expected path /api/v1/courses/101/enrollments, got %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Enrollment{
			{ID: 1, CourseID: 101, UserID: 9, Type: "StudentEnrollment"},
			{ID: 2, CourseID: 101, UserID: 10, Type: "TeacherEnrollment"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	enrollments, _, err := client.ListCourseEnrollments(context.Background(), 101, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(enrollments) != 2 {
		t.Fatalf("expected 2 enrollments, got %d", len(enrollments))
	}
}

func TestListCourseEnrollments_InvalidCourseID(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")

	_, _, err := client.ListCourseEnrollments(context.Background(), 0, nil)
	if err == nil {
		t.Fatal("expected error for missing course ID")
	}
}

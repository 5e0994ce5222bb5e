package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListSubmissions_Success(t *testing.T) {
	score := 87.5
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/101/students/submissions" {
			t.Errorf("expected path /api/v1/courses/101/students/submissions, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("student_ids[]"); got != "self" {
			t.Errorf("expected student_ids[]=self, got %s", got)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Submission{
			{ID: 1, AssignmentID: 7, UserID: 9, Grade: "B+", Score: &score, WorkflowState: "graded"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	submissions, _, err := client.ListSubmissions(context.Background(), 101, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(submissions) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(submissions))
	}
	if submissions[0].Grade != "B+" {
		t.Errorf("expected grade 'B+', got %q", submissions[0].Grade)
	}
	if submissions[0].Score == nil || *submissions[0].Score != 87.5 {
		t.Errorf("expected score 87.5, got %v", submissions[0].Score)
	}
}

func TestListSubmissions_WithInclude(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query()["include[]"]; len(got) != 1 || got[0] != "assignment" {
			t.Errorf("expected include[]=assignment, got %v", got)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]*Submission{
			{ID: 1, AssignmentID: 7, Assignment: &Assignment{ID: 7, Name: "Problem Set 1"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	opts := &ListSubmissionsOptions{Include: []string{"assignment"}}
	submissions, _, err := client.ListSubmissions(context.Background(), 101, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if submissions[0].Assignment == nil || submissions[0].Assignment.Name != "Problem Set 1" {
		t.Errorf("expected embedded assignment, got %+v", submissions[0].Assignment)
	}
}

func TestListSubmissions_InvalidCourseID(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")

	_, _, err := client.ListSubmissions(context.Background(), 0, nil)
	if err == nil {
		t.Fatal("expected error for missing course ID")
	}
}

func TestSubmitAssignment_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/courses/101/assignments/7/submissions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var payload struct {
			Submission map[string]string `json:"submission"`
			Comment    map[string]string `json:"comment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if payload.Submission["submission_type"] != "online_url" {
			t.Errorf("submission_type = %q", payload.Submission["submission_type"])
		}
		if payload.Submission["url"] != "https://example.com/essay" {
			t.Errorf("url = %q", payload.Submission["url"])
		}
		if payload.Comment["text_comment"] != "first draft" {
			t.Errorf("text_comment = %q", payload.Comment["text_comment"])
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Submission{
			ID:            3,
			AssignmentID:  7,
			WorkflowState: "submitted",
			Attempt:       1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	submission, err := client.SubmitAssignment(context.Background(), 101, 7, &SubmitAssignmentOptions{
		Type:    "online_url",
		URL:     "https://example.com/essay",
		Comment: "first draft",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if submission.WorkflowState != "submitted" {
		t.Errorf("expected state 'submitted', got %q", submission.WorkflowState)
	}
	if submission.Attempt != 1 {
		t.Errorf("expected attempt 1, got %d", submission.Attempt)
	}
}

func TestSubmitAssignment_Validation(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")

	tests := []struct {
		name         string
		courseID     int64
		assignmentID int64
		opts         *SubmitAssignmentOptions
	}{
		{name: "missing course", courseID: 0, assignmentID: 7, opts: &SubmitAssignmentOptions{Type: "online_url", URL: "https://x.test"}},
		{name: "missing assignment", courseID: 101, assignmentID: 0, opts: &SubmitAssignmentOptions{Type: "online_url", URL: "https://x.test"}},
		{name: "nil options", courseID: 101, assignmentID: 7, opts: nil},
		{name: "url type without url", courseID: 101, assignmentID: 7, opts: &SubmitAssignmentOptions{Type: "online_url"}},
		{name: "text type without body", courseID: 101, assignmentID: 7, opts: &SubmitAssignmentOptions{Type: "online_text_entry"}},
		{name: "unsupported type", courseID: 101, assignmentID: 7, opts: &SubmitAssignmentOptions{Type: "media_recording"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.SubmitAssignment(context.Background(), tt.courseID, tt.assignmentID, tt.opts); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCommentOnSubmission_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/courses/101/assignments/7/submissions/self" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var payload struct {
			Comment map[string]string `json:"comment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if payload.Comment["text_comment"] != "is a resubmission allowed?" {
			t.Errorf("text_comment = %q", payload.Comment["text_comment"])
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Submission{ID: 3, AssignmentID: 7, WorkflowState: "submitted"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	submission, err := client.CommentOnSubmission(context.Background(), 101, 7, "is a resubmission allowed?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.AssignmentID != 7 {
		t.Errorf("expected assignment 7, got %d", submission.AssignmentID)
	}
}

func TestCommentOnSubmission_EmptyText(t *testing.T) {
	client := NewClient("https://canvas.test", "test-token")
	if _, err := client.CommentOnSubmission(context.Background(), 101, 7, ""); err == nil {
		t.Error("expected error for empty comment text")
	}
}

func TestGetSubmission_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/101/assignments/7/submissions/self" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Submission{
			ID:            1,
			AssignmentID:  7,
			WorkflowState: "submitted",
			Late:          true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	submission, err := client.GetSubmission(context.Background(), 101, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if submission.WorkflowState != "submitted" {
		t.Errorf("expected state 'submitted', got %q", submission.WorkflowState)
	}
	if !submission.Late {
		t.Error("expected late submission")
	}
}

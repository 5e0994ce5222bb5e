package canvas

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Submission represents a student's submission for an assignment.
// See: https://canvas.instructure.com/doc/api/submissions.html
type Submission struct {
	ID            int64       `json:"id"`
	AssignmentID  int64       `json:"assignment_id"`
	UserID        int64       `json:"user_id"`
	Grade         string      `json:"grade,omitempty"`
	Score         *float64    `json:"score,omitempty"`
	SubmittedAt   *time.Time  `json:"submitted_at,omitempty"`
	GradedAt      *time.Time  `json:"graded_at,omitempty"`
	WorkflowState string      `json:"workflow_state"`
	Late          bool        `json:"late"`
	Missing       bool        `json:"missing"`
	Excused       bool        `json:"excused,omitempty"`
	Attempt       int         `json:"attempt,omitempty"`
	Assignment    *Assignment `json:"assignment,omitempty"`
	User          *User       `json:"user,omitempty"`
}

// ListSubmissionsOptions contains options for listing submissions.
type ListSubmissionsOptions struct {
	ListOptions
	// Include adds optional response fields such as assignment or user.
	Include []string
	// WorkflowState filters by submission state: submitted, unsubmitted,
	// graded, pending_review.
	WorkflowState string
}

// ListSubmissions lists the current user's submissions across all
// assignments of a course.
// See: https://canvas.instructure.com/doc/api/submissions.html#method.submissions_api.for_students
func (c *Client) ListSubmissions(ctx context.Context, courseID int64, opts *ListSubmissionsOptions) ([]*Submission, *PageResult, error) {
	if courseID <= 0 {
		return nil, nil, fmt.Errorf("course ID is required")
	}

	query := url.Values{}
	if opts != nil {
		query = opts.ListOptions.query()
		for _, inc := range opts.Include {
			query.Add("include[]", inc)
		}
		if opts.WorkflowState != "" {
			query.Set("workflow_state", opts.WorkflowState)
		}
	}
	query.Set("student_ids[]", "self")

	var submissions []*Submission
	path := fmt.Sprintf("/courses/%d/students/submissions", courseID)
	page, err := c.doGetPage(ctx, path, query, &submissions)
	if err != nil {
		return nil, nil, err
	}

	return submissions, page, nil
}

// SubmitAssignmentOptions describes what to hand in.
type SubmitAssignmentOptions struct {
	// Type is the submission type: online_url or online_text_entry.
	Type string
	// URL is the submitted link for online_url submissions.
	URL string
	// Body is the submitted text for online_text_entry submissions.
	Body string
	// Comment is an optional text comment attached alongside.
	Comment string
}

// SubmitAssignment hands in work for an assignment on behalf of the
// current user.
// See: https://canvas.instructure.com/doc/api/submissions.html#method.submissions.create
func (c *Client) SubmitAssignment(ctx context.Context, courseID, assignmentID int64, opts *SubmitAssignmentOptions) (*Submission, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if assignmentID <= 0 {
		return nil, fmt.Errorf("assignment ID is required")
	}
	if opts == nil || opts.Type == "" {
		return nil, fmt.Errorf("submission type is required")
	}

	submission := map[string]string{"submission_type": opts.Type}
	switch opts.Type {
	case "online_url":
		if opts.URL == "" {
			return nil, fmt.Errorf("URL is required for online_url submissions")
		}
		submission["url"] = opts.URL
	case "online_text_entry":
		if opts.Body == "" {
			return nil, fmt.Errorf("body is required for online_text_entry submissions")
		}
		submission["body"] = opts.Body
	default:
		return nil, fmt.Errorf("unsupported submission type %q", opts.Type)
	}

	payload := map[string]interface{}{"submission": submission}
	if opts.Comment != "" {
		payload["comment"] = map[string]string{"text_comment": opts.Comment}
	}

	var result Submission
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions", courseID, assignmentID)
	if err := c.doPost(ctx, path, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CommentOnSubmission attaches a text comment to the current user's
// submission for an assignment.
// See: https://canvas.instructure.com/doc/api/submissions.html#method.submissions_api.update
func (c *Client) CommentOnSubmission(ctx context.Context, courseID, assignmentID int64, text string) (*Submission, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if assignmentID <= 0 {
		return nil, fmt.Errorf("assignment ID is required")
	}
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	payload := map[string]interface{}{
		"comment": map[string]string{"text_comment": text},
	}

	var result Submission
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions/self", courseID, assignmentID)
	if err := c.doPut(ctx, path, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSubmission retrieves the current user's submission for one assignment.
// See: https://canvas.instructure.com/doc/api/submissions.html#method.submissions_api.show
func (c *Client) GetSubmission(ctx context.Context, courseID, assignmentID int64) (*Submission, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if assignmentID <= 0 {
		return nil, fmt.Errorf("assignment ID is required")
	}

	var submission Submission
	path := fmt.Sprintf("/courses/%d/assignments/%d/submissions/self", courseID, assignmentID)
	if err := c.doGet(ctx, path, nil, &submission); err != nil {
		return nil, err
	}

	return &submission, nil
}

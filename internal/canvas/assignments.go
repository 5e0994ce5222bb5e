package canvas

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Assignment represents a Canvas assignment.
// See: https://canvas.instructure.com/doc/api/assignments.html
type Assignment struct {
	ID              int64      `json:"id"`
	CourseID        int64      `json:"course_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DueAt           *time.Time `json:"due_at,omitempty"`
	UnlockAt        *time.Time `json:"unlock_at,omitempty"`
	LockAt          *time.Time `json:"lock_at,omitempty"`
	PointsPossible  float64    `json:"points_possible"`
	GradingType     string     `json:"grading_type,omitempty"`
	SubmissionTypes []string   `json:"submission_types,omitempty"`
	Published       bool       `json:"published"`
	HTMLURL         string     `json:"html_url,omitempty"`
	HasSubmitted    bool       `json:"has_submitted_submissions,omitempty"`
}

// ListAssignmentsOptions contains options for listing assignments.
type ListAssignmentsOptions struct {
	ListOptions
	// Bucket filters by due-date bucket: past, overdue, undated,
	// ungraded, unsubmitted, upcoming, future.
	Bucket string
	// SearchTerm filters assignments whose name contains the term.
	SearchTerm string
	// OrderBy sorts the result: position, name, due_at.
	OrderBy string
	// Include adds optional response fields such as submission.
	Include []string
}

// ListAssignments lists the assignments of a course.
// See: https://canvas.instructure.com/doc/api/assignments.html#method.assignments_api.index
func (c *Client) ListAssignments(ctx context.Context, courseID int64, opts *ListAssignmentsOptions) ([]*Assignment, *PageResult, error) {
	if courseID <= 0 {
		return nil, nil, fmt.Errorf("course ID is required")
	}

	query := url.Values{}
	if opts != nil {
		query = opts.ListOptions.query()
		if opts.Bucket != "" {
			query.Set("bucket", opts.Bucket)
		}
		if opts.SearchTerm != "" {
			query.Set("search_term", opts.SearchTerm)
		}
		if opts.OrderBy != "" {
			query.Set("order_by", opts.OrderBy)
		}
		for _, inc := range opts.Include {
			query.Add("include[]", inc)
		}
	}

	var assignments []*Assignment
	page, err := c.doGetPage(ctx, fmt.Sprintf("/courses/%d/assignments", courseID), query, &assignments)
	if err != nil {
		return nil, nil, err
	}

	return assignments, page, nil
}

// GetAssignment retrieves a single assignment.
// See: https://canvas.instructure.com/doc/api/assignments.html#method.assignments_api.show
func (c *Client) GetAssignment(ctx context.Context, courseID, assignmentID int64) (*Assignment, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("course ID is required")
	}
	if assignmentID <= 0 {
		return nil, fmt.Errorf("assignment ID is required")
	}

	var assignment Assignment
	path := fmt.Sprintf("/courses/%d/assignments/%d", courseID, assignmentID)
	if err := c.doGet(ctx, path, nil, &assignment); err != nil {
		return nil, err
	}

	return &assignment, nil
}

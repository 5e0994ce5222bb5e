package canvas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	ctxerrors "github.com/sageleaf-labs/canvas-cli/internal/errors"
)

// File represents a file stored in a Canvas course.
// See: https://canvas.instructure.com/doc/api/files.html
type File struct {
	ID          int64      `json:"id"`
	DisplayName string     `json:"display_name"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content-type"`
	Size        int64      `json:"size"`
	URL         string     `json:"url"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Locked      bool       `json:"locked"`
	Hidden      bool       `json:"hidden"`
	FolderID    int64      `json:"folder_id,omitempty"`
}

// ListFilesOptions contains options for listing files.
type ListFilesOptions struct {
	ListOptions
	// SearchTerm filters files whose name contains the term.
	SearchTerm string
	// Sort orders the result: name, size, created_at, updated_at.
	Sort string
	// Order is asc or desc.
	Order string
}

// ListFiles lists the files of a course.
// See: https://canvas.instructure.com/doc/api/files.html#method.files.api_index
func (c *Client) ListFiles(ctx context.Context, courseID int64, opts *ListFilesOptions) ([]*File, *PageResult, error) {
	if courseID <= 0 {
		return nil, nil, fmt.Errorf("course ID is required")
	}

	query := url.Values{}
	if opts != nil {
		query = opts.ListOptions.query()
		if opts.SearchTerm != "" {
			query.Set("search_term", opts.SearchTerm)
		}
		if opts.Sort != "" {
			query.Set("sort", opts.Sort)
		}
		if opts.Order != "" {
			query.Set("order", opts.Order)
		}
	}

	var files []*File
	page, err := c.doGetPage(ctx, fmt.Sprintf("/courses/%d/files", courseID), query, &files)
	if err != nil {
		return nil, nil, err
	}

	return files, page, nil
}

// GetFile retrieves a file's metadata by ID.
// See: https://canvas.instructure.com/doc/api/files.html#method.files.api_show
func (c *Client) GetFile(ctx context.Context, fileID int64) (*File, error) {
	if fileID <= 0 {
		return nil, fmt.Errorf("file ID is required")
	}

	var file File
	if err := c.doGet(ctx, fmt.Sprintf("/files/%d", fileID), nil, &file); err != nil {
		return nil, err
	}

	return &file, nil
}

// DownloadFile streams a file's content to w. downloadURL is the
// pre-signed URL from File.URL; redirects to the storage backend are
// followed and the Authorization header is not forwarded to it.
func (c *Client) DownloadFile(ctx context.Context, downloadURL string, w io.Writer) (int64, error) {
	if downloadURL == "" {
		return 0, fmt.Errorf("download URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, ctxerrors.WrapContext(http.MethodGet, downloadURL, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		err := &APIError{StatusCode: resp.StatusCode}
		return 0, ctxerrors.WrapContext(http.MethodGet, downloadURL, resp.StatusCode, err)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write file content: %w", err)
	}
	return n, nil
}

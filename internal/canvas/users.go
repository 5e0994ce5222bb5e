package canvas

import (
	"context"
	"fmt"
)

// User represents a Canvas user.
// See: https://canvas.instructure.com/doc/api/users.html
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SortableName string `json:"sortable_name,omitempty"`
	ShortName    string `json:"short_name,omitempty"`
	LoginID      string `json:"login_id,omitempty"`
	Email        string `json:"email,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Locale       string `json:"locale,omitempty"`
	TimeZone     string `json:"time_zone,omitempty"`
}

// GetSelf retrieves the user associated with the access token.
// See: https://canvas.instructure.com/doc/api/users.html#method.users.api_show
func (c *Client) GetSelf(ctx context.Context) (*User, error) {
	var user User
	if err := c.doGet(ctx, "/users/self", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUser retrieves a user by ID.
// See: https://canvas.instructure.com/doc/api/users.html#method.users.api_show
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	var user User
	if err := c.doGet(ctx, fmt.Sprintf("/users/%d", userID), nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

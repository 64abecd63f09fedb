// ABOUTME: Authentication endpoints of the Ssnapify backend
// ABOUTME: Login URL construction, current user, and logout variants

package client

import "context"

// LoginURL returns the OAuth entry point. Visiting it in a browser starts the
// Google login flow; the provider redirects back with a token query parameter.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/google/login"
}

// Me fetches the current user profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", nil, nil)
}

// LogoutAllDevices invalidates every session of the current user.
func (c *Client) LogoutAllDevices(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout-all-devices", nil, nil)
}

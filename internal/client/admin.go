// ABOUTME: Admin endpoints for account management
// ABOUTME: User listing plus credit, role, status, plan, and session mutations

package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// ListUsersOptions pages the admin user listing.
type ListUsersOptions struct {
	Limit  int
	Offset int
}

// ListUsers fetches all accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var users []User
	if err := c.getJSON(ctx, "/users", query, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Mutation endpoints take JSON bodies and answer a loose acknowledgement
// ({"message": ..., "user_id": ..., <changed field>: ...}) rather than a full
// profile. The returned User carries the id and the confirmed value; fields
// the backend does not echo fall back to what was sent.

// SetUserCredits sets a user's credit balance.
func (c *Client) SetUserCredits(ctx context.Context, userID, credits int) (*User, error) {
	payload := struct {
		Credits int `json:"credits"`
	}{credits}
	body, err := c.postJSONRaw(ctx, fmt.Sprintf("/admin/users/%d/credits", userID), payload)
	if err != nil {
		return nil, err
	}
	user := mutatedUser(body, userID)
	user.CreditBalance = credits
	if v := gjson.GetBytes(body, "credit_balance"); v.Exists() {
		user.CreditBalance = int(v.Int())
	}
	return user, nil
}

// SetUserRole grants or revokes admin rights.
func (c *Client) SetUserRole(ctx context.Context, userID int, makeAdmin bool) (*User, error) {
	payload := struct {
		MakeAdmin bool `json:"make_admin"`
	}{makeAdmin}
	body, err := c.postJSONRaw(ctx, fmt.Sprintf("/admin/users/%d/role", userID), payload)
	if err != nil {
		return nil, err
	}
	user := mutatedUser(body, userID)
	user.IsAdmin = makeAdmin
	if v := gjson.GetBytes(body, "is_admin"); v.Exists() {
		user.IsAdmin = v.Bool()
	}
	return user, nil
}

// SetUserStatus activates or deactivates an account.
func (c *Client) SetUserStatus(ctx context.Context, userID int, active bool) (*User, error) {
	payload := struct {
		IsActive bool `json:"is_active"`
	}{active}
	body, err := c.postJSONRaw(ctx, fmt.Sprintf("/admin/users/%d/status", userID), payload)
	if err != nil {
		return nil, err
	}
	user := mutatedUser(body, userID)
	user.IsActive = active
	if v := gjson.GetBytes(body, "is_active"); v.Exists() {
		user.IsActive = v.Bool()
	}
	return user, nil
}

// SetUserPlan moves a user to another plan.
func (c *Client) SetUserPlan(ctx context.Context, userID, planID int) (*User, error) {
	payload := struct {
		PlanID int `json:"plan_id"`
	}{planID}
	body, err := c.postJSONRaw(ctx, fmt.Sprintf("/admin/users/%d/plan", userID), payload)
	if err != nil {
		return nil, err
	}
	user := mutatedUser(body, userID)
	user.PlanID = planID
	if v := gjson.GetBytes(body, "plan_id"); v.Exists() {
		user.PlanID = int(v.Int())
	}
	return user, nil
}

// ForceLogoutUser invalidates every session of another user.
func (c *Client) ForceLogoutUser(ctx context.Context, userID int) error {
	return c.postJSON(ctx, fmt.Sprintf("/admin/users/%d/logout-force", userID), nil, nil)
}

// mutatedUser reads the identifying fields a mutation acknowledgement may
// carry. Email and username are picked up when the backend echoes them.
func mutatedUser(body []byte, fallbackID int) *User {
	user := &User{ID: fallbackID}
	if v := gjson.GetBytes(body, "user_id"); v.Exists() {
		user.ID = int(v.Int())
	} else if v := gjson.GetBytes(body, "id"); v.Exists() {
		user.ID = int(v.Int())
	}
	user.Email = gjson.GetBytes(body, "email").String()
	user.Username = gjson.GetBytes(body, "username").String()
	return user
}

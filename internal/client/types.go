// ABOUTME: Transport DTOs received from the Ssnapify backend
// ABOUTME: Users, credit info, image assets, and health payloads

package client

import "time"

// User represents the authenticated user profile from /users/me.
type User struct {
	ID            int       `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	CreditBalance int       `json:"credit_balance"`
	PlanID        int       `json:"plan_id"`
	IsActive      bool      `json:"is_active"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
}

// DisplayName returns the username, falling back to the email local part.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}

// CreditInfo is the account billing snapshot from /account/credits.
// Always fetched fresh; never mutated locally outside the pricing simulation.
type CreditInfo struct {
	CreditBalance      int       `json:"credit_balance"`
	PlanID             int       `json:"plan_id"`
	PlanName           string    `json:"plan_name"`
	DaysUntilNextReset int       `json:"days_until_next_reset"`
	NextResetTime      time.Time `json:"next_reset_time"`
	BillingCycleEnds   time.Time `json:"billing_cycle_ends"`
}

// ImageAsset is an uploaded or transformed image owned by the backend.
// The client holds a read-only working copy per screen, mutated locally only
// for optimistic deletes.
type ImageAsset struct {
	ID                 int            `json:"id"`
	UserID             int            `json:"user_id"`
	PublicID           string         `json:"public_id"`
	SecureURL          string         `json:"secure_url"`
	Title              string         `json:"title"`
	TransformationType string         `json:"transformation_type"`
	Config             map[string]any `json:"config"`
	CreatedAt          time.Time      `json:"created_at"`
}

// HealthStatus is the normalized result of a health probe.
type HealthStatus struct {
	Service string `json:"service"`
	Healthy bool   `json:"healthy"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

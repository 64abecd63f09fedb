// ABOUTME: Account billing endpoint
// ABOUTME: Credit balance and billing cycle snapshot

package client

import "context"

// Credits fetches the current credit and billing snapshot. Always fetched
// fresh, never cached.
func (c *Client) Credits(ctx context.Context) (*CreditInfo, error) {
	var info CreditInfo
	if err := c.getJSON(ctx, "/account/credits", nil, true, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ABOUTME: Support ticket endpoint
// ABOUTME: Submits tickets as multipart form data

package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
)

// CreateSupportTicket files a support ticket. The backend accepts the fields
// as multipart form data.
func (c *Client) CreateSupportTicket(ctx context.Context, name, subject, message string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"name":    name,
		"subject": subject,
		"message": message,
	} {
		if err := mw.WriteField(field, value); err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/support/ticket", nil, &buf, mw.FormDataContentType(), true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return drain(resp)
}

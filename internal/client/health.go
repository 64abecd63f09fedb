// ABOUTME: Public health-check endpoints
// ABOUTME: Probes the API, Redis, and Cloudinary without authentication

package client

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// Health probes the general backend health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	return c.probe(ctx, "api", "/health")
}

// RedisHealth probes the Redis health endpoint.
func (c *Client) RedisHealth(ctx context.Context) (*HealthStatus, error) {
	return c.probe(ctx, "redis", "/health/redis")
}

// CloudinaryHealth probes the Cloudinary health endpoint.
func (c *Client) CloudinaryHealth(ctx context.Context) (*HealthStatus, error) {
	return c.probe(ctx, "cloudinary", "/health/cloudinary")
}

// probe issues an unauthenticated GET and reads the loose health payload.
// The health endpoints are public, so the bearer token is suppressed.
// A non-2xx answer is a health report, not a probe failure, so it maps
// to an unhealthy status instead of an error.
func (c *Client) probe(ctx context.Context, service, path string) (*HealthStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil, "", false)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &HealthStatus{
				Service: service,
				Status:  "unhealthy",
				Detail:  apiErr.Detail,
			}, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	status := gjson.GetBytes(body, "status").String()
	detail := gjson.GetBytes(body, "detail").String()
	return &HealthStatus{
		Service: service,
		Healthy: status == "healthy" || status == "ok",
		Status:  status,
		Detail:  detail,
	}, nil
}

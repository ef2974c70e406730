// Package identity consults the external user-identity service.
//
// Judge validation requires the user to exist; display names are advisory
// enrichment and never fail a request.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/openhack/arena/pkg/metrics"
)

// User is the identity service's view of an account.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Banned bool   `json:"banned"`
}

// Client resolves user identity against the identity service.
type Client interface {
	// User fetches an account. Returns ErrUserNotFound for unknown ids.
	User(ctx context.Context, userID int64) (User, error)

	// DisplayNames resolves names for many users. Best-effort: callers
	// treat a failure as "no names available".
	DisplayNames(ctx context.Context, userIDs []int64) (map[int64]string, error)
}

// HTTPClient implements Client over the identity service's REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an identity client with configuration options.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) User(ctx context.Context, userID int64) (User, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return User{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamError("identity")
		return User{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return User{}, ErrUserNotFound
	default:
		metrics.RecordUpstreamError("identity")
		return User{}, fmt.Errorf("%w: identity returned %d", ErrUnavailable, resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		metrics.RecordUpstreamError("identity")
		return User{}, fmt.Errorf("%w: decode user: %w", ErrUnavailable, err)
	}
	return u, nil
}

func (c *HTTPClient) DisplayNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(userIDs))
	for _, id := range userIDs {
		u, err := c.User(ctx, id)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		names[id] = u.Name
	}
	return names, nil
}

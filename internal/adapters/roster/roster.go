// Package roster consults the external team-roster service.
//
// The roster owns team identity; this core only reads it and never mutates.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openhack/arena/pkg/metrics"
)

// Team is the roster's view of a team within one hackathon.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Client resolves team identity against the roster service.
type Client interface {
	// TeamExists reports whether the team is registered for the hackathon.
	TeamExists(ctx context.Context, hackathonID, teamID int64) (bool, error)

	// Teams lists the hackathon's registered teams.
	Teams(ctx context.Context, hackathonID int64) ([]Team, error)

	// TeamNames resolves display names for the given teams. Best-effort:
	// callers treat a failure as "no names available".
	TeamNames(ctx context.Context, hackathonID int64, teamIDs []int64) (map[int64]string, error)
}

// HTTPClient implements Client over the roster service's REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a roster client with configuration options.
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

func (c *HTTPClient) Teams(ctx context.Context, hackathonID int64) ([]Team, error) {
	url := fmt.Sprintf("%s/hackathons/%d/teams", c.baseURL, hackathonID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamError("roster")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamError("roster")
		return nil, fmt.Errorf("%w: roster returned %d", ErrUnavailable, resp.StatusCode)
	}

	var teams []Team
	if err := json.NewDecoder(resp.Body).Decode(&teams); err != nil {
		metrics.RecordUpstreamError("roster")
		return nil, fmt.Errorf("%w: decode teams: %w", ErrUnavailable, err)
	}
	return teams, nil
}

func (c *HTTPClient) TeamExists(ctx context.Context, hackathonID, teamID int64) (bool, error) {
	teams, err := c.Teams(ctx, hackathonID)
	if err != nil {
		return false, err
	}
	for _, t := range teams {
		if t.ID == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (c *HTTPClient) TeamNames(ctx context.Context, hackathonID int64, teamIDs []int64) (map[int64]string, error) {
	teams, err := c.Teams(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}
	names := make(map[int64]string, len(teamIDs))
	for _, t := range teams {
		if _, ok := wanted[t.ID]; ok {
			names[t.ID] = t.Name
		}
	}
	return names, nil
}

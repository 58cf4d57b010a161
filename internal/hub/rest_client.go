package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RESTClient implements Client against the hub's REST API using a long-lived
// access token.
type RESTClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// compile-time conformance check
var _ Client = (*RESTClient)(nil)

// NewRESTClient creates a client for the hub at baseURL. A nil http.Client
// falls back to a default with a sane timeout.
func NewRESTClient(baseURL, token string, client *http.Client) *RESTClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RESTClient{baseURL: baseURL, token: token, client: client}
}

// State fetches the current state of an entity.
func (c *RESTClient) State(ctx context.Context, entityID string) (EntityState, error) {
	var state EntityState
	path := "/api/states/" + url.PathEscape(entityID)
	if err := c.getJSON(ctx, path, &state); err != nil {
		return EntityState{}, fmt.Errorf("fetching state of %s: %w", entityID, err)
	}
	return state, nil
}

// History fetches an entity's state samples since the given time. The hub
// returns one series per requested entity; only the first is relevant here.
func (c *RESTClient) History(ctx context.Context, entityID string, since time.Time) ([]StatePoint, error) {
	path := fmt.Sprintf("/api/history/period/%s?filter_entity_id=%s",
		since.UTC().Format(time.RFC3339), url.QueryEscape(entityID))

	var series [][]StatePoint
	if err := c.getJSON(ctx, path, &series); err != nil {
		return nil, fmt.Errorf("fetching history of %s: %w", entityID, err)
	}
	if len(series) == 0 {
		return []StatePoint{}, nil
	}
	return series[0], nil
}

// CallService invokes a hub service with a JSON payload.
func (c *RESTClient) CallService(ctx context.Context, domain, service string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding service payload: %w", err)
	}

	path := fmt.Sprintf("/api/services/%s/%s", url.PathEscape(domain), url.PathEscape(service))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling service %s.%s: %w", domain, service, err)
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("service %s.%s returned status %d", domain, service, resp.StatusCode)
	}

	log.WithFields(logrus.Fields{
		"domain":  domain,
		"service": service,
	}).Debug("Hub service call succeeded")
	return nil
}

// getJSON performs an authorized GET and decodes the JSON response into out.
func (c *RESTClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("hub returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding hub response: %w", err)
	}
	return nil
}

func (c *RESTClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		log.WithError(err).Warn("Failed to close response body")
	}
}

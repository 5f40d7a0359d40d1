package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Project is the JSON contract we consume from the project-core service.
// Only the fields the time-keeper needs today; adding a JSON tag later is
// backward-compatible.
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ProjectClient resolves project ids to display data. Project CRUD lives
// in project-core; this service never owns project rows.
type ProjectClient interface {
	GetProject(ctx context.Context, projectID string) (*Project, error)
}

// httpProjectClient is a thin wrapper over net/http that knows how to
// talk to project-core. It builds the request, unmarshals the response,
// nothing more.
type httpProjectClient struct {
	baseURL string       // e.g. "http://project-core:8080/api/internal"
	http    *http.Client // injected so tests can swap transports
}

// NewProjectHTTPClient is the public constructor used at boot time.
func NewProjectHTTPClient(baseURL string) ProjectClient {
	return &httpProjectClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// GetProject – GET /projects/{id}
func (c *httpProjectClient) GetProject(ctx context.Context, projectID string) (*Project, error) {
	url := fmt.Sprintf("%s/projects/%s", c.baseURL, projectID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build project-core request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("project-core call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("project %s not found", projectID)
	}
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("project-core returned %s – body: %s", resp.Status, raw)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	// Core responds with an envelope: {"message": ..., "data": {...}}.
	// We care only about the object inside "data", and tolerate `id`
	// arriving as either a JSON number or a string.
	type envelope struct {
		Data struct {
			ID    json.Number `json:"id"`
			Name  string      `json:"name"`
			Color string      `json:"color"`
		} `json:"data"`
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}

	return &Project{
		ID:    env.Data.ID.String(),
		Name:  env.Data.Name,
		Color: env.Data.Color,
	}, nil
}

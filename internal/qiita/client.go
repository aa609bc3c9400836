// Package qiita implements the HTTP client for the job-control server.
//
// The plugin only needs a narrow slice of the API: artifact and prep
// template metadata, job lookup, step progress updates, and final job
// completion.
package qiita

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/me/qpshotgun/pkg/model"
)

// Client communicates with the job-control server API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a job-control API client with connection pooling.
// If tlsCfg is nil, the default system TLS configuration is used.
func NewClient(baseURL, token string, tlsCfg *tls.Config, logger *slog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig:     tlsCfg,
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		logger: logger.With("component", "qiita-client"),
	}
}

// Get performs a GET against path and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST with a JSON body and decodes the response into out.
// out may be nil when the response body is not consumed.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, msg)
	}

	if out == nil {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// Artifact fetches an input artifact's file listing and prep references.
func (c *Client) Artifact(ctx context.Context, id string) (*model.ArtifactInfo, error) {
	var info model.ArtifactInfo
	if err := c.Get(ctx, fmt.Sprintf("/qiita_db/artifacts/%s/", id), &info); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", id, err)
	}
	return &info, nil
}

// PrepTemplate fetches the prep information holding the sample-mapping
// file reference.
func (c *Client) PrepTemplate(ctx context.Context, id string) (*model.PrepInfo, error) {
	var info model.PrepInfo
	if err := c.Get(ctx, fmt.Sprintf("/qiita_db/prep_template/%s/", id), &info); err != nil {
		return nil, fmt.Errorf("prep template %s: %w", id, err)
	}
	return &info, nil
}

// JobInfo fetches the command name and parameters of a queued job.
func (c *Client) JobInfo(ctx context.Context, jobID string) (*model.JobInfo, error) {
	var info model.JobInfo
	if err := c.Get(ctx, fmt.Sprintf("/qiita_db/jobs/%s", jobID), &info); err != nil {
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	return &info, nil
}

// UpdateJobStep reports a human-readable progress message for a running
// job. Callers treat it as fire-and-forget; the orchestrator logs failures
// and keeps going.
func (c *Client) UpdateJobStep(ctx context.Context, jobID, msg string) error {
	err := c.Post(ctx, fmt.Sprintf("/qiita_db/jobs/%s/step/", jobID),
		map[string]string{"step": msg}, nil)
	if err != nil {
		return fmt.Errorf("update job step: %w", err)
	}
	c.logger.Debug("job step updated", "job_id", jobID, "step", msg)
	return nil
}

// CompleteJob reports the terminal outcome of a job.
func (c *Client) CompleteJob(ctx context.Context, jobID string, result model.JobResult) error {
	if err := c.Post(ctx, fmt.Sprintf("/qiita_db/jobs/%s/complete/", jobID), result, nil); err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	return nil
}

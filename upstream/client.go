/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */

// Package upstream is the read-only client for the Health Analytics API.
// The dashboard fetches precomputed records and predictions from here; all
// parsing, scoring, and NLP stays on the upstream side.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/skhalid/pulseview/logging"
)

const (
	defaultTimeout   = 10 * time.Second
	retryBaseDelay   = 250 * time.Millisecond
	retryMaxAttempts = 3
)

var logger = logging.Logger(logging.SourceUpstream)

// Client talks to the Health Analytics API. It holds no mutable state
// beyond the HTTP client, so concurrent use is fine.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// getJSON fetches path and decodes the response body into out. Transient
// failures (network errors, 5xx) are retried with fibonacci backoff; 4xx
// responses fail immediately.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	backoff := retry.WithMaxRetries(retryMaxAttempts, retry.NewFibonacci(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			logger.Warn("request failed, retrying", "url", endpoint, "error", err)
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return ErrNotFound
		case resp.StatusCode >= 500:
			logger.Warn("upstream error, retrying", "url", endpoint, "status", resp.StatusCode)
			return retry.RetryableError(fmt.Errorf("upstream returned %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("upstream returned %d for %s", resp.StatusCode, path)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	})
}

// Ping checks API liveness via /api/health.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "healthy" {
		return fmt.Errorf("upstream reports status %q", out.Status)
	}
	return nil
}

// Patients lists all patients.
func (c *Client) Patients(ctx context.Context) ([]Patient, error) {
	var out struct {
		Patients []Patient `json:"patients"`
		Count    int       `json:"count"`
	}
	if err := c.getJSON(ctx, "/api/patients", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching patients: %w", err)
	}
	return out.Patients, nil
}

// Patient fetches a single patient record.
func (c *Client) Patient(ctx context.Context, id int) (*Patient, error) {
	var out Patient
	if err := c.getJSON(ctx, fmt.Sprintf("/api/patients/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the aggregated dashboard payload for a patient.
func (c *Client) Dashboard(ctx context.Context, id int) (*Dashboard, error) {
	var out Dashboard
	if err := c.getJSON(ctx, fmt.Sprintf("/api/patients/%d/dashboard", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LabTrends fetches charting payloads for a patient. labType narrows the
// result to one metric when non-empty.
func (c *Client) LabTrends(ctx context.Context, id int, labType string) ([]LabTrend, error) {
	var query url.Values
	if labType != "" {
		query = url.Values{"type": {labType}}
	}
	var out struct {
		Trends []LabTrend `json:"trends"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/patients/%d/labs/trends", id), query, &out); err != nil {
		return nil, err
	}
	return out.Trends, nil
}

// Predictions fetches stored model outputs for a patient.
func (c *Client) Predictions(ctx context.Context, id int) ([]Prediction, error) {
	var out struct {
		Predictions []Prediction `json:"predictions"`
		Count       int          `json:"count"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/patients/%d/predictions", id), nil, &out); err != nil {
		return nil, err
	}
	return out.Predictions, nil
}

// Anomalies fetches the upstream anomaly analysis for a patient.
func (c *Client) Anomalies(ctx context.Context, id int) (*AnomalyReport, error) {
	var out AnomalyReport
	if err := c.getJSON(ctx, fmt.Sprintf("/api/patients/%d/anomalies", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

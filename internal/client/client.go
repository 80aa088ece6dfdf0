// Package client talks to the VocabDash REST backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Client is an HTTP client of the backend.
// Authenticated calls take the caller's access token; an empty token sends no Authorization header.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
	logger       *zap.Logger
}

// New creates a client. uploadTimeout bounds document uploads and processing,
// which take far longer than the other calls.
func New(baseURL string, timeout, uploadTimeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
		logger:       logger.With(zap.String("component", "api_client")),
	}
}

type response struct {
	header http.Header
	body   []byte
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

// send executes req and reads the whole body. Non-2xx statuses become *APIError.
func (c *Client) send(hc *http.Client, req *http.Request) (*response, error) {
	start := time.Now()
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
	}

	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed", append(fields, zap.Error(err))...)
		return nil, fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read body: %w", err)
	}

	c.logger.Debug("Backend request",
		append(fields,
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)...,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
			Method:     req.Method,
			Path:       req.URL.Path,
		}
	}

	return &response{header: resp.Header, body: body}, nil
}

// call sends an optional JSON payload and decodes a JSON answer into out when out is not nil
func (c *Client) call(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("client: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}

	resp, err := c.send(c.httpClient, req)
	if err != nil {
		return err
	}

	return decode(resp.body, out)
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("client: decode json: %w", err)
	}
	return nil
}

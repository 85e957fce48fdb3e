// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package client provides an A2A protocol client.
package client

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-a2a/a2a-lite"
)

// defaultTimeout is the request timeout of the default HTTP client.
const defaultTimeout = 30 * time.Second

// userAgent is the User-Agent header sent with every request.
const userAgent = "a2a-lite/client " + a2a.Version

// Client is an A2A protocol client bound to a single agent endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	card       *a2a.AgentCard
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewClient creates a new [Client] for the agent at rawURL.
func NewClient(rawURL string) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse agent url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("agent url must be http or https, got %q", rawURL)
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		url:        strings.TrimSuffix(u.String(), "/") + "/",
		logger:     slog.Default(),
		tracer:     otel.Tracer("github.com/go-a2a/a2a-lite/client"),
	}, nil
}

// NewClientFromAgentCard creates a new [Client] from an agent card,
// connecting to the card's URL.
func NewClientFromAgentCard(card *a2a.AgentCard) (*Client, error) {
	if card == nil {
		return nil, fmt.Errorf("agent card must not be nil")
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent card: %w", err)
	}

	c, err := NewClient(card.URL)
	if err != nil {
		return nil, err
	}
	c.card = card
	return c, nil
}

// WithHTTPClient sets the HTTP client to use.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// WithLogger sets the logger to use.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	c.logger = logger
	return c
}

// WithTracerProvider sets the tracer provider to use.
func (c *Client) WithTracerProvider(tp trace.TracerProvider) *Client {
	c.tracer = tp.Tracer("github.com/go-a2a/a2a-lite/client")
	return c
}

// AgentCard returns the agent card the client was built from, or nil if the
// client was created from a bare URL and [Client.FetchAgentCard] has not
// been called.
func (c *Client) AgentCard() *a2a.AgentCard {
	return c.card
}

// FetchAgentCard retrieves the agent's descriptor from the well-known path
// and caches it on the client.
func (c *Client) FetchAgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.FetchAgentCard")
	defer span.End()

	cardURL := c.url + ".well-known/agent.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build agent card request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch agent card: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch agent card: unexpected status %s", resp.Status)
	}

	var card a2a.AgentCard
	if err := json.UnmarshalRead(resp.Body, &card); err != nil {
		return nil, fmt.Errorf("decode agent card: %w", err)
	}
	c.card = &card
	return &card, nil
}

// SendTask submits a task to the agent and returns its completed state.
func (c *Client) SendTask(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.SendTask",
		trace.WithAttributes(attribute.String("a2a.task_id", params.ID)),
	)
	defer span.End()

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid send params: %w", err)
	}

	req := a2a.NewSendTaskRequest(a2a.NewID(uuid.NewString()), params)
	var resp a2a.SendTaskResponse
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("response for task %s carries neither result nor error", params.ID)
	}
	return resp.Result, nil
}

// GetTask retrieves the current state of a task from the agent.
func (c *Client) GetTask(ctx context.Context, params a2a.TaskQueryParams) (*a2a.Task, error) {
	ctx, span := c.tracer.Start(ctx, "a2a.client.GetTask",
		trace.WithAttributes(attribute.String("a2a.task_id", params.ID)),
	)
	defer span.End()

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query params: %w", err)
	}

	req := a2a.NewGetTaskRequest(a2a.NewID(uuid.NewString()), params)
	var resp a2a.GetTaskResponse
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("response for task %s carries neither result nor error", params.ID)
	}
	return resp.Result, nil
}

// call posts a JSON-RPC request and decodes the response into out. Non-2xx
// responses still carry an envelope; out captures it either way.
func (c *Client) call(ctx context.Context, rpcReq, out any) error {
	body, err := json.Marshal(rpcReq)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.UnmarshalRead(resp.Body, out); err != nil {
		return fmt.Errorf("decode response (status %s): %w", resp.Status, err)
	}
	return nil
}

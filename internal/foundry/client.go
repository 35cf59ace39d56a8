// Package foundry provides a typed client for the remote agents service
// (assistants, threads, messages, runs).
package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the agents service client. All response decoding happens
// here; callers only ever see the typed structs.
type Client struct {
	endpoint   string
	apiKey     string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a client for the given project endpoint. The API key
// may be empty when the endpoint is fronted by ambient credentials.
func NewClient(endpoint, apiKey, apiVersion string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiKey:     apiKey,
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateAgent provisions a remote agent with the given model, name, and
// instruction text.
func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPost, c.url("/assistants", nil), req, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// CreateThread opens a fresh conversation thread.
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var thread Thread
	if err := c.do(ctx, http.MethodPost, c.url("/threads", nil), struct{}{}, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// CreateMessage appends a message to the thread.
func (c *Client) CreateMessage(ctx context.Context, threadID string, req CreateMessageRequest) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, c.url("/threads/"+threadID+"/messages", nil), req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateRun starts an asynchronous run of the agent over the thread.
func (c *Client) CreateRun(ctx context.Context, threadID string, req CreateRunRequest) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodPost, c.url("/threads/"+threadID+"/runs", nil), req, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.do(ctx, http.MethodGet, c.url("/threads/"+threadID+"/runs/"+runID, nil), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListMessages returns the thread's messages, newest first.
func (c *Client) ListMessages(ctx context.Context, threadID string) (*MessageList, error) {
	query := url.Values{}
	query.Set("order", "desc")
	var list MessageList
	if err := c.do(ctx, http.MethodGet, c.url("/threads/"+threadID+"/messages", query), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteAgent removes a previously provisioned agent.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) (*AgentDeletion, error) {
	var deletion AgentDeletion
	if err := c.do(ctx, http.MethodDelete, c.url("/assistants/"+agentID, nil), nil, &deletion); err != nil {
		return nil, err
	}
	return &deletion, nil
}

func (c *Client) url(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", c.apiVersion)
	return c.endpoint + path + "?" + query.Encode()
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// setHeaders sets common request headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

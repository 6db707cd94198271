// Package todoapi implements the service.Service interface against the
// remote to-do HTTP API.
package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"todocli/internal/service"
)

// SessionSource supplies the bearer token for authenticated calls and is
// told when the server rejects it. The session manager implements it.
type SessionSource interface {
	Token() (string, bool)
	Invalidate()
}

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	session SessionSource
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a client for the service at baseURL. Every call gets its
// own timeout; a hung request blocks only the initiating action.
func New(baseURL string, timeout time.Duration, sess SessionSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: sess,
		timeout: timeout,
		log:     log,
	}
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type listResponse struct {
	Data []service.Task `json:"data"`
}

type taskResponse struct {
	Data service.Task `json:"data"`
}

type createRequest struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	EndDate   time.Time `json:"endDate"`
}

type createResponse struct {
	Task service.Task `json:"task"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/login", email, password)
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", &service.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if password == "" {
		return "", &service.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	status, body, err := c.do(ctx, http.MethodPost, path, authRequest{Email: email, Password: password}, false)
	if err != nil {
		return "", err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &service.ServerError{Status: status, Message: "malformed response"}
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "invalid credentials"
		}
		return "", &service.ServerError{Status: status, Message: msg}
	}
	return resp.Token, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/", nil, true)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &service.ServerError{Message: "malformed response"}
	}
	if resp.Data == nil {
		return []service.Task{}, nil
	}
	return resp.Data, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	_, body, err := c.do(ctx, http.MethodGet, "/"+id, nil, true)
	if err != nil {
		return service.Task{}, err
	}

	var resp taskResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return service.Task{}, &service.ServerError{Message: "malformed response"}
	}
	return resp.Data, nil
}

// CreateTask implements service.Service. Validation happens before any
// network call; a zero due date defaults to the current time.
func (c *Client) CreateTask(ctx context.Context, title, content string, due time.Time) (service.Task, error) {
	if strings.TrimSpace(title) == "" {
		return service.Task{}, &service.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return service.Task{}, &service.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if due.IsZero() {
		due = time.Now().UTC()
	}

	req := createRequest{Title: title, Content: content, EndDate: due}
	_, body, err := c.do(ctx, http.MethodPost, "/", req, true)
	if err != nil {
		return service.Task{}, err
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return service.Task{}, &service.ServerError{Message: "malformed response"}
	}
	return resp.Task, nil
}

// UpdateTask implements service.Service. Only the supplied fields reach
// the wire; the completion flag can be toggled on its own.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) error {
	if patch.IsEmpty() {
		return &service.ValidationError{Field: "patch", Reason: "no fields to update"}
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return &service.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return &service.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	_, _, err := c.do(ctx, http.MethodPatch, "/"+id, patch, true)
	return err
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/"+id, nil, true)
	return err
}

// do performs one request. Authenticated calls fail immediately with
// ErrNotAuthenticated when no token is held, without touching the
// network; a 401/403 response invalidates the session so the client and
// session manager agree the token is dead.
func (c *Client) do(ctx context.Context, method, path string, payload any, auth bool) (int, []byte, error) {
	var token string
	if auth {
		var ok bool
		token, ok = c.session.Token()
		if !ok {
			return 0, nil, service.ErrNotAuthenticated
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, &service.TransportError{Err: errors.New("request timed out")}
		}
		return 0, nil, &service.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &service.TransportError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, body, nil
	}

	msg := serverMessage(body)
	c.log.Debug().Int("status", resp.StatusCode).Str("message", msg).Msg("api error response")

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if auth {
			// The held token is no longer usable.
			c.session.Invalidate()
			return resp.StatusCode, nil, service.ErrNotAuthenticated
		}
		return resp.StatusCode, nil, &service.ServerError{Status: resp.StatusCode, Message: msg}
	case http.StatusNotFound:
		return resp.StatusCode, nil, service.ErrNotFound
	default:
		return resp.StatusCode, nil, &service.ServerError{Status: resp.StatusCode, Message: msg}
	}
}

// serverMessage extracts the JSON message field from an error payload.
func serverMessage(body []byte) string {
	var p messagePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return ""
	}
	return p.Message
}

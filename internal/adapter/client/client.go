// Package client talks to the task REST API on behalf of the planner.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskplanner/internal/adapter/http/dto"
	"taskplanner/internal/adapter/http/mapper"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/pkg/apierrors"
)

const (
	userEmailHeader = "X-User-Email"
	maxErrorBody    = 64 << 10
)

// ErrUnavailable wraps failures to reach the API at all.
var ErrUnavailable = errors.New("api unavailable")

// TransportError is a non-2xx answer from the API.
type TransportError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *TransportError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api returned %d: %s (%s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap exposes the domain error matching the status, so callers can use errors.Is.
func (e *TransportError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domain.ErrTaskNotFound
	case http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	}
	return nil
}

// ClientError reports whether the API rejected the request itself (4xx).
func (e *TransportError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	email string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetUser sets the email sent as identity on task calls. An empty email signs out.
func (c *Client) SetUser(email string) {
	c.mu.Lock()
	c.email = strings.TrimSpace(email)
	c.mu.Unlock()
}

func (c *Client) User() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.email
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var items []dto.TaskItem
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &items); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, decodeTask(item))
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	var item dto.TaskItem
	if err := c.do(ctx, http.MethodPost, "/tasks", createPayload(input), &item); err != nil {
		return domain.Task{}, err
	}
	return decodeTask(item), nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	var item dto.TaskItem
	if err := c.do(ctx, http.MethodPut, taskPath(taskID), updatePayload(input), &item); err != nil {
		return domain.Task{}, err
	}
	return decodeTask(item), nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID uint64) error {
	return c.do(ctx, http.MethodDelete, taskPath(taskID), nil, nil)
}

func (c *Client) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}, &resp)
	if err != nil {
		return domain.User{}, err
	}
	return mapper.FromUserItem(resp.User), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return domain.User{}, err
	}
	return mapper.FromUserItem(resp.User), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email := c.User(); email != "" {
		req.Header.Set(userEmailHeader, email)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	out := &TransportError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body apierrors.JsonErr
	if err := json.Unmarshal(raw, &body); err == nil && body.ErrDetails.Message != "" {
		out.Message = body.ErrDetails.Message
		out.Field = body.ErrDetails.Field
	}
	return out
}

// decodeTask keeps whatever part of the payload is valid.
func decodeTask(item dto.TaskItem) domain.Task {
	task, err := mapper.FromTaskItem(item)
	if err != nil {
		zap.L().Warn("task payload partially invalid", zap.Uint64("task_id", item.ID), zap.Error(err))
	}
	return task
}

func taskPath(taskID uint64) string {
	return "/tasks/" + strconv.FormatUint(taskID, 10)
}

var (
	_ ports.TaskGateway = (*Client)(nil)
	_ ports.AuthGateway = (*Client)(nil)
)

package apiclient

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

	"taskboard/internal/models"

	"github.com/google/uuid"
)

// Client talks to the remote task API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New builds a client for baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const (
	opRegister   = "register"
	opLogin      = "login"
	opListTasks  = "list tasks"
	opCreateTask = "create task"
	opUpdateTask = "update task"
	opDeleteTask = "delete task"

	headerRequestID = "X-Request-ID"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Register creates an account. The response body is ignored beyond the
// status check; callers log in afterwards.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, opRegister, MsgRegistrationFailed, http.MethodPost, "/register", credentials{username, password}, nil)
}

// Login returns the authenticated user.
func (c *Client) Login(ctx context.Context, username, password string) (models.User, error) {
	var u models.User
	err := c.do(ctx, opLogin, MsgLoginFailed, http.MethodPost, "/login", credentials{username, password}, &u)
	return u, err
}

// ListTasks returns the user's tasks in the order the API sends them.
func (c *Client) ListTasks(ctx context.Context, userID models.ID) ([]models.Task, error) {
	path := "/tasks?" + url.Values{"userId": {userID.String()}}.Encode()
	var tasks []models.Task
	if err := c.do(ctx, opListTasks, MsgLoadTasksFailed, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// CreateTask posts a task without an id and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	task.ID = 0
	var out models.Task
	err := c.do(ctx, opCreateTask, MsgSaveTaskFailed, http.MethodPost, "/tasks", task, &out)
	return out, err
}

// UpdateTask replaces task id with the given fields.
func (c *Client) UpdateTask(ctx context.Context, id models.ID, task models.Task) (models.Task, error) {
	var out models.Task
	err := c.do(ctx, opUpdateTask, MsgSaveTaskFailed, http.MethodPut, "/tasks/"+id.String(), task, &out)
	return out, err
}

// DeleteTask removes task id.
func (c *Client) DeleteTask(ctx context.Context, id models.ID) error {
	return c.do(ctx, opDeleteTask, MsgDeleteTaskFailed, http.MethodDelete, "/tasks/"+id.String(), nil, nil)
}

// do sends one request. in is JSON-encoded when non-nil; a 2xx body is
// decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, defaultMsg, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw, defaultMsg)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failure body.
func errorMessage(raw []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(eb.Error); msg != "" {
		return msg
	}
	return fallback
}

// Package apitest runs an in-memory stand-in for the remote task API so the
// client can be tested end to end. Behaviour follows the documented
// contract: JSON bodies, {"error": "..."} on failure.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"taskboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Request is one call the fake API received.
type Request struct {
	ID     string // X-Request-ID header
	Method string
	Path   string // includes the raw query, if any
	Body   []byte
}

// Fault replaces the next response of a route.
type Fault struct {
	Status int
	Body   string // raw body; empty means no body
}

type user struct {
	id       models.ID
	username string
	hash     []byte
}

// Server is the fake API. Routes are keyed as "METHOD /path" with gin path
// params, e.g. "PUT /tasks/:id".
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]user
	tasks    map[models.ID]models.Task
	order    []models.ID
	nextUser models.ID
	nextTask models.ID
	faults   map[string][]Fault
	gates    map[string]chan struct{}
	requests []Request
}

// NewServer starts a fake API; callers must Close it.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:    make(map[string]user),
		tasks:    make(map[models.ID]models.Task),
		nextUser: 1,
		nextTask: 1,
		faults:   make(map[string][]Fault),
		gates:    make(map[string]chan struct{}),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.record)
	api := r.Group("/api")
	{
		api.POST("/register", s.intercept("POST /register"), s.register)
		api.POST("/login", s.intercept("POST /login"), s.login)
		api.GET("/tasks", s.intercept("GET /tasks"), s.listTasks)
		api.POST("/tasks", s.intercept("POST /tasks"), s.createTask)
		api.PUT("/tasks/:id", s.intercept("PUT /tasks/:id"), s.updateTask)
		api.DELETE("/tasks/:id", s.intercept("DELETE /tasks/:id"), s.deleteTask)
	}

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the value to hand to apiclient.New.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// AddUser registers a user directly and returns it.
func (s *Server) AddUser(username, password string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user{id: s.nextUser, username: username, hash: hash}
	s.nextUser++
	s.users[username] = u
	return models.User{ID: u.id, Username: u.username}
}

// AddTask stores t (assigning an id) and returns it.
func (s *Server) AddTask(t models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(t)
}

// SetStatus changes a stored task's status behind the client's back.
func (s *Server) SetStatus(id models.ID, st models.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		t.Status = st
		s.tasks[id] = t
	}
}

// Task returns the stored task.
func (s *Server) Task(id models.ID) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

// FailNext queues a fault for route.
func (s *Server) FailNext(route string, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = append(s.faults[route], f)
}

// Gate makes the next request on route block until the returned release
// func is called. The request is recorded before it blocks.
func (s *Server) Gate(route string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[route] = ch
	s.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request matching method, if any.
func (s *Server) Last(method string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Method == method {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

func (s *Server) insertLocked(t models.Task) models.Task {
	t.ID = s.nextTask
	s.nextTask++
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return t
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		ID:     c.GetHeader("X-Request-ID"),
		Method: c.Request.Method,
		Path:   c.Request.URL.RequestURI(),
		Body:   body,
	})
	s.mu.Unlock()
	c.Next()
}

// intercept applies gates and queued faults for route.
func (s *Server) intercept(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		gate := s.gates[route]
		delete(s.gates, route)
		s.mu.Unlock()
		if gate != nil {
			<-gate
		}

		s.mu.Lock()
		var (
			f   Fault
			hit bool
		)
		if q := s.faults[route]; len(q) > 0 {
			f, hit = q[0], true
			s.faults[route] = q[1:]
		}
		s.mu.Unlock()

		if hit {
			c.Data(f.Status, "application/json", []byte(f.Body))
			c.Abort()
			return
		}
		c.Next()
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil || in.Username == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}
	s.mu.Lock()
	_, exists := s.users[in.Username]
	s.mu.Unlock()
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}
	u := s.AddUser(in.Username, in.Password)
	c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c *gin.Context) {
	var in credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	u, ok := s.users[in.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	// the reference API has no tokens; the header only helps when debugging
	c.Header("X-Session-Hint", uuid.NewString())
	c.JSON(http.StatusOK, models.User{ID: u.id, Username: u.username})
}

func (s *Server) listTasks(c *gin.Context) {
	uid, err := models.ParseID(c.Query("userId"))
	if err != nil || uid == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}
	s.mu.Lock()
	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.tasks[id]; ok && t.UserID == uid {
			out = append(out, t)
		}
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

// Create and update read every one of these keys and fail without them.
var (
	createKeys = []string{"title", "description", "dueDate", "priority", "status", "userId"}
	updateKeys = []string{"title", "description", "dueDate", "priority", "status"}
)

// bindTask decodes the body into a task after checking that every key in
// required is present.
func bindTask(c *gin.Context, required []string) (models.Task, bool) {
	body, err := c.GetRawData()
	var raw map[string]json.RawMessage
	if err == nil {
		err = json.Unmarshal(body, &raw)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Task{}, false
	}
	for _, k := range required {
		if _, ok := raw[k]; !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing field: " + k})
			return models.Task{}, false
		}
	}
	var t models.Task
	if err := json.Unmarshal(body, &t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Task{}, false
	}
	return t, true
}

func (s *Server) createTask(c *gin.Context) {
	in, ok := bindTask(c, createKeys)
	if !ok {
		return
	}
	s.mu.Lock()
	t := s.insertLocked(in)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	in, ok := bindTask(c, updateKeys)
	if !ok {
		return
	}
	s.mu.Lock()
	cur, exists := s.tasks[id]
	if exists {
		cur.Title = in.Title
		cur.Description = in.Description
		cur.DueDate = in.DueDate
		cur.Priority = in.Priority
		cur.Status = in.Status
		s.tasks[id] = cur
	}
	s.mu.Unlock()
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.tasks, id)
	i := sort.Search(len(s.order), func(i int) bool { return s.order[i] >= id })
	if i < len(s.order) && s.order[i] == id {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func (s *Server) pathID(c *gin.Context) (models.ID, bool) {
	n, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return models.ID(n), true
}

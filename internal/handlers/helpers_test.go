package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskboard/internal/apiclient"
	"taskboard/internal/apitest"
	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/internal/repository/db"
	"taskboard/internal/service"
	"taskboard/internal/view"

	"github.com/gin-gonic/gin"
)

type fixture struct {
	api      *apitest.Server
	repos    *repository.Repository
	notifier *service.Notifier
	view     *view.Controller
	services *service.Service
	router   *gin.Engine
}

// newFixture wires the whole client against a fake API and a temporary
// SQLite file.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := apitest.NewServer()
	t.Cleanup(api.Close)

	conn, err := db.InitDB(filepath.Join(t.TempDir(), "client.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return build(t, api, repository.NewRepository(conn))
}

// newFixtureWithStorage starts a second client sharing prev's API and
// durable storage.
func newFixtureWithStorage(t *testing.T, prev *fixture) *fixture {
	t.Helper()
	return build(t, prev.api, prev.repos)
}

func build(t *testing.T, api *apitest.Server, repos *repository.Repository) *fixture {
	t.Helper()

	log := logger.Nop()
	state := service.NewState()
	notifier := service.NewNotifier(time.Hour, log)
	v := view.NewController(state, notifier, log)
	notifier.OnChange(v.Render)

	services, err := service.NewService(service.Deps{
		State:         state,
		Notifier:      notifier,
		Repos:         repos,
		API:           apiclient.New(api.BaseURL()),
		View:          v,
		ConfirmSecret: "test-secret",
		ConfirmTTL:    time.Minute,
		Log:           log,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	services.Init(context.Background())

	return &fixture{
		api:      api,
		repos:    repos,
		notifier: notifier,
		view:     v,
		services: services,
		router:   NewHandler(services, v, log).InitRoutes(),
	}
}

func (f *fixture) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// submit performs a form action and expects the redirect back to the page.
func (f *fixture) submit(t *testing.T, method, path string, form url.Values) {
	t.Helper()
	w := f.do(t, method, path, form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("%s %s: status=%d, body=%s", method, path, w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("%s %s: redirect to %q, want /", method, path, loc)
	}
}

func (f *fixture) page(t *testing.T) view.Page {
	t.Helper()
	w := f.do(t, http.MethodGet, "/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /state: status=%d", w.Code)
	}
	var p view.Page
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return p
}

func (f *fixture) notice(t *testing.T) string {
	t.Helper()
	n, ok := f.notifier.Current()
	if !ok {
		t.Fatalf("expected an active notice")
	}
	return n.Message
}

// login seeds alice with tasks and signs in through the form.
func (f *fixture) login(t *testing.T, tasks ...models.Task) models.User {
	t.Helper()
	u := f.api.AddUser("alice", "pw")
	for _, task := range tasks {
		task.UserID = u.ID
		f.api.AddTask(task)
	}
	f.submit(t, http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"pw"}})
	if p := f.page(t); p.Panel != "dashboard" {
		t.Fatalf("login did not reach the dashboard: %+v", p)
	}
	return u
}

func countRequests(api *apitest.Server, method, prefix string) int {
	n := 0
	for _, r := range api.Requests() {
		if r.Method == method && strings.HasPrefix(r.Path, prefix) {
			n++
		}
	}
	return n
}

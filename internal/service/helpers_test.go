package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskboard/internal/apiclient"
	"taskboard/internal/apitest"
	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// memStorage is an in-memory repository.LocalStorage.
type memStorage struct {
	mu     sync.Mutex
	items  map[string]string
	setErr error
}

func newMemStorage() *memStorage {
	return &memStorage{items: make(map[string]string)}
}

func (m *memStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memStorage) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = value
	return nil
}

func (m *memStorage) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

var _ repository.LocalStorage = (*memStorage)(nil)

// fakeView records renders (with the task list at render time) and panel
// switches.
type fakeView struct {
	state *State

	mu      sync.Mutex
	renders [][]models.Task
	panel   string
	ch      chan []models.Task
}

func newFakeView(state *State) *fakeView {
	return &fakeView{state: state, ch: make(chan []models.Task, 32)}
}

func (v *fakeView) Render() {
	tasks := v.state.Tasks()
	v.mu.Lock()
	v.renders = append(v.renders, tasks)
	v.mu.Unlock()
	select {
	case v.ch <- tasks:
	default:
	}
}

func (v *fakeView) ShowLogin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = "login"
}

func (v *fakeView) ShowDashboard() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = "dashboard"
}

func (v *fakeView) Panel() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panel
}

func (v *fakeView) RenderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.renders)
}

type fixture struct {
	api      *apitest.Server
	state    *State
	storage  *memStorage
	view     *fakeView
	notifier *Notifier
	confirms *Confirmations
	session  *SessionStore
	tasks    *TaskStore
	auth     *AuthFlow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := apitest.NewServer()
	t.Cleanup(api.Close)

	state := NewState()
	storage := newMemStorage()
	view := newFakeView(state)
	notifier := NewNotifier(time.Hour, logger.Nop())
	confirms, err := NewConfirmations("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewConfirmations: %v", err)
	}
	client := apiclient.New(api.BaseURL())
	log := logger.Nop()

	session := NewSessionStore(state, storage, log)
	tasks := NewTaskStore(state, client, notifier, confirms, view, log)
	auth := NewAuthFlow(client, session, tasks, notifier, view, log)

	return &fixture{
		api:      api,
		state:    state,
		storage:  storage,
		view:     view,
		notifier: notifier,
		confirms: confirms,
		session:  session,
		tasks:    tasks,
		auth:     auth,
	}
}

// signIn seeds a user and logs in directly through the session store.
func (f *fixture) signIn(t *testing.T) models.User {
	t.Helper()
	u := f.api.AddUser("alice", "pw")
	if err := f.session.Establish(context.Background(), u); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	return u
}

func (f *fixture) noticeText(t *testing.T) string {
	t.Helper()
	n, ok := f.notifier.Current()
	if !ok {
		t.Fatalf("expected an active notice")
	}
	return n.Message
}

var errBoom = errors.New("boom")

package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// AuthAPI is the part of the remote API used for signing in.
type AuthAPI interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (models.User, error)
}

// TaskAPI is the part of the remote API used for tasks.
type TaskAPI interface {
	ListTasks(ctx context.Context, userID models.ID) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	UpdateTask(ctx context.Context, id models.ID, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, id models.ID) error
}

// API is the whole remote API surface.
type API interface {
	AuthAPI
	TaskAPI
}

// Renderer redraws the UI from current state.
type Renderer interface {
	Render()
}

// Navigator switches the top-level panel.
type Navigator interface {
	ShowLogin()
	ShowDashboard()
}

// Notices surfaces transient user-facing messages.
type Notices interface {
	Info(msg string)
	Error(msg string)
}

// Confirmer issues and checks delete confirmations.
type Confirmer interface {
	Issue(id models.ID) (string, error)
	Verify(token string, id models.ID) error
}

// Authentication is what the HTTP layer needs for sign-in flows.
type Authentication interface {
	Init(ctx context.Context)
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

// TaskManager is what the HTTP layer needs for task interactions.
type TaskManager interface {
	Refresh(ctx context.Context) error
	Save(ctx context.Context, task models.Task) (bool, error)
	Remove(ctx context.Context, id models.ID, confirmation string) error
	ToggleStatus(ctx context.Context, id models.ID) error
	Find(id models.ID) (models.Task, bool)
}

// Service aggregates the client's stores and flows.
type Service struct {
	Authentication
	TaskManager

	Session  *SessionStore
	Notices  Notices
	Confirms Confirmer
}

// Deps carries what NewService needs. State and Notifier are created by the
// caller first so the view can read them before the stores exist.
type Deps struct {
	State    *State
	Notifier *Notifier
	Repos    *repository.Repository
	API      API
	View     interface {
		Renderer
		Navigator
	}
	ConfirmSecret string
	ConfirmTTL    time.Duration
	Log           *logger.Logger
}

// NewService wires the stores together.
func NewService(d Deps) (*Service, error) {
	confirms, err := NewConfirmations(d.ConfirmSecret, d.ConfirmTTL)
	if err != nil {
		return nil, fmt.Errorf("init confirmations: %w", err)
	}

	session := NewSessionStore(d.State, d.Repos.Storage, d.Log)
	tasks := NewTaskStore(d.State, d.API, d.Notifier, confirms, d.View, d.Log)
	auth := NewAuthFlow(d.API, session, tasks, d.Notifier, d.View, d.Log)

	return &Service{
		Authentication: auth,
		TaskManager:    tasks,
		Session:        session,
		Notices:        d.Notifier,
		Confirms:       confirms,
	}, nil
}

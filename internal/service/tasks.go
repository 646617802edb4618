package service

import (
	"context"
	"errors"

	"taskboard/internal/apiclient"
	"taskboard/internal/logger"
	"taskboard/internal/models"
)

// Notices shown by the task store.
const (
	msgLoadFailed    = "Failed to load tasks"
	msgSaved         = "Task saved successfully"
	msgSaveFailed    = "Failed to save task"
	msgServerError   = "Server error"
	msgDeleted       = "Task deleted"
	msgDeleteFailed  = "Failed to delete task"
	msgToggleFailed  = "Failed to update status"
	msgNotConfirmed  = "Deletion was not confirmed"
	msgSessionNeeded = "Please log in first"
)

var (
	// ErrNoSession is returned by task operations when nobody is signed in.
	ErrNoSession = errors.New("no active session")
	// ErrTaskNotFound is returned when an id is not in the cached list.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskStore caches the signed-in user's tasks and performs task operations
// against the API.
type TaskStore struct {
	state   *State
	api     TaskAPI
	notices Notices
	confirm Confirmer
	render  Renderer
	log     *logger.Logger
}

func NewTaskStore(state *State, api TaskAPI, notices Notices, confirm Confirmer, render Renderer, log *logger.Logger) *TaskStore {
	return &TaskStore{
		state:   state,
		api:     api,
		notices: notices,
		confirm: confirm,
		render:  render,
		log:     log,
	}
}

// Refresh replaces the cache with the API's list. On failure the cache is
// left as it was.
func (s *TaskStore) Refresh(ctx context.Context) error {
	u, ok := s.state.Session()
	if !ok {
		return ErrNoSession
	}

	tasks, err := s.api.ListTasks(ctx, u.ID)
	if err != nil {
		s.fail("task_refresh_failed", err, apiclient.UserMessage(err, msgLoadFailed), "user_id", u.ID)
		return err
	}

	if s.state.replaceTasks(u.ID, tasks) {
		s.render.Render()
	}
	return nil
}

// Save creates task when it has no id and updates it otherwise. On success
// it refreshes from the API and reports that the editor can close.
func (s *TaskStore) Save(ctx context.Context, task models.Task) (bool, error) {
	u, ok := s.state.Session()
	if !ok {
		s.notices.Error(msgSessionNeeded)
		return false, ErrNoSession
	}

	var err error
	if task.ID == 0 {
		task.UserID = u.ID
		task.Status = models.StatusPending
		_, err = s.api.CreateTask(ctx, task)
	} else {
		_, err = s.api.UpdateTask(ctx, task.ID, task)
	}
	if err != nil {
		msg := msgSaveFailed
		if apiclient.IsNetwork(err) {
			msg = msgServerError
		}
		s.fail("task_save_failed", err, msg, "task_id", task.ID)
		return false, err
	}

	_ = s.Refresh(ctx)
	s.notices.Info(msgSaved)
	return true, nil
}

// Remove deletes task id. confirmation must be a token issued for id by the
// delete prompt; without it nothing is sent.
func (s *TaskStore) Remove(ctx context.Context, id models.ID, confirmation string) error {
	if _, ok := s.state.Session(); !ok {
		s.notices.Error(msgSessionNeeded)
		return ErrNoSession
	}
	if err := s.confirm.Verify(confirmation, id); err != nil {
		if s.log != nil {
			s.log.Infow("task_delete_unconfirmed", "task_id", id, "err", err)
		}
		s.notices.Error(msgNotConfirmed)
		return ErrNotConfirmed
	}

	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.fail("task_delete_failed", err, msgDeleteFailed, "task_id", id)
		return err
	}

	_ = s.Refresh(ctx)
	s.notices.Info(msgDeleted)
	return nil
}

// ToggleStatus flips a task between pending and completed. The cache and
// the view change before the request is sent; if the request fails the
// cache is reconciled by a refresh rather than rolled back.
func (s *TaskStore) ToggleStatus(ctx context.Context, id models.ID) error {
	flipped, ok := s.state.mutateTask(id, func(t *models.Task) {
		t.Status = t.Status.Toggled()
	})
	if !ok {
		return nil
	}
	s.render.Render()

	if _, err := s.api.UpdateTask(ctx, id, flipped); err != nil {
		s.fail("task_toggle_failed", err, msgToggleFailed, "task_id", id, "status", flipped.Status)
		// the flip is already shown; reconcile even if ctx was cancelled
		_ = s.Refresh(context.WithoutCancel(ctx))
		return err
	}
	return nil
}

// Find returns the cached task with the given id.
func (s *TaskStore) Find(id models.ID) (models.Task, bool) {
	return s.state.Task(id)
}

func (s *TaskStore) fail(event string, err error, msg string, kv ...interface{}) {
	if s.log != nil {
		s.log.Errorw(event, append([]interface{}{"err", err, "network", apiclient.IsNetwork(err)}, kv...)...)
	}
	s.notices.Error(msg)
}

package service

import (
	"sync"

	"taskboard/internal/models"
)

// State is the client's application state: who is signed in and that user's
// tasks. One instance is created at start-up and shared by the stores and
// the view. Only SessionStore and TaskStore write to it.
type State struct {
	mu      sync.RWMutex
	session *models.User
	tasks   []models.Task
}

func NewState() *State {
	return &State{}
}

// Session returns the signed-in user, if any.
func (s *State) Session() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.User{}, false
	}
	return *s.session, true
}

// Tasks returns a copy of the cached task list.
func (s *State) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task looks up a cached task by id.
func (s *State) Task(id models.ID) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (s *State) setSession(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &u
}

// reset drops the session and the tasks together.
func (s *State) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.tasks = nil
}

// replaceTasks installs a freshly fetched list, unless the session changed
// while the fetch was in flight.
func (s *State) replaceTasks(owner models.ID, tasks []models.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.ID != owner {
		return false
	}
	s.tasks = append([]models.Task(nil), tasks...)
	return true
}

// mutateTask applies fn to the cached task with the given id and returns
// the updated copy.
func (s *State) mutateTask(id models.ID, fn func(*models.Task)) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			fn(&s.tasks[i])
			return s.tasks[i], true
		}
	}
	return models.Task{}, false
}

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// SessionKey is the storage key holding the serialized current user.
const SessionKey = "currentUser"

// SessionStore owns the signed-in user and its durable copy. It never talks
// to the network.
type SessionStore struct {
	state   *State
	storage repository.LocalStorage
	log     *logger.Logger
}

func NewSessionStore(state *State, storage repository.LocalStorage, log *logger.Logger) *SessionStore {
	return &SessionStore{state: state, storage: storage, log: log}
}

// Restore loads a persisted user. It returns true when a well-formed session
// was found and installed; a malformed record is discarded.
func (s *SessionStore) Restore(ctx context.Context) (bool, error) {
	raw, ok, err := s.storage.GetItem(ctx, SessionKey)
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return false, nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || !u.Valid() {
		if s.log != nil {
			s.log.Warnw("session_record_malformed", "key", SessionKey, "err", err)
		}
		if rmErr := s.storage.RemoveItem(ctx, SessionKey); rmErr != nil && s.log != nil {
			s.log.Errorw("session_record_remove_failed", "err", rmErr)
		}
		return false, nil
	}

	s.state.setSession(u)
	return true, nil
}

// Establish makes u the current session and persists it. The in-memory
// session is set even if persisting fails; the error is returned so the
// caller can report it.
func (s *SessionStore) Establish(ctx context.Context, u models.User) error {
	s.state.setSession(u)

	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.SetItem(ctx, SessionKey, string(b)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear ends the session, empties the task cache and removes the record.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.state.reset()
	if err := s.storage.RemoveItem(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the signed-in user, if any.
func (s *SessionStore) Current() (models.User, bool) {
	return s.state.Session()
}

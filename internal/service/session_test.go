package service

import (
	"context"
	"testing"

	"taskboard/internal/logger"
	"taskboard/internal/models"
)

func TestSessionStore_RestoreWithoutRecord(t *testing.T) {
	s := NewSessionStore(NewState(), newMemStorage(), logger.Nop())

	ok, err := s.Restore(context.Background())
	if err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}
	if _, active := s.Current(); active {
		t.Fatalf("no session should be active")
	}
}

func TestSessionStore_EstablishSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	u := models.User{ID: 3, Username: "alice"}

	if err := NewSessionStore(NewState(), storage, logger.Nop()).Establish(ctx, u); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if raw := storage.items[SessionKey]; raw != `{"id":3,"username":"alice"}` {
		t.Fatalf("unexpected persisted record %q", raw)
	}

	// a new process: fresh state, same storage
	restored := NewSessionStore(NewState(), storage, logger.Nop())
	ok, err := restored.Restore(ctx)
	if err != nil || !ok {
		t.Fatalf("expected resume, got ok=%v err=%v", ok, err)
	}
	if got, _ := restored.Current(); got != u {
		t.Fatalf("got %+v, want %+v", got, u)
	}
}

func TestSessionStore_ClearThenRestoreYieldsNoSession(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	state := NewState()
	s := NewSessionStore(state, storage, logger.Nop())

	_ = s.Establish(ctx, models.User{ID: 1, Username: "bob"})
	state.replaceTasks(1, []models.Task{{ID: 1, UserID: 1, Title: "t"}})

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(state.Tasks()) != 0 {
		t.Fatalf("tasks must be empty without a session")
	}

	ok, err := NewSessionStore(NewState(), storage, logger.Nop()).Restore(ctx)
	if err != nil || ok {
		t.Fatalf("expected no session after logout, got ok=%v err=%v", ok, err)
	}
}

func TestSessionStore_MalformedRecordDiscarded(t *testing.T) {
	cases := map[string]string{
		"not_json":     `{{{`,
		"missing_id":   `{"username":"x"}`,
		"missing_name": `{"id":4}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			storage := newMemStorage()
			storage.items[SessionKey] = raw
			s := NewSessionStore(NewState(), storage, logger.Nop())

			ok, err := s.Restore(context.Background())
			if err != nil || ok {
				t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
			}
			if _, still := storage.items[SessionKey]; still {
				t.Fatalf("malformed record should be removed")
			}
		})
	}
}

func TestSessionStore_EstablishPersistFailureKeepsMemorySession(t *testing.T) {
	storage := newMemStorage()
	storage.setErr = errBoom
	s := NewSessionStore(NewState(), storage, logger.Nop())

	err := s.Establish(context.Background(), models.User{ID: 9, Username: "z"})
	if err == nil {
		t.Fatalf("expected persist error")
	}
	if _, ok := s.Current(); !ok {
		t.Fatalf("session should still be active in memory")
	}
}

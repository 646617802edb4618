package service

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"taskboard/internal/logger"
)

func TestNotifier_AutoDismiss(t *testing.T) {
	n := NewNotifier(30*time.Millisecond, logger.Nop())
	var changes atomic.Int32
	n.OnChange(func() { changes.Add(1) })

	n.Info("Task saved successfully")
	got, ok := n.Current()
	if !ok || got.Message != "Task saved successfully" || got.Kind != NoticeInfo {
		t.Fatalf("unexpected notice %+v", got)
	}

	// one callback for the show, one for the dismissal
	deadline := time.Now().Add(2 * time.Second)
	for changes.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("notice was not dismissed, %d callbacks", changes.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, ok := n.Current(); ok {
		t.Fatalf("notice should be gone")
	}
}

func TestNotifier_NewerReplacesOlder(t *testing.T) {
	n := NewNotifier(time.Hour, logger.Nop())

	n.Info("first")
	first, _ := n.Current()
	n.Error("second")

	got, ok := n.Current()
	if !ok || got.Message != "second" || got.Kind != NoticeError {
		t.Fatalf("unexpected notice %+v", got)
	}

	// a late dismissal for the replaced notice is ignored
	n.Dismiss(first.ID)
	if got, ok := n.Current(); !ok || got.Message != "second" {
		t.Fatalf("newer notice should survive, got %+v", got)
	}

	n.Dismiss(got.ID)
	if _, ok := n.Current(); ok {
		t.Fatalf("expected no notice after dismiss")
	}
}

func TestNotifier_ErrorLoggedAtWarn(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(time.Hour, logger.New(logger.WarnLevel, &buf))

	n.Info("Task deleted")
	n.Error("Failed to delete task")

	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "notice_error") {
		t.Fatalf("expected a warn line for the error notice, got %q", out)
	}
	if strings.Contains(out, "notice_info") {
		t.Fatalf("info notices stay below warn, got %q", out)
	}
}

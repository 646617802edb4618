package service

import (
	"sync"
	"time"

	"taskboard/internal/logger"

	"github.com/google/uuid"
)

type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a transient message shown to the user.
type Notice struct {
	ID        string
	Message   string
	Kind      NoticeKind
	ExpiresAt time.Time
}

// Notifier keeps at most one active notice and dismisses it after a fixed
// duration. A newer notice replaces the current one.
type Notifier struct {
	duration time.Duration
	log      *logger.Logger

	mu       sync.Mutex
	current  *Notice
	timer    *time.Timer
	onChange []func()
}

func NewNotifier(duration time.Duration, log *logger.Logger) *Notifier {
	return &Notifier{duration: duration, log: log}
}

// OnChange registers fn to run whenever a notice appears or is dismissed.
func (n *Notifier) OnChange(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = append(n.onChange, fn)
}

// Info shows an informational notice.
func (n *Notifier) Info(msg string) {
	n.show(msg, NoticeInfo)
}

// Error shows a failure notice.
func (n *Notifier) Error(msg string) {
	n.show(msg, NoticeError)
}

// Current returns the active notice, if any.
func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

// Dismiss removes the notice with the given id if it is still active.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	if n.current == nil || n.current.ID != id {
		n.mu.Unlock()
		return
	}
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	hooks := n.hooksLocked()
	n.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (n *Notifier) show(msg string, kind NoticeKind) {
	notice := Notice{
		ID:        uuid.NewString(),
		Message:   msg,
		Kind:      kind,
		ExpiresAt: time.Now().Add(n.duration),
	}
	if n.log != nil {
		if kind == NoticeError {
			n.log.Warnw("notice_error", "message", msg)
		} else {
			n.log.Debugw("notice_info", "message", msg)
		}
	}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = &notice
	n.timer = time.AfterFunc(n.duration, func() { n.Dismiss(notice.ID) })
	hooks := n.hooksLocked()
	n.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (n *Notifier) hooksLocked() []func() {
	return append([]func(){}, n.onChange...)
}

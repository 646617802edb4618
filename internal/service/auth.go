package service

import (
	"context"
	"fmt"

	"taskboard/internal/apiclient"
	"taskboard/internal/logger"
)

const msgBackendDown = "Server error. Is the backend running?"

// AuthFlow drives sign-in, registration and sign-out, and the start-up
// decision between the login screen and the dashboard.
type AuthFlow struct {
	api     AuthAPI
	session *SessionStore
	tasks   *TaskStore
	notices Notices
	nav     Navigator
	log     *logger.Logger
}

func NewAuthFlow(api AuthAPI, session *SessionStore, tasks *TaskStore, notices Notices, nav Navigator, log *logger.Logger) *AuthFlow {
	return &AuthFlow{api: api, session: session, tasks: tasks, notices: notices, nav: nav, log: log}
}

// Init restores a persisted session: on success it shows the dashboard and
// loads tasks, otherwise it shows the login form.
func (a *AuthFlow) Init(ctx context.Context) {
	resumed, err := a.session.Restore(ctx)
	if err != nil && a.log != nil {
		a.log.Errorw("session_restore_failed", "err", err)
	}
	if !resumed {
		a.nav.ShowLogin()
		return
	}
	if u, ok := a.session.Current(); ok && a.log != nil {
		a.log.Infow("session_resumed", "user_id", u.ID, "username", u.Username)
	}
	a.nav.ShowDashboard()
	_ = a.tasks.Refresh(ctx)
}

// Login authenticates and, on success, opens the dashboard. On failure the
// session stays unset and a notice carries the reason.
func (a *AuthFlow) Login(ctx context.Context, username, password string) error {
	u, err := a.api.Login(ctx, username, password)
	if err != nil {
		if a.log != nil {
			a.log.Infow("auth_login_failed", "username", username, "err", err)
		}
		a.notices.Error(apiclient.UserMessage(err, msgBackendDown))
		return err
	}

	if err := a.session.Establish(ctx, u); err != nil && a.log != nil {
		// still signed in for this run; only the resume-after-restart is lost
		a.log.Errorw("session_persist_failed", "user_id", u.ID, "err", err)
	}
	a.nav.ShowDashboard()
	a.notices.Info(fmt.Sprintf("Welcome back, %s!", u.Username))
	_ = a.tasks.Refresh(ctx)
	return nil
}

// Register creates the account and then logs in with the same credentials.
func (a *AuthFlow) Register(ctx context.Context, username, password string) error {
	if err := a.api.Register(ctx, username, password); err != nil {
		if a.log != nil {
			a.log.Infow("auth_register_failed", "username", username, "err", err)
		}
		a.notices.Error(apiclient.UserMessage(err, msgBackendDown))
		return err
	}
	return a.Login(ctx, username, password)
}

// Logout clears the session and returns to the login form.
func (a *AuthFlow) Logout(ctx context.Context) error {
	err := a.session.Clear(ctx)
	if err != nil && a.log != nil {
		a.log.Errorw("session_clear_failed", "err", err)
	}
	a.nav.ShowLogin()
	return err
}

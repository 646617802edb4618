package view

import (
	"bytes"
	"html/template"
	"sync"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/service"
)

// Panel is the top-level screen: sign-in or the task dashboard.
type Panel string

const (
	PanelAuth      Panel = "auth"
	PanelDashboard Panel = "dashboard"
)

// AuthView selects the form shown on the auth panel.
type AuthView string

const (
	AuthLogin    AuthView = "login"
	AuthRegister AuthView = "register"
)

// StateReader is the read side of the application state.
type StateReader interface {
	Session() (models.User, bool)
	Tasks() []models.Task
}

// NoticeReader exposes the active notice.
type NoticeReader interface {
	Current() (service.Notice, bool)
}

type pendingDelete struct {
	task  models.Task
	token string
}

// Controller owns which panel is visible and draws it from state. It keeps
// no copy of what it drew last.
type Controller struct {
	state   StateReader
	notices NoticeReader
	tmpl    *template.Template
	hub     *Hub
	log     *logger.Logger

	mu      sync.Mutex
	panel   Panel
	auth    AuthView
	editor  *models.Task
	confirm *pendingDelete
}

var (
	_ service.Renderer  = (*Controller)(nil)
	_ service.Navigator = (*Controller)(nil)
)

func NewController(state StateReader, notices NoticeReader, log *logger.Logger) *Controller {
	return &Controller{
		state:   state,
		notices: notices,
		tmpl:    Templates(),
		hub:     NewHub(),
		log:     log,
		panel:   PanelAuth,
		auth:    AuthLogin,
	}
}

// Templates returns the parsed page templates.
func (c *Controller) Templates() *template.Template { return c.tmpl }

// Hub returns the render broadcaster.
func (c *Controller) Hub() *Hub { return c.hub }

// ShowLogin switches to the auth panel with the login form and drops any
// dashboard overlays.
func (c *Controller) ShowLogin() {
	c.mu.Lock()
	c.panel = PanelAuth
	c.auth = AuthLogin
	c.editor = nil
	c.confirm = nil
	c.mu.Unlock()
	c.Render()
}

// ShowRegister switches the auth panel to the registration form.
func (c *Controller) ShowRegister() {
	c.setAuthView(AuthRegister)
}

// ShowLoginForm switches the auth panel back to the login form without
// touching session or tasks.
func (c *Controller) ShowLoginForm() {
	c.setAuthView(AuthLogin)
}

func (c *Controller) setAuthView(v AuthView) {
	c.mu.Lock()
	c.auth = v
	c.mu.Unlock()
}

// ShowDashboard switches to the dashboard panel.
func (c *Controller) ShowDashboard() {
	c.mu.Lock()
	c.panel = PanelDashboard
	c.mu.Unlock()
	c.Render()
}

// OpenEditor shows the task form, prefilled from t. A zero id means a new
// task.
func (c *Controller) OpenEditor(t models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editor = &t
}

// CloseEditor hides the task form.
func (c *Controller) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editor = nil
}

// AskDelete shows the delete prompt for t carrying the confirmation token.
func (c *Controller) AskDelete(t models.Task, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm = &pendingDelete{task: t, token: token}
}

// CancelDelete hides the delete prompt.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm = nil
}

// Snapshot derives the page from the current state.
func (c *Controller) Snapshot() Page {
	c.mu.Lock()
	panel, auth := c.panel, c.auth
	var editor *models.Task
	if c.editor != nil {
		e := *c.editor
		editor = &e
	}
	confirm := c.confirm
	c.mu.Unlock()

	var page Page
	if n, ok := c.notices.Current(); ok {
		page.Notice = newNoticeView(n)
	}

	user, signedIn := c.state.Session()
	if !signedIn || panel != PanelDashboard {
		page.Panel = string(PanelAuth)
		page.AuthView = string(auth)
		return page
	}

	page.Panel = string(PanelDashboard)
	page.Username = user.Username
	page.taskList(c.state.Tasks())
	if editor != nil {
		page.Editor = newEditorView(*editor)
	}
	if confirm != nil {
		page.Confirm = &ConfirmView{
			TaskID: confirm.task.ID.String(),
			Title:  confirm.task.Title,
			Prompt: confirmDeletePrompt,
			Token:  confirm.token,
		}
	}
	return page
}

// Render redraws the task list from state and pushes it to subscribers.
func (c *Controller) Render() {
	m, err := c.Current()
	if err != nil {
		if c.log != nil {
			c.log.Errorw("view_render_failed", "err", err)
		}
		return
	}
	c.hub.Publish(m)
}

// Current draws the render message for the present state without
// publishing it.
func (c *Controller) Current() (Message, error) {
	page := c.Snapshot()

	var buf bytes.Buffer
	if page.Panel == string(PanelDashboard) {
		if err := c.tmpl.ExecuteTemplate(&buf, tmplTaskList, page); err != nil {
			return Message{}, err
		}
	}

	return Message{Type: "render", Data: RenderData{
		Panel:   page.Panel,
		HTML:    buf.String(),
		Summary: page.Summary,
		Pending: page.Pending,
		Notice:  page.Notice,
	}}, nil
}

package view

import (
	"fmt"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/service"
)

const (
	EmptyMessage        = "No tasks found. Create one to get started!"
	NoDescription       = "No description"
	displayDateLayout   = "1/2/2006"
	toggleLabelComplete = "Complete"
	toggleLabelReopen   = "Reopen"
	editorTitleNew      = "New Task"
	editorTitleEdit     = "Edit Task"
	confirmDeletePrompt = "Are you sure you want to delete this task?"
)

// Page is everything a full draw needs, derived from state on every call.
type Page struct {
	Panel    string `json:"panel"`              // "auth" | "dashboard"
	AuthView string `json:"authView,omitempty"` // "login" | "register"
	Username string `json:"username,omitempty"`

	Summary      string `json:"summary,omitempty"`
	Pending      int    `json:"pending"`
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
	Cards        []Card `json:"cards"`

	Notice  *NoticeView  `json:"notice,omitempty"`
	Editor  *EditorView  `json:"editor,omitempty"`
	Confirm *ConfirmView `json:"confirm,omitempty"`
}

// Card is one task in the list.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Due         string `json:"due"`
	Completed   bool   `json:"completed"`
	ToggleLabel string `json:"toggleLabel"`
}

// NoticeView is the toast for the active notice.
type NoticeView struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// EditorView is the task form. ID is empty for a new task.
type EditorView struct {
	Heading     string `json:"heading"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

// ConfirmView is the delete prompt carrying its confirmation token.
type ConfirmView struct {
	TaskID string `json:"taskId"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	Token  string `json:"token"`
}

// PendingSummary returns "You have N pending task(s)".
func PendingSummary(n int) string {
	if n == 1 {
		return "You have 1 pending task"
	}
	return fmt.Sprintf("You have %d pending tasks", n)
}

// FormatDue renders a YYYY-MM-DD (or RFC 3339) due date as M/D/YYYY and
// falls back to the raw value.
func FormatDue(raw string) string {
	for _, layout := range []string{models.DueDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return raw
}

func newCard(t models.Task) Card {
	c := Card{
		ID:          t.ID.String(),
		Title:       t.Title,
		Priority:    string(t.Priority),
		Description: t.Description,
		Due:         FormatDue(t.DueDate),
		Completed:   t.Completed(),
		ToggleLabel: toggleLabelComplete,
	}
	if c.Description == "" {
		c.Description = NoDescription
	}
	if c.Completed {
		c.ToggleLabel = toggleLabelReopen
	}
	return c
}

// taskList fills the summary, empty state and cards from tasks.
func (p *Page) taskList(tasks []models.Task) {
	p.Pending = models.CountPending(tasks)
	p.Summary = PendingSummary(p.Pending)
	p.Cards = make([]Card, 0, len(tasks))
	if len(tasks) == 0 {
		p.Empty = true
		p.EmptyMessage = EmptyMessage
		return
	}
	for _, t := range tasks {
		p.Cards = append(p.Cards, newCard(t))
	}
}

func newNoticeView(n service.Notice) *NoticeView {
	return &NoticeView{ID: n.ID, Message: n.Message, Kind: string(n.Kind)}
}

func newEditorView(t models.Task) *EditorView {
	e := &EditorView{
		Heading:     editorTitleNew,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
	}
	if t.ID != 0 {
		e.Heading = editorTitleEdit
		e.ID = t.ID.String()
	}
	if e.Priority == "" {
		e.Priority = string(models.PriorityMedium)
	}
	return e
}

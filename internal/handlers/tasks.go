package handlers

import (
	"strings"

	"taskboard/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	msgTaskNotFound  = "Task not found"
	msgInvalidTaskID = "Invalid task id"
	msgDeleteFailed  = "Failed to delete task"
)

// taskForm is the editor form. An empty ID means a new task.
type taskForm struct {
	ID          string `form:"id"`
	Title       string `form:"title"`
	Description string `form:"description"`
	DueDate     string `form:"dueDate"`
	Priority    string `form:"priority"`
}

type deleteForm struct {
	Confirmation string `form:"confirmation"`
}

// pathTaskID parses :id; on failure it raises a notice and reports false.
func (h *Handler) pathTaskID(c *gin.Context) (models.ID, bool) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil || id <= 0 {
		if h.log != nil {
			h.log.Infow("task_bad_id", "id", c.Param("id"), "err", err)
		}
		h.services.Notices.Error(msgInvalidTaskID)
		return 0, false
	}
	return id, true
}

// cachedTask resolves :id against the cached list.
func (h *Handler) cachedTask(c *gin.Context) (models.Task, bool) {
	id, ok := h.pathTaskID(c)
	if !ok {
		return models.Task{}, false
	}
	t, ok := h.services.Find(id)
	if !ok {
		h.services.Notices.Error(msgTaskNotFound)
		return models.Task{}, false
	}
	return t, true
}

func (h *Handler) newTask(c *gin.Context) {
	h.view.OpenEditor(models.Task{})
	backToPage(c)
}

func (h *Handler) editTask(c *gin.Context) {
	defer backToPage(c)
	t, ok := h.cachedTask(c)
	if !ok {
		return
	}
	h.view.OpenEditor(t)
}

func (h *Handler) closeEditor(c *gin.Context) {
	h.view.CloseEditor()
	backToPage(c)
}

// saveTask creates or updates from the editor form. An edit starts from the
// cached task so fields the form does not carry (status, owner) survive.
func (h *Handler) saveTask(c *gin.Context) {
	defer backToPage(c)

	var in taskForm
	if err := c.ShouldBind(&in); err != nil {
		h.services.Notices.Error(err.Error())
		return
	}

	var task models.Task
	if id := strings.TrimSpace(in.ID); id != "" {
		parsed, err := models.ParseID(id)
		if err != nil {
			h.services.Notices.Error(msgInvalidTaskID)
			return
		}
		cached, ok := h.services.Find(parsed)
		if !ok {
			h.services.Notices.Error(msgTaskNotFound)
			return
		}
		task = cached
	}
	task.Title = strings.TrimSpace(in.Title)
	task.Description = strings.TrimSpace(in.Description)
	task.DueDate = strings.TrimSpace(in.DueDate)
	task.Priority = models.Priority(in.Priority)

	if err := task.Validate(); err != nil {
		if h.log != nil {
			h.log.Infow("task_form_invalid", "task_id", task.ID, "err", err)
		}
		h.services.Notices.Error(strings.TrimPrefix(err.Error(), models.ErrInvalidTask.Error()+": "))
		return
	}

	closeEditor, _ := h.services.Save(interactionContext(c), task)
	if closeEditor {
		h.view.CloseEditor()
	}
}

func (h *Handler) toggleTask(c *gin.Context) {
	defer backToPage(c)
	id, ok := h.pathTaskID(c)
	if !ok {
		return
	}
	_ = h.services.ToggleStatus(interactionContext(c), id)
}

// askDelete issues a confirmation for the task and shows the prompt.
func (h *Handler) askDelete(c *gin.Context) {
	defer backToPage(c)
	t, ok := h.cachedTask(c)
	if !ok {
		return
	}
	token, err := h.services.Confirms.Issue(t.ID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("task_confirm_issue_failed", "task_id", t.ID, "err", err)
		}
		h.services.Notices.Error(msgDeleteFailed)
		return
	}
	h.view.AskDelete(t, token)
}

func (h *Handler) deleteTask(c *gin.Context) {
	defer backToPage(c)
	h.view.CancelDelete()
	id, ok := h.pathTaskID(c)
	if !ok {
		return
	}
	var in deleteForm
	_ = c.ShouldBind(&in)
	_ = h.services.Remove(interactionContext(c), id, in.Confirmation)
}

func (h *Handler) cancelDelete(c *gin.Context) {
	h.view.CancelDelete()
	backToPage(c)
}

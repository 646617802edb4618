package handlers

import (
	"net/http"

	"taskboard/internal/view"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	msgCredentialsRequired = "Username and password are required"
)

// credentialsForm is shared by the login and register forms.
type credentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// backToPage ends a form submission with a redirect to the page.
func backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current view model
// @Description  What the page would draw right now: panel, summary, task cards, notice and open dialogs.
// @Tags         view
// @Produce      json
// @Success      200  {object}  view.Page
// @Router       /state [get]
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.Snapshot())
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, view.TemplatePage, h.view.Snapshot())
}

func (h *Handler) showLogin(c *gin.Context) {
	h.view.ShowLoginForm()
	backToPage(c)
}

func (h *Handler) showRegister(c *gin.Context) {
	h.view.ShowRegister()
	backToPage(c)
}

// bindCredentials reads the auth form; on failure it raises a notice and
// reports false.
func (h *Handler) bindCredentials(c *gin.Context) (credentialsForm, bool) {
	var in credentialsForm
	if err := c.ShouldBind(&in); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_form", "err", err)
		}
		h.services.Notices.Error(msgCredentialsRequired)
		return in, false
	}
	return in, true
}

func (h *Handler) login(c *gin.Context) {
	defer backToPage(c)
	in, ok := h.bindCredentials(c)
	if !ok {
		return
	}
	// failures are already surfaced as a notice
	_ = h.services.Login(interactionContext(c), in.Username, in.Password)
}

func (h *Handler) register(c *gin.Context) {
	defer backToPage(c)
	in, ok := h.bindCredentials(c)
	if !ok {
		return
	}
	_ = h.services.Register(interactionContext(c), in.Username, in.Password)
}

func (h *Handler) logout(c *gin.Context) {
	defer backToPage(c)
	_ = h.services.Logout(interactionContext(c))
}

package handlers

import (
	"errors"
	"net/http"

	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both login and admin creation.
type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary      Admin login
// @Description  Sets the session cookie on success. Bad credentials answer 200 with success=false.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminCredentials  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /api/admin/login [post]
func (h *Handler) adminLogin(c *gin.Context) {
	var req adminCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errInvalidBodyPref + err.Error()})
		return
	}

	token, err := h.services.Auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrCredentialsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		// 200 on purpose: the client renders the message inline.
		if h.log != nil {
			h.log.Infow("admin_login_rejected", "username", req.Username)
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw("admin_login_failed", "err", err, "username", req.Username)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errDatabase})
	}
}

// @Summary      Create admin account
// @Description  Requires an authenticated admin session cookie.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminCredentials  true  "New account credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /api/admin/create [post]
func (h *Handler) createAdmin(c *gin.Context) {
	var req adminCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errInvalidBodyPref + err.Error()})
		return
	}

	_, err := h.services.Auth.CreateAdmin(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrCredentialsRequired),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw("admin_create_failed", "err", err, "username", req.Username)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": errDatabase})
	}
}

// @Summary      Session status
// @Description  Reports whether the request carries a live admin session.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/admin/status [get]
func (h *Handler) adminStatus(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}

	sess, err := h.services.Auth.Authenticate(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "username": sess.Username})
}

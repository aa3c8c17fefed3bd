package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"event_rsvp/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errDatabase        = "database error"
	errInvalidBodyPref = "invalid body: "
)

// Request DTO for creating or editing an RSVP.
type rsvpRequest struct {
	Name      string `json:"name"`
	DeviceKey string `json:"deviceKey"`
}

// Request DTO for deleting an RSVP; only the ownership token is needed.
type deleteRsvpRequest struct {
	DeviceKey string `json:"deviceKey"`
}

// respondRsvpError maps domain errors to status codes. Storage failures are
// logged and answered generically to avoid leaking internals.
func (h *Handler) respondRsvpError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrDeviceKeyRequired),
		errors.Is(err, service.ErrAlreadyRsvped):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRsvpNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errDatabase})
	}
}

// parseRsvpID reads the :id path param. A non-numeric id cannot name any
// record, so it is answered the same way as an unknown one.
func parseRsvpID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrRsvpNotFound.Error()})
		return 0, false
	}
	return id, true
}

// @Summary      List RSVPs
// @Tags         rsvps
// @Produce      json
// @Success      200  {array}   models.Rsvp
// @Failure      500  {object}  map[string]string
// @Router       /api/rsvps [get]
func (h *Handler) listRsvps(c *gin.Context) {
	rsvps, err := h.services.Rsvps.List(c.Request.Context())
	if err != nil {
		h.respondRsvpError(c, err, "rsvp_list_failed")
		return
	}
	c.JSON(http.StatusOK, rsvps)
}

// @Summary      Submit RSVP
// @Tags         rsvps
// @Accept       json
// @Produce      json
// @Param        body  body      rsvpRequest  true  "Name and device key"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/rsvps [post]
func (h *Handler) createRsvp(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	if _, err := h.services.Rsvps.Create(c.Request.Context(), req.Name, req.DeviceKey); err != nil {
		h.respondRsvpError(c, err, "rsvp_create_failed", "deviceKey", req.DeviceKey)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Edit RSVP
// @Description  Only the device that submitted the RSVP may edit it.
// @Tags         rsvps
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "RSVP id"
// @Param        body  body      rsvpRequest  true  "New name and device key"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/rsvps/{id} [put]
func (h *Handler) editRsvp(c *gin.Context) {
	id, ok := parseRsvpID(c)
	if !ok {
		return
	}

	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	if err := h.services.Rsvps.Edit(c.Request.Context(), id, req.Name, req.DeviceKey); err != nil {
		h.respondRsvpError(c, err, "rsvp_edit_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Delete RSVP
// @Description  Only the device that submitted the RSVP may delete it.
// @Tags         rsvps
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "RSVP id"
// @Param        body  body      deleteRsvpRequest  true  "Device key"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/rsvps/{id} [delete]
func (h *Handler) deleteRsvp(c *gin.Context) {
	id, ok := parseRsvpID(c)
	if !ok {
		return
	}

	var req deleteRsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	if err := h.services.Rsvps.Delete(c.Request.Context(), id, req.DeviceKey); err != nil {
		h.respondRsvpError(c, err, "rsvp_delete_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package server

import (
	"net/http"
	"time"

	"github.com/archivedesk/minutes/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createAction(c *gin.Context) {
	var in service.CreateActionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	action, err := h.moms.CreateAction(c.Request.Context(), c.Param("id"), in, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, action)
}

func (h *Handler) listActions(c *gin.Context) {
	actions, err := h.moms.ListActionsByMom(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, actions)
}

func (h *Handler) updateAction(c *gin.Context) {
	var patch service.ActionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	action, err := h.moms.UpdateAction(c.Request.Context(), c.Param("id"), patch, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, action)
}

func (h *Handler) resolveAction(c *gin.Context) {
	var in struct {
		ResolutionNote string `json:"resolution_note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	action, err := h.moms.ResolveAction(c.Request.Context(), c.Param("id"), in.ResolutionNote, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, action)
}

func (h *Handler) reopenAction(c *gin.Context) {
	action, err := h.moms.ReopenAction(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, action)
}

func (h *Handler) uploadActionFile(c *gin.Context) {
	name, data, err := formFile(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	action, err := h.moms.SaveActionResolutionFile(c.Request.Context(), c.Param("id"), name, data, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, action)
}

func (h *Handler) acknowledgeReminder(c *gin.Context) {
	if err := h.moms.AcknowledgeReminder(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) listDueReminders(c *gin.Context) {
	actions, err := h.moms.ListDueReminders(c.Request.Context(), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, actions)
}

func (h *Handler) listDeadlines(c *gin.Context) {
	actions, err := h.moms.ListDeadlines(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, actions)
}

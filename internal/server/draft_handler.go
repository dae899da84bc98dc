package server

import (
	"net/http"

	"github.com/archivedesk/minutes/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createDraft(c *gin.Context) {
	var in service.CreateDraftInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.moms.CreateDraft(c.Request.Context(), c.Param("id"), in, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, draft)
}

func (h *Handler) listDrafts(c *gin.Context) {
	drafts, err := h.moms.ListDraftsByMom(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, drafts)
}

func (h *Handler) getLatestDraft(c *gin.Context) {
	draft, err := h.moms.GetLatestDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, draft)
}

func (h *Handler) uploadDraftFile(c *gin.Context) {
	name, data, err := formFile(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.moms.SaveDraftFile(c.Request.Context(), c.Param("id"), name, data, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, draft)
}

func (h *Handler) deleteDraft(c *gin.Context) {
	if err := h.moms.DeleteDraft(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

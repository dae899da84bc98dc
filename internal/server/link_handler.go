package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) linkTopic(c *gin.Context) {
	if err := h.moms.LinkTopic(c.Request.Context(), c.Param("id"), c.Param("topicId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, nil)
}

func (h *Handler) unlinkTopic(c *gin.Context) {
	if err := h.moms.UnlinkTopic(c.Request.Context(), c.Param("id"), c.Param("topicId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) listLinkedTopics(c *gin.Context) {
	links, err := h.moms.GetLinkedTopics(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, links)
}

func (h *Handler) linkRecord(c *gin.Context) {
	if err := h.moms.LinkRecord(c.Request.Context(), c.Param("id"), c.Param("recordId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, nil)
}

func (h *Handler) unlinkRecord(c *gin.Context) {
	if err := h.moms.UnlinkRecord(c.Request.Context(), c.Param("id"), c.Param("recordId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) listLinkedRecords(c *gin.Context) {
	links, err := h.moms.GetLinkedRecords(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, links)
}

func (h *Handler) linkLetter(c *gin.Context) {
	if err := h.moms.LinkLetter(c.Request.Context(), c.Param("id"), c.Param("letterId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, nil)
}

func (h *Handler) unlinkLetter(c *gin.Context) {
	if err := h.moms.UnlinkLetter(c.Request.Context(), c.Param("id"), c.Param("letterId"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) listLinkedLetters(c *gin.Context) {
	links, err := h.moms.GetLinkedLetters(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, links)
}

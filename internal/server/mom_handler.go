package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/archivedesk/minutes/internal/service"
	"github.com/archivedesk/minutes/internal/store"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createMom(c *gin.Context) {
	var in service.CreateMomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	mom, err := h.moms.CreateMom(c.Request.Context(), in, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, mom)
}

func (h *Handler) getMom(c *gin.Context) {
	mom, err := h.moms.GetMom(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, mom)
}

func (h *Handler) getMomByNumber(c *gin.Context) {
	mom, err := h.moms.GetMomByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, mom)
}

func (h *Handler) listMoms(c *gin.Context) {
	filter := store.MomFilter{
		Status:     c.Query("status"),
		LocationID: c.Query("location_id"),
		TopicID:    c.Query("topic_id"),
		Search:     c.Query("q"),
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.To = &t
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.moms.ListMoms(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

func (h *Handler) updateMom(c *gin.Context) {
	var patch service.MomPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	mom, err := h.moms.UpdateMom(c.Request.Context(), c.Param("id"), patch, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, mom)
}

func (h *Handler) deleteMom(c *gin.Context) {
	if err := h.moms.DeleteMom(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) deleteAllMoms(c *gin.Context) {
	if err := h.moms.DeleteAllMoms(c.Request.Context(), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) closeMom(c *gin.Context) {
	mom, err := h.moms.CloseMom(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, mom)
}

func (h *Handler) reopenMom(c *gin.Context) {
	mom, err := h.moms.ReopenMom(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, mom)
}

func (h *Handler) uploadMomFile(c *gin.Context) {
	name, data, err := formFile(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	mom, err := h.moms.SaveMomPrimaryFile(c.Request.Context(), c.Param("id"), name, data, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, mom)
}

func (h *Handler) listHistory(c *gin.Context) {
	entries, err := h.moms.ListHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, entries)
}

func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.stats.GetMomStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}

// formFile reads the uploaded "file" part into memory. Archived artifacts
// are modest office documents; streaming is not worth the plumbing here.
func formFile(c *gin.Context) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	f, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

package server

import (
	"net/http"

	"github.com/archivedesk/minutes/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) createLocation(c *gin.Context) {
	var in service.CreateLocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	loc, err := h.locations.CreateLocation(c.Request.Context(), in, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, loc)
}

func (h *Handler) updateLocation(c *gin.Context) {
	var patch service.LocationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	loc, err := h.locations.UpdateLocation(c.Request.Context(), c.Param("id"), patch, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, loc)
}

func (h *Handler) deleteLocation(c *gin.Context) {
	if err := h.locations.DeleteLocation(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, nil)
}

func (h *Handler) listLocations(c *gin.Context) {
	locs, err := h.locations.ListLocations(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, locs)
}

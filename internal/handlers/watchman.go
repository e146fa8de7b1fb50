package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msibaramdora/visitor-management-api/internal/dto"
	apierrors "github.com/msibaramdora/visitor-management-api/internal/errors"
	"github.com/msibaramdora/visitor-management-api/internal/services"
)

// WatchmanHandler coordinates the gate-side HTTP handlers.
type WatchmanHandler struct {
	visitService *services.VisitService
}

// NewWatchmanHandler creates a new WatchmanHandler.
func NewWatchmanHandler(visitService *services.VisitService) *WatchmanHandler {
	return &WatchmanHandler{
		visitService: visitService,
	}
}

// Stats returns the gate dashboard counters.
func (h *WatchmanHandler) Stats(c *gin.Context) {
	stats, err := h.visitService.Stats()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CheckIn marks an approved visit as active and stamps the arrival time.
func (h *WatchmanHandler) CheckIn(c *gin.Context) {
	id, ok := visitIDParam(c)
	if !ok {
		return
	}

	visit, err := h.visitService.CheckIn(id)
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTO(*visit))
}

// CheckOut marks an active visit as completed and stamps the departure time.
func (h *WatchmanHandler) CheckOut(c *gin.Context) {
	id, ok := visitIDParam(c)
	if !ok {
		return
	}

	visit, err := h.visitService.CheckOut(id)
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTO(*visit))
}

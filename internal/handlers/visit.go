package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/msibaramdora/visitor-management-api/internal/dto"
	apierrors "github.com/msibaramdora/visitor-management-api/internal/errors"
	"github.com/msibaramdora/visitor-management-api/internal/middleware"
	"github.com/msibaramdora/visitor-management-api/internal/services"
)

// VisitHandler coordinates the visit lifecycle HTTP handlers.
type VisitHandler struct {
	visitService *services.VisitService
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(visitService *services.VisitService) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
	}
}

// ListVisits returns all visits ordered by visit date descending.
func (h *VisitHandler) ListVisits(c *gin.Context) {
	visits, err := h.visitService.ListVisits()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTOs(visits))
}

// CreateInvite creates an invited visit hosted by the calling employee.
func (h *VisitHandler) CreateInvite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type InviteRequest struct {
		VisitorName  string `json:"visitorName" binding:"required"`
		VisitorEmail string `json:"visitorEmail" binding:"required,email"`
		VisitDate    string `json:"visitDate" binding:"required"`
		Purpose      string `json:"purpose" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.CreateInvite(services.CreateInviteInput{
		EmployeeID:   user.ID,
		VisitorName:  req.VisitorName,
		VisitorEmail: req.VisitorEmail,
		VisitDate:    req.VisitDate,
		Purpose:      req.Purpose,
	})
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVisitDTO(*visit))
}

// GetInvite resolves an invite token. Public: the token is the credential.
func (h *VisitHandler) GetInvite(c *gin.Context) {
	visit, err := h.visitService.GetInviteByToken(c.Param("token"))
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTO(*visit))
}

// AcceptInvite completes a visitor's self-registration for an invited visit.
func (h *VisitHandler) AcceptInvite(c *gin.Context) {
	type AcceptRequest struct {
		VisitorName     string `json:"visitorName" binding:"required"`
		VisitorPhone    string `json:"visitorPhone" binding:"required"`
		VisitorPhotoUrl string `json:"visitorPhotoUrl" binding:"required"`
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.AcceptInvite(c.Param("token"), services.AcceptInviteInput{
		VisitorName:     req.VisitorName,
		VisitorPhone:    req.VisitorPhone,
		VisitorPhotoUrl: req.VisitorPhotoUrl,
	})
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTO(*visit))
}

// GateRegister creates a pending visit for a walk-in visitor.
func (h *VisitHandler) GateRegister(c *gin.Context) {
	type RegisterRequest struct {
		EmployeeID      uint64 `json:"employeeId" binding:"required"`
		VisitorName     string `json:"visitorName" binding:"required"`
		VisitorEmail    string `json:"visitorEmail" binding:"required,email"`
		VisitorPhone    string `json:"visitorPhone" binding:"required"`
		VisitorPhotoUrl string `json:"visitorPhotoUrl" binding:"required"`
		VisitDate       string `json:"visitDate" binding:"required"`
		Purpose         string `json:"purpose" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.GateRegister(services.GateRegisterInput{
		EmployeeID:      req.EmployeeID,
		VisitorName:     req.VisitorName,
		VisitorEmail:    req.VisitorEmail,
		VisitorPhone:    req.VisitorPhone,
		VisitorPhotoUrl: req.VisitorPhotoUrl,
		VisitDate:       req.VisitDate,
		Purpose:         req.Purpose,
	})
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVisitDTO(*visit))
}

// UpdateStatus applies an employee's approve/reject decision to a pending visit.
func (h *VisitHandler) UpdateStatus(c *gin.Context) {
	id, ok := visitIDParam(c)
	if !ok {
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required,oneof=approved rejected"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	visit, err := h.visitService.Decide(id, req.Status)
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTO(*visit))
}

// GetVisit returns a single visit by ID.
func (h *VisitHandler) GetVisit(c *gin.Context) {
	id, ok := visitIDParam(c)
	if !ok {
		return
	}

	visit, err := h.visitService.GetVisit(id)
	if err != nil {
		respondVisitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVisitDTO(*visit))
}

func visitIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid visit ID")
		return 0, false
	}
	return id, true
}

func respondVisitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVisitNotFound),
		errors.Is(err, services.ErrInviteNotFound):
		apierrors.NotFound(c, "Not found")
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrHostNotFound),
		errors.Is(err, services.ErrInvalidVisitDate),
		errors.Is(err, services.ErrInvalidDecision):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

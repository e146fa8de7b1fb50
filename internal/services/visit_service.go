package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/msibaramdora/visitor-management-api/internal/models"
	"github.com/msibaramdora/visitor-management-api/internal/repository"
	"github.com/msibaramdora/visitor-management-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrVisitNotFound     = errors.New("visit not found")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrInvalidTransition = errors.New("visit is not in a status that allows this action")
	ErrHostNotFound      = errors.New("host employee not found")
	ErrInvalidVisitDate  = errors.New("invalid visit date")
	ErrInvalidDecision   = errors.New("status must be approved or rejected")
	ErrFailedToMakeToken = errors.New("failed to generate invite token")
	ErrFailedToSaveVisit = errors.New("failed to save visit")
)

// visitDateLayouts are the accepted visit date formats: RFC 3339 plus the
// short form submitted by datetime-local inputs.
var visitDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// WatchmanStats is the gate dashboard summary, computed fresh per call.
type WatchmanStats struct {
	TodayVisits     int `json:"todayVisits"`
	CurrentlyInside int `json:"currentlyInside"`
	LeftOffice      int `json:"leftOffice"`
}

// VisitService handles the visit lifecycle business logic.
type VisitService struct {
	visitRepo repository.VisitRepository
	userRepo  repository.UserRepository
}

// NewVisitService creates a new VisitService.
func NewVisitService(visitRepo repository.VisitRepository, userRepo repository.UserRepository) *VisitService {
	return &VisitService{
		visitRepo: visitRepo,
		userRepo:  userRepo,
	}
}

// CreateInviteInput represents a host-initiated invitation.
type CreateInviteInput struct {
	EmployeeID   uint64
	VisitorName  string
	VisitorEmail string
	VisitDate    string
	Purpose      string
}

// CreateInvite creates a visit in the invited status with a fresh invite
// token. Visitor phone and photo stay null until the invite is accepted.
func (s *VisitService) CreateInvite(input CreateInviteInput) (*models.Visit, error) {
	visitDate, err := parseVisitDate(input.VisitDate)
	if err != nil {
		return nil, ErrInvalidVisitDate
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, ErrFailedToMakeToken
	}

	visit := &models.Visit{
		EmployeeID:   input.EmployeeID,
		VisitorName:  &input.VisitorName,
		VisitorEmail: &input.VisitorEmail,
		VisitDate:    visitDate,
		Purpose:      input.Purpose,
		Status:       models.StatusInvited,
		InviteToken:  &token,
	}
	if err := s.visitRepo.Create(visit); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveVisit, err)
	}

	return visit, nil
}

// GetInviteByToken resolves an invite token to its visit.
func (s *VisitService) GetInviteByToken(token string) (*models.Visit, error) {
	visit, err := s.visitRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	return visit, nil
}

// AcceptInviteInput carries the visitor-supplied details.
type AcceptInviteInput struct {
	VisitorName     string
	VisitorPhone    string
	VisitorPhotoUrl string
}

// AcceptInvite fills in the visitor's details and moves the visit from
// invited to pending. A consumed invite cannot be accepted again: the
// conditional transition fails once the status has moved on.
func (s *VisitService) AcceptInvite(token string, input AcceptInviteInput) (*models.Visit, error) {
	visit, err := s.GetInviteByToken(token)
	if err != nil {
		return nil, err
	}

	return s.transition(visit.ID, models.StatusInvited, models.StatusPending, map[string]interface{}{
		"visitor_name":      input.VisitorName,
		"visitor_phone":     input.VisitorPhone,
		"visitor_photo_url": input.VisitorPhotoUrl,
	})
}

// GateRegisterInput represents walk-in self-registration at the gate.
type GateRegisterInput struct {
	EmployeeID      uint64
	VisitorName     string
	VisitorEmail    string
	VisitorPhone    string
	VisitorPhotoUrl string
	VisitDate       string
	Purpose         string
}

// GateRegister creates a pending visit with all visitor fields populated and
// no invite token. The host reference must resolve to an employee account.
func (s *VisitService) GateRegister(input GateRegisterInput) (*models.Visit, error) {
	visitDate, err := parseVisitDate(input.VisitDate)
	if err != nil {
		return nil, ErrInvalidVisitDate
	}

	host, err := s.userRepo.FindByID(input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, fmt.Errorf("failed to find host: %w", err)
	}
	if host.Role != models.RoleEmployee {
		return nil, ErrHostNotFound
	}

	visit := &models.Visit{
		EmployeeID:      input.EmployeeID,
		VisitorName:     &input.VisitorName,
		VisitorEmail:    &input.VisitorEmail,
		VisitorPhone:    &input.VisitorPhone,
		VisitorPhotoUrl: &input.VisitorPhotoUrl,
		VisitDate:       visitDate,
		Purpose:         input.Purpose,
		Status:          models.StatusPending,
	}
	if err := s.visitRepo.Create(visit); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveVisit, err)
	}

	return visit, nil
}

// Decide applies the host's approval or rejection to a pending visit.
func (s *VisitService) Decide(id uint64, status string) (*models.Visit, error) {
	decision, ok := models.ParseDecision(status)
	if !ok {
		return nil, ErrInvalidDecision
	}

	return s.transition(id, models.StatusPending, decision, nil)
}

// GetVisit retrieves a visit by ID.
func (s *VisitService) GetVisit(id uint64) (*models.Visit, error) {
	visit, err := s.visitRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to find visit: %w", err)
	}
	return visit, nil
}

// ListVisits returns all visits ordered by visit date descending.
func (s *VisitService) ListVisits() ([]models.Visit, error) {
	visits, err := s.visitRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

// CheckIn stamps the arrival time and moves an approved visit to active.
func (s *VisitService) CheckIn(id uint64) (*models.Visit, error) {
	return s.transition(id, models.StatusApproved, models.StatusActive, map[string]interface{}{
		"check_in_time": time.Now(),
	})
}

// CheckOut stamps the departure time and moves an active visit to completed.
func (s *VisitService) CheckOut(id uint64) (*models.Visit, error) {
	return s.transition(id, models.StatusActive, models.StatusCompleted, map[string]interface{}{
		"check_out_time": time.Now(),
	})
}

// Stats computes the gate dashboard counters over all visits.
func (s *VisitService) Stats() (*WatchmanStats, error) {
	visits, err := s.visitRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load visits: %w", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &WatchmanStats{}
	for _, v := range visits {
		if !v.VisitDate.Before(startOfDay) {
			stats.TodayVisits++
		}
		if v.Status == models.StatusActive || (v.CheckInTime != nil && v.CheckOutTime == nil) {
			stats.CurrentlyInside++
		}
		if v.Status == models.StatusCompleted || (v.CheckOutTime != nil && !v.CheckOutTime.Before(startOfDay)) {
			stats.LeftOffice++
		}
	}

	return stats, nil
}

// transition runs a status transition after checking it against the
// lifecycle table, mapping store-level failures to service errors.
func (s *VisitService) transition(id uint64, from, to models.VisitStatus, updates map[string]interface{}) (*models.Visit, error) {
	if !models.CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}

	visit, err := s.visitRepo.Transition(id, from, to, updates)
	if err != nil {
		return nil, s.mapTransitionError(err)
	}

	return visit, nil
}

func (s *VisitService) mapTransitionError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrVisitNotFound
	case errors.Is(err, repository.ErrStaleStatus):
		return ErrInvalidTransition
	default:
		return fmt.Errorf("failed to update visit: %w", err)
	}
}

func parseVisitDate(value string) (time.Time, error) {
	for _, layout := range visitDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized visit date %q", value)
}

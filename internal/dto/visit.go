package dto

import (
	"time"

	"github.com/msibaramdora/visitor-management-api/internal/models"
)

// VisitDTO represents a visit in API responses. Visitor fields and the
// check-in/out timestamps serialize as null until set.
type VisitDTO struct {
	ID              uint64             `json:"id"`
	EmployeeID      uint64             `json:"employeeId"`
	VisitorName     *string            `json:"visitorName"`
	VisitorEmail    *string            `json:"visitorEmail"`
	VisitorPhone    *string            `json:"visitorPhone"`
	VisitorPhotoUrl *string            `json:"visitorPhotoUrl"`
	VisitDate       time.Time          `json:"visitDate"`
	Purpose         string             `json:"purpose"`
	Status          models.VisitStatus `json:"status"`
	InviteToken     *string            `json:"inviteToken"`
	CheckInTime     *time.Time         `json:"checkInTime"`
	CheckOutTime    *time.Time         `json:"checkOutTime"`
}

// ToVisitDTO converts a Visit model to VisitDTO
func ToVisitDTO(visit models.Visit) VisitDTO {
	return VisitDTO{
		ID:              visit.ID,
		EmployeeID:      visit.EmployeeID,
		VisitorName:     visit.VisitorName,
		VisitorEmail:    visit.VisitorEmail,
		VisitorPhone:    visit.VisitorPhone,
		VisitorPhotoUrl: visit.VisitorPhotoUrl,
		VisitDate:       visit.VisitDate,
		Purpose:         visit.Purpose,
		Status:          visit.Status,
		InviteToken:     visit.InviteToken,
		CheckInTime:     visit.CheckInTime,
		CheckOutTime:    visit.CheckOutTime,
	}
}

// ToVisitDTOs converts a slice of Visit models to VisitDTOs
func ToVisitDTOs(visits []models.Visit) []VisitDTO {
	dtos := make([]VisitDTO, len(visits))
	for i, visit := range visits {
		dtos[i] = ToVisitDTO(visit)
	}
	return dtos
}

package models

import "time"

// Visit is a single visitor-to-host engagement. A visit is created either by
// an employee invitation (visitor fields null until the invite is accepted)
// or by self-registration at the gate (visitor fields populated immediately).
type Visit struct {
	ID              uint64      `gorm:"primarykey" json:"id"`
	EmployeeID      uint64      `gorm:"not null;index" json:"employeeId"`
	VisitorName     *string     `gorm:"type:varchar(255)" json:"visitorName"`
	VisitorEmail    *string     `gorm:"type:varchar(255)" json:"visitorEmail"`
	VisitorPhone    *string     `gorm:"type:varchar(50)" json:"visitorPhone"`
	VisitorPhotoUrl *string     `gorm:"type:text" json:"visitorPhotoUrl"`
	VisitDate       time.Time   `gorm:"not null;index" json:"visitDate"`
	Purpose         string      `gorm:"type:text;not null" json:"purpose"`
	Status          VisitStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	InviteToken     *string     `gorm:"type:varchar(64);uniqueIndex" json:"inviteToken"`
	CheckInTime     *time.Time  `json:"checkInTime"`
	CheckOutTime    *time.Time  `json:"checkOutTime"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
}

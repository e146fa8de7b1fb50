package models

type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleWatchman UserRole = "watchman"
)

type User struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	Username     string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Name         string   `gorm:"type:varchar(255);not null" json:"name"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`

	// Relations
	HostedVisits []Visit `gorm:"foreignKey:EmployeeID" json:"-"`
}

package repository

import (
	"github.com/msibaramdora/visitor-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ListByRole lists all users holding the given role
	ListByRole(role models.UserRole) ([]models.User, error)
}

// VisitRepository defines the interface for visit data access
type VisitRepository interface {
	// Create creates a new visit
	Create(visit *models.Visit) error

	// FindByID finds a visit by ID
	FindByID(id uint64) (*models.Visit, error)

	// FindByToken finds a visit by invite token
	FindByToken(token string) (*models.Visit, error)

	// List retrieves all visits ordered by visit date descending
	List() ([]models.Visit, error)

	// ListAll retrieves all visits without ordering (stats scans)
	ListAll() ([]models.Visit, error)

	// Transition conditionally moves a visit from one status to another,
	// applying any extra column updates in the same statement. It reports
	// ErrStaleStatus when the visit exists but is no longer in the expected
	// status, and gorm.ErrRecordNotFound when the visit does not exist.
	Transition(id uint64, from, to models.VisitStatus, updates map[string]interface{}) (*models.Visit, error)
}

package repository

import (
	"errors"

	"github.com/msibaramdora/visitor-management-api/internal/models"
	"gorm.io/gorm"
)

// ErrStaleStatus is returned when a conditional status transition matched no
// rows because the visit is no longer in the expected status.
var ErrStaleStatus = errors.New("visit repository: visit not in expected status")

// GormVisitRepository is a GORM implementation of VisitRepository
type GormVisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new VisitRepository
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &GormVisitRepository{db: db}
}

// Create creates a new visit
func (r *GormVisitRepository) Create(visit *models.Visit) error {
	return r.db.Create(visit).Error
}

// FindByID finds a visit by ID
func (r *GormVisitRepository) FindByID(id uint64) (*models.Visit, error) {
	var visit models.Visit
	if err := r.db.First(&visit, id).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// FindByToken finds a visit by invite token
func (r *GormVisitRepository) FindByToken(token string) (*models.Visit, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var visit models.Visit
	if err := r.db.Where("invite_token = ?", token).First(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// List retrieves all visits ordered by visit date descending
func (r *GormVisitRepository) List() ([]models.Visit, error) {
	var visits []models.Visit
	if err := r.db.Order("visit_date DESC").Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// ListAll retrieves all visits without ordering
func (r *GormVisitRepository) ListAll() ([]models.Visit, error) {
	var visits []models.Visit
	if err := r.db.Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// Transition conditionally moves a visit between statuses. The status guard
// lives in the WHERE clause so concurrent callers cannot both fire the same
// transition: exactly one UPDATE matches, the other sees zero rows.
func (r *GormVisitRepository) Transition(id uint64, from, to models.VisitStatus, updates map[string]interface{}) (*models.Visit, error) {
	values := map[string]interface{}{"status": to}
	for column, value := range updates {
		values[column] = value
	}

	result := r.db.Model(&models.Visit{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the visit is gone or its status moved.
		if _, err := r.FindByID(id); err != nil {
			return nil, err
		}
		return nil, ErrStaleStatus
	}

	return r.FindByID(id)
}

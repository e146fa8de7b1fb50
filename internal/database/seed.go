package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/msibaramdora/visitor-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedUsers = []struct {
	name     string
	username string
	password string
	role     models.UserRole
}{
	{"Admin Employee", "admin@company.com", "password123", models.RoleEmployee},
	{"Main Gate Watchman", "gate@company.com", "password123", models.RoleWatchman},
}

// Seed creates the default employee and watchman accounts when absent.
func Seed(db *gorm.DB) error {
	for _, su := range seedUsers {
		var existing models.User
		err := db.Where("username = ?", su.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check seed user %s: %w", su.username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := models.User{
			Name:         su.name,
			Username:     su.username,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.username, err)
		}
		log.Printf("Seeded %s account %s", su.role, su.username)
	}

	return nil
}

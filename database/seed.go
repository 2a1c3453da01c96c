package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"

	"gorm.io/gorm"
)

// DefaultSubjects is the catalog seeded on first start.
var DefaultSubjects = []string{
	"Mathématiques",
	"Physique",
	"Chimie",
	"SVT",
	"Histoire-Géographie",
	"Littérature",
	"Informatique",
	"SES (économie)",
	"Philosophie",
	"Anglais",
	"Espagnol",
	"Allemand",
	"Italien",
	"Arts",
	"Musique",
}

// SeedSubjects inserts the default subjects that are not present yet.
func SeedSubjects(db *gorm.DB) error {
	if err := repositories.NewSubjectRepository().EnsureNames(db, DefaultSubjects); err != nil {
		return fmt.Errorf("seed subjects: %w", err)
	}
	logger.Info("Subjects seeded", "count", len(DefaultSubjects))
	return nil
}

// SeedFirstAdmin creates the ADMIN account if email and password are set and no user owns the email.
func SeedFirstAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	userRepo := repositories.NewUserRepository()

	_, err := userRepo.FindByEmail(db, email)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", email)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Admin",
		Surname:      "Talemy",
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", email)
	return nil
}

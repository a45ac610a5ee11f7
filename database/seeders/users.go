package seeders

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"logistics-org/constants"
	"logistics-org/logger"
	"logistics-org/models/user"
)

const (
	adminUsername = "admin123"
	adminPassword = "admin123"
	agentPassword = "agent123"
)

// SeedUsers creates the fixed identity set: one admin and one agent per
// city in constants.ValidCities. Existing usernames are left untouched,
// so the seeder is safe to rerun.
func SeedUsers(db *gorm.DB) error {
	if err := seedUser(db, adminUsername, adminPassword, constants.RoleAdmin, nil); err != nil {
		return err
	}

	for _, city := range constants.ValidCities {
		c := city
		username := "agent_" + strings.ToLower(city)
		if err := seedUser(db, username, agentPassword, constants.RoleAgent, &c); err != nil {
			return err
		}
	}

	logger.Success("User seeding completed")
	return nil
}

func seedUser(db *gorm.DB, username, password, role string, city *string) error {
	var count int64
	if err := db.Model(&user.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("check existing user %s: %w", username, err)
	}
	if count > 0 {
		logger.Info(fmt.Sprintf("User %s already exists, skipping", username))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", username, err)
	}

	u := user.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		City:     city,
	}
	if err := db.Create(&u).Error; err != nil {
		return fmt.Errorf("create user %s: %w", username, err)
	}

	logger.Success("Seeded user: " + username)
	return nil
}

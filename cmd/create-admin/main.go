// Command create-admin registers a dashboard admin account.
package main

import (
	"flag"
	"strings"

	"launchsite-backend/internal/config"
	"launchsite-backend/internal/database"
	"launchsite-backend/internal/models"
	"launchsite-backend/internal/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		logrus.Fatal("Both -email and -password are required")
	}
	if !utils.IsValidEmail(*email) {
		logrus.Fatal("Invalid email address")
	}
	if len(*password) < 8 {
		logrus.Fatal("Password must be at least 8 characters")
	}

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	hash, err := utils.HashPassword(*password)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to hash password")
	}

	admin := models.AdminUser{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		logrus.WithError(err).Fatal("Failed to create admin user")
	}

	logrus.WithFields(logrus.Fields{
		"id":    admin.ID,
		"email": admin.Email,
	}).Info("Admin user created")
}

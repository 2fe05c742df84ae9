// Command init-db provisions the database schema from scripts/init.sql
// and prints the tables that exist afterwards.
package main

import (
	"flag"
	"os"

	"launchsite-backend/internal/config"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	scriptPath := flag.String("script", "scripts/init.sql", "path to the schema SQL script")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	cfg := config.Load()

	script, err := os.ReadFile(*scriptPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read schema script")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.Exec(string(script)).Error; err != nil {
		logrus.WithError(err).Fatal("Failed to apply schema script")
	}

	var tables []string
	err = db.Raw(`SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' ORDER BY table_name`).Scan(&tables).Error
	if err != nil {
		logrus.WithError(err).Fatal("Failed to list tables")
	}

	logrus.Info("Schema applied successfully")
	for _, table := range tables {
		logrus.WithField("table", table).Info("table ready")
	}
}

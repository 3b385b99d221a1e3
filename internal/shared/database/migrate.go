package database

import (
	"gorm.io/gorm"

	"stampcard/internal/attendees"
	"stampcard/internal/draws"
	"stampcard/internal/teams"
)

// Migrate creates the uuid extension the models default to, then the tables
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&teams.Team{},
		&attendees.Card{},
		&attendees.Stamp{},
		&draws.DrawResult{},
	)
}

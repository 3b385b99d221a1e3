package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints AutoMigrate does not express
func MigrateConstraints(db *gorm.DB) error {
	// A card holds at most one stamp per booth, even under concurrent scans
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_stamp_card_booth
		ON stamps (card_id, booth_id);
	`).Error
	if err != nil {
		return err
	}

	// Booth ids are 1-based
	err = db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_stamps_booth_positive') THEN
				ALTER TABLE stamps ADD CONSTRAINT chk_stamps_booth_positive CHECK (booth_id > 0);
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// History listing reads newest first
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_draw_results_drawn_at_desc
		ON draw_results (drawn_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}

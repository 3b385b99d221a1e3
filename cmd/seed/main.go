package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"stampcard/internal/attendees"
	"stampcard/internal/booths"
	"stampcard/internal/shared/config"
	"stampcard/internal/shared/database"
	"stampcard/internal/teams"
	"stampcard/pkg/logger"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting Stamp Card Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.HealthCheck(context.Background()); err != nil {
		log.Fatalf("Database not healthy: %v", err)
	}

	seeder := &Seeder{db: db, cfg: cfg}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"draw_results",
		"stamps",
		"cards",
		"teams",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds teams and a handful of demo cards
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	teamService := teams.NewService(teams.NewRepository(s.db.PostgreSQL), nil, logger.GetDefault())
	if err := s.SeedTeams(ctx, teamService); err != nil {
		return fmt.Errorf("failed to seed teams: %w", err)
	}

	if err := s.SeedCards(ctx, teamService); err != nil {
		return fmt.Errorf("failed to seed cards: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

func (s *Seeder) SeedTeams(ctx context.Context, teamService teams.Service) error {
	fmt.Println("  👥 Seeding teams...")

	if err := teamService.SeedDefaults(ctx, s.cfg.Draw.DefaultTeams); err != nil {
		return err
	}

	names, err := teamService.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Printf("    ✅ Created team: %s\n", name)
	}
	return nil
}

// SeedCards registers demo attendees with a spread of stamp counts so the
// draw panel shows both eligible and ineligible entries
func (s *Seeder) SeedCards(ctx context.Context, teamService teams.Service) error {
	fmt.Println("  🎫 Seeding cards...")

	catalog, err := booths.LoadCatalog(s.cfg.BoothsFile)
	if err != nil {
		return err
	}
	boothService, err := booths.NewService(catalog)
	if err != nil {
		return err
	}

	cardService := attendees.NewService(
		attendees.NewRepository(s.db.PostgreSQL),
		boothService,
		teamService,
		nil,
		s.cfg.Draw.MinStamps,
		logger.GetDefault(),
	)

	cardsData := []struct {
		name   string
		team   string
		stamps int
	}{
		{"Somchai P.", "CMG", 9},
		{"Nattaya K.", "OE", 7},
		{"Anan S.", "Finance", 6},
		{"Pimchanok R.", "Digital Governance", 4},
		{"Krit T.", "POD", 2},
		{"Mali W.", "Legal", 0},
	}

	for _, data := range cardsData {
		card, err := cardService.Register(ctx, &attendees.RegisterCardRequest{Name: data.name, Team: data.team})
		if err != nil {
			return fmt.Errorf("failed to create card %s: %w", data.name, err)
		}

		id, err := uuid.Parse(card.ID)
		if err != nil {
			return err
		}

		for i := 0; i < data.stamps && i < len(catalog); i++ {
			booth := catalog[i]
			if _, err := cardService.CollectStamp(ctx, id, &attendees.CollectStampRequest{
				BoothID: booth.ID,
				Code:    booth.SecretCode,
			}); err != nil {
				return fmt.Errorf("failed to stamp %s at booth %d: %w", data.name, booth.ID, err)
			}
		}

		fmt.Printf("    ✅ Created card: %s (%s, %d stamps)\n", data.name, data.team, data.stamps)
	}

	return nil
}

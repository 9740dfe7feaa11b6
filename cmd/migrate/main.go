package main

import (
	"flag"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/sponsor-digest/internal/infrastructure/database"
	"github.com/johnquangdev/sponsor-digest/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or status")
	steps := flag.Int("steps", 1, "number of migrations to roll back with -direction=down (0 = all)")
	dir := flag.String("dir", "", "migrations directory (defaults to DB_MIGRATIONS_DIR)")
	flag.Parse()

	// Only the database settings are needed here
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dir == "" {
		*dir = cfg.Database.MigrationsDir
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	switch *direction {
	case "up":
		if err := database.AutoMigrate(db, *dir); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	case "down":
		if _, err := database.RollbackMigrations(db, *dir, *steps); err != nil {
			log.Fatalf("Failed to roll back migrations: %v", err)
		}
	case "status":
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database connection: %v", err)
		}
		records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
		if err != nil {
			log.Fatalf("Failed to read migration records: %v", err)
		}
		for _, r := range records {
			log.Printf("✅ %s applied at %s", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		log.Printf("📋 %d migration(s) applied", len(records))
	default:
		log.Printf("Unknown direction %q", *direction)
		os.Exit(2)
	}
}

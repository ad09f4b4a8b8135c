// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.AuthenticationToken{},
		&models.Team{},
		&models.TeamInviteToken{},
		&models.TicketType{},
		&models.TicketOption{},
		&models.Ticket{},
		&models.Order{},
		&models.Subscription{},
		&models.Banner{},
		&models.RFIDLink{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	for _, stmt := range ciUniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("Failed to create index: %v", err)
		}
	}

	if err := seedTicketCatalog(db); err != nil {
		log.Fatalf("Failed to seed ticket catalog: %v", err)
	}

	log.Println("Migrations completed")
}

// ciUniqueIndexes back the case-insensitive uniqueness of usernames,
// emails and team names at the database level. The service layer
// pre-checks too, but only the index holds under concurrent inserts
// that differ in case alone.
var ciUniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_ci ON users (LOWER(username))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_ci ON users (LOWER(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_name_ci ON teams (LOWER(name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_email_ci ON subscriptions (LOWER(email))`,
}

// seedTicketCatalog inserts the sellable types and options when the
// catalog is empty. Prices live in the database, not in code paths.
func seedTicketCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TicketType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	deadline := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	types := []models.TicketType{
		{Name: "EARLY_FULL", Text: "Early bird, full event", Price: 25.0, Limit: 100, Deadline: &deadline},
		{Name: "REGULAR_FULL", Text: "Regular, full event", Price: 30.0, Limit: 0, Deadline: &deadline},
		{Name: "LATE_FULL", Text: "Late, full event", Price: 35.0, Limit: 0, Deadline: &deadline},
	}
	if err := db.Create(&types).Error; err != nil {
		return err
	}

	options := []models.TicketOption{
		{Name: "CH_MEMBER", Price: -2.5},
		{Name: "PICKUP_SERVICE", Price: 0},
	}
	return db.Create(&options).Error
}

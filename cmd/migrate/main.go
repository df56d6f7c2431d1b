package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stitts-dev/strikelab/internal/analysis"
	"github.com/stitts-dev/strikelab/internal/models"
	"github.com/stitts-dev/strikelab/internal/shots"
	"github.com/stitts-dev/strikelab/pkg/config"
	"github.com/stitts-dev/strikelab/pkg/database"
)

// seedOwner owns the demo session so local tokens can reach it.
var seedOwner = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_sessions_owner_date ON sessions(owner_id, session_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_sessions_pending_stats ON sessions(created_at) WHERE computed_stats IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_chat_messages_owner_created ON chat_messages(owner_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_coach_reports_owner_created ON coach_reports(owner_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	// children first
	tables := []string{
		"chat_messages",
		"coach_reports",
		"session_logs",
		"shots",
		"sessions",
	}

	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB) error {
	var count int64
	db.Model(&models.Session{}).Where("owner_id = ?", seedOwner).Count(&count)
	if count > 0 {
		logrus.Info("Seed data already present")
		return nil
	}

	demo := []shots.Shot{
		{ShotNumber: 1, Club: "7 Iron", CarryDistance: shots.Float(150), BallSpeed: shots.Float(112), ClubSpeed: shots.Float(82), SmashFactor: shots.Float(1.37), FaceToPath: shots.Float(-1.2), OfflineDistance: shots.Float(-4)},
		{ShotNumber: 2, Club: "7 Iron", CarryDistance: shots.Float(154), BallSpeed: shots.Float(114), ClubSpeed: shots.Float(82), SmashFactor: shots.Float(1.39), FaceToPath: shots.Float(0.4), OfflineDistance: shots.Float(2)},
		{ShotNumber: 3, Club: "7 Iron", CarryDistance: shots.Float(141), BallSpeed: shots.Float(105), ClubSpeed: shots.Float(81), SmashFactor: shots.Float(1.30), FaceToPath: shots.Float(2.8), OfflineDistance: shots.Float(11), IsMishit: true},
		{ShotNumber: 4, Club: "Driver", CarryDistance: shots.Float(232), BallSpeed: shots.Float(152), ClubSpeed: shots.Float(104), SmashFactor: shots.Float(1.46), FaceToPath: shots.Float(1.5), OfflineDistance: shots.Float(9)},
		{ShotNumber: 5, Club: "Driver", CarryDistance: shots.Float(225), BallSpeed: shots.Float(149), ClubSpeed: shots.Float(103), SmashFactor: shots.Float(1.45), FaceToPath: shots.Float(-0.8), OfflineDistance: shots.Float(-6)},
	}

	stats, err := json.Marshal(analysis.Analyze(demo))
	if err != nil {
		return fmt.Errorf("failed to encode seed analysis: %w", err)
	}

	name := "Demo range session"
	session := models.Session{
		OwnerID:       seedOwner,
		Source:        "csv",
		SessionType:   shots.DefaultSessionType,
		SessionDate:   time.Now().UTC(),
		Name:          &name,
		ComputedStats: datatypes.JSON(stats),
	}

	return db.Transaction(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create seed session: %w", err)
		}
		rows := make([]models.Shot, len(demo))
		for i, s := range demo {
			rows[i] = models.NewShot(session.ID, s)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create seed shots: %w", err)
		}
		logrus.Infof("Seeded session %s with %d shots", session.ID, len(rows))
		return nil
	})
}

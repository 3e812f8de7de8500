package main

import (
	"log"
	"os"

	"digraph-be/internal/entity"
	"digraph-be/internal/model"
	"digraph-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up Extensions...")
	// gen_random_uuid() defaults
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.User{}, &model.Topic{}, &model.Link{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Indexes...")
	postMigrationSQL := []string{
		// ChildOf / ChildOfAny use @> on the parent arrays
		`CREATE INDEX IF NOT EXISTS idx_topics_parent_topic_ids ON topics USING GIN (parent_topic_ids jsonb_path_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_links_parent_topic_ids ON links USING GIN (parent_topic_ids jsonb_path_ops);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Step 4: Seeding the root topic...")
	root := model.Topic{
		Id:             entity.RootTopicID,
		Name:           "Everything",
		ParentTopicIds: datatypes.JSONSlice[string]{},
		UserId:         uuid.Nil,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&root).Error; err != nil {
		log.Fatalf("Error: Failed to seed root topic: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

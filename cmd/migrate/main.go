package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [up|drop|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [up|drop|seed]")
		os.Exit(1)
	}
}

// createTables creates the users, emotions and emotional_signals tables.
// There are deliberately no foreign keys from posts to users: deleting an
// account leaves its posts in place as orphans, and the feed queries use a
// LEFT JOIN to tolerate the missing owner.
func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			google_id VARCHAR(255) UNIQUE,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			avatar TEXT,
			provider VARCHAR(50) NOT NULL DEFAULT 'google',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_login TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS emotions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			color VARCHAR(50) NOT NULL,
			pattern VARCHAR(50) NOT NULL CHECK (pattern IN (
				'waves', 'particles', 'spirals', 'ripples', 'circles', 'flow', 'pulse'
			)),
			motion_intensity DOUBLE PRECISION NOT NULL CHECK (motion_intensity >= 0 AND motion_intensity <= 1),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS emotional_signals (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			color VARCHAR(50) NOT NULL,
			motion VARCHAR(50) NOT NULL CHECK (motion IN (
				'wave', 'swirl', 'pulse', 'ripple'
			)),
			intensity DOUBLE PRECISION NOT NULL CHECK (intensity >= 0 AND intensity <= 100),
			silence_duration DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (silence_duration >= 0),
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_emotions_created_at ON emotions (created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_emotions_user_id ON emotions (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_timestamp ON emotional_signals (timestamp DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_user_id ON emotional_signals (user_id, timestamp DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	fmt.Println("  Created: users, emotions, emotional_signals")

	return nil
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS emotional_signals CASCADE`,
		`DROP TABLE IF EXISTS emotions CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	var userID string
	err := conn.QueryRow(ctx, `
		INSERT INTO users (google_id, email, name, avatar, provider)
		VALUES ('demo-google-id', 'demo@example.com', 'Demo User', NULL, 'google')
		ON CONFLICT (email) DO UPDATE SET last_login = NOW()
		RETURNING id`).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	emotions := []struct {
		color     string
		pattern   string
		intensity float64
	}{
		{"#4A90E2", "waves", 0.4},
		{"#E24A6F", "pulse", 0.8},
		{"#50C878", "circles", 0.2},
	}
	for _, e := range emotions {
		if _, err := conn.Exec(ctx, `
			INSERT INTO emotions (user_id, color, pattern, motion_intensity)
			VALUES ($1, $2, $3, $4)`, userID, e.color, e.pattern, e.intensity); err != nil {
			return fmt.Errorf("failed to seed emotion: %w", err)
		}
	}

	signals := []struct {
		color     string
		motion    string
		intensity float64
		silence   float64
	}{
		{"#4A90E2", "wave", 35, 0},
		{"#F5A623", "swirl", 72, 12.5},
	}
	for _, s := range signals {
		if _, err := conn.Exec(ctx, `
			INSERT INTO emotional_signals (user_id, color, motion, intensity, silence_duration)
			VALUES ($1, $2, $3, $4, $5)`, userID, s.color, s.motion, s.intensity, s.silence); err != nil {
			return fmt.Errorf("failed to seed signal: %w", err)
		}
	}

	fmt.Printf("  Seeded demo user %s with %d emotions and %d signals\n", userID, len(emotions), len(signals))
	return nil
}

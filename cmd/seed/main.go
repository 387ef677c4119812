package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/weekly-report-api/config"
	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
	"github.com/oksasatya/weekly-report-api/pkg/reportform"
)

// The users table enforces uniqueness with an expression index on
// lower(email), so the conflict target must name that expression for
// Postgres to infer the arbiter index.
const upsertUserSQL = `
	INSERT INTO users (email, password_hash, name, department)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT ((lower(email))) DO UPDATE SET name=EXCLUDED.name
	RETURNING id
`

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(upsertUserSQL, email, hash, name, "Engineering").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	// One draft report for the current reporting week
	start, end := reportform.WeekRange(time.Now(), 0)
	hours := 6.5
	tasks := mustJSON([]entity.Task{
		{Title: "Reviewed onboarding flow", TimeSpent: &hours, Priority: entity.PriorityHigh},
	})
	wip := mustJSON([]entity.Task{
		{Title: "Migrating report exports", Priority: entity.PriorityMedium},
	})
	challenges := mustJSON([]entity.Challenge{
		{Description: "Flaky staging environment", Solution: "Pinned service versions"},
	})

	var reportID string
	err = db.QueryRow(`
		INSERT INTO reports (user_id, week_start_date, week_end_date, tasks_completed, work_in_progress, challenges, improvements, next_week_plan, summary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, userID, start, end, tasks, wip, challenges,
		"Learned the new export pipeline", "Finish export migration", "Productive week overall", entity.StatusDraft,
	).Scan(&reportID)
	if err != nil {
		log.Fatalf("failed to seed report: %v", err)
	}
	fmt.Printf("seeded draft report: id=%s week=%s..%s\n", reportID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("marshal seed data: %v", err)
	}
	return b
}

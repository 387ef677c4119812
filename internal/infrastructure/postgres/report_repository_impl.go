package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	"github.com/oksasatya/weekly-report-api/internal/domain/repository"
)

// ReportRepository persists reports in a single table. Task and Challenge
// rows are embedded JSONB columns, preserving insertion order; they never
// outlive their report.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `
	id, user_id, week_start_date, week_end_date,
	tasks_completed, work_in_progress, challenges,
	improvements, next_week_plan, summary,
	status, submitted_at, created_at, updated_at`

func scanReport(row pgx.Row) (*entity.Report, error) {
	rep := &entity.Report{}
	if err := row.Scan(
		&rep.ID, &rep.UserID, &rep.WeekStartDate, &rep.WeekEndDate,
		&rep.TasksCompleted, &rep.WorkInProgress, &rep.Challenges,
		&rep.Improvements, &rep.NextWeekPlan, &rep.Summary,
		&rep.Status, &rep.SubmittedAt, &rep.CreatedAt, &rep.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rep, nil
}

func (r *ReportRepository) Create(ctx context.Context, rep *entity.Report) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reports (
			user_id, week_start_date, week_end_date,
			tasks_completed, work_in_progress, challenges,
			improvements, next_week_plan, summary,
			status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`,
		rep.UserID, rep.WeekStartDate, rep.WeekEndDate,
		rep.TasksCompleted, rep.WorkInProgress, rep.Challenges,
		rep.Improvements, rep.NextWeekPlan, rep.Summary,
		rep.Status, rep.SubmittedAt,
	)

	return row.Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE id = $1
	`, id)
	return scanReport(row)
}

func (r *ReportRepository) ListByOwner(ctx context.Context, ownerID string, f repository.ReportFilter) ([]*entity.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE user_id = $1`
	args := []any{ownerID}
	if f.Status != "" {
		query += ` AND status = $2`
		args = append(args, f.Status)
	}
	query += ` ORDER BY week_start_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*entity.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) Update(ctx context.Context, rep *entity.Report) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE reports
		SET week_start_date = $1, week_end_date = $2,
			tasks_completed = $3, work_in_progress = $4, challenges = $5,
			improvements = $6, next_week_plan = $7, summary = $8,
			status = $9, submitted_at = $10, updated_at = now()
		WHERE id = $11
		RETURNING updated_at
	`,
		rep.WeekStartDate, rep.WeekEndDate,
		rep.TasksCompleted, rep.WorkInProgress, rep.Challenges,
		rep.Improvements, rep.NextWeekPlan, rep.Summary,
		rep.Status, rep.SubmittedAt, rep.ID,
	)

	if err := row.Scan(&rep.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ReportRepository = (*ReportRepository)(nil)

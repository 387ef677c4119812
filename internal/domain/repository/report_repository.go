package repository

import (
	"context"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

// ReportFilter narrows ListByOwner. An empty Status means no status filter.
type ReportFilter struct {
	Status string
}

// ReportRepository defines the interface for report persistence.
// ListByOwner returns the owner's reports ordered by week start date,
// most recent week first.
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	ListByOwner(ctx context.Context, ownerID string, f ReportFilter) ([]*entity.Report, error)
	Update(ctx context.Context, r *entity.Report) error
	Delete(ctx context.Context, id string) error
}

package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	repo "github.com/oksasatya/weekly-report-api/internal/domain/repository"
)

type mockReportRepo struct {
	create      func(ctx context.Context, r *entity.Report) error
	getByID     func(ctx context.Context, id string) (*entity.Report, error)
	listByOwner func(ctx context.Context, ownerID string, f repo.ReportFilter) ([]*entity.Report, error)
	update      func(ctx context.Context, r *entity.Report) error
	delete      func(ctx context.Context, id string) error
}

var _ repo.ReportRepository = (*mockReportRepo)(nil)

func (m *mockReportRepo) Create(ctx context.Context, r *entity.Report) error {
	return m.create(ctx, r)
}

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	return m.getByID(ctx, id)
}

func (m *mockReportRepo) ListByOwner(ctx context.Context, ownerID string, f repo.ReportFilter) ([]*entity.Report, error) {
	return m.listByOwner(ctx, ownerID, f)
}

func (m *mockReportRepo) Update(ctx context.Context, r *entity.Report) error {
	return m.update(ctx, r)
}

func (m *mockReportRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

func newReportService(r *mockReportRepo) *ReportService {
	return NewReportService(r, nil, nil, "reports", nil, nil)
}

func week() (time.Time, time.Time) {
	start := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 5)
}

func draftFor(owner string) *entity.Report {
	start, end := week()
	return &entity.Report{
		ID:            "r1",
		UserID:        owner,
		WeekStartDate: start,
		WeekEndDate:   end,
		Status:        entity.StatusDraft,
		Summary:       "a week",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateRequiresDates(t *testing.T) {
	svc := newReportService(&mockReportRepo{})
	_, err := svc.Create(context.Background(), "u1", CreateReportInput{})
	if !errors.Is(err, ErrMissingDates) {
		t.Fatalf("err = %v, want ErrMissingDates", err)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc := newReportService(&mockReportRepo{})
	start, end := week()
	_, err := svc.Create(context.Background(), "u1", CreateReportInput{
		WeekStartDate: start, WeekEndDate: end, Status: "archived",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestCreateDefaultsToDraft(t *testing.T) {
	var stored *entity.Report
	svc := newReportService(&mockReportRepo{
		create: func(_ context.Context, r *entity.Report) error {
			r.ID = "r1"
			stored = r
			return nil
		},
	})

	start, end := week()
	r, err := svc.Create(context.Background(), "u1", CreateReportInput{WeekStartDate: start, WeekEndDate: end})
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != entity.StatusDraft {
		t.Errorf("status = %q, want draft", stored.Status)
	}
	if r.SubmittedAt != nil {
		t.Error("draft must not carry a submission timestamp")
	}
	if r.UserID != "u1" {
		t.Errorf("owner = %q, want u1", r.UserID)
	}
}

func TestCreateSubmittedStampsTimestamp(t *testing.T) {
	svc := newReportService(&mockReportRepo{
		create: func(_ context.Context, r *entity.Report) error { r.ID = "r1"; return nil },
	})

	before := time.Now().UTC()
	start, end := week()
	r, err := svc.Create(context.Background(), "u1", CreateReportInput{
		WeekStartDate:  start,
		WeekEndDate:    end,
		TasksCompleted: []entity.Task{{Title: "did it"}},
		Summary:        "done",
		Status:         entity.StatusSubmitted,
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.SubmittedAt == nil {
		t.Fatal("submitted report missing SubmittedAt")
	}
	if r.SubmittedAt.Before(before) {
		t.Errorf("SubmittedAt %v predates the operation", r.SubmittedAt)
	}
}

func TestCreateDropsBlankRows(t *testing.T) {
	var stored *entity.Report
	svc := newReportService(&mockReportRepo{
		create: func(_ context.Context, r *entity.Report) error { stored = r; return nil },
	})

	start, end := week()
	_, err := svc.Create(context.Background(), "u1", CreateReportInput{
		WeekStartDate: start,
		WeekEndDate:   end,
		TasksCompleted: []entity.Task{
			{Title: "kept"},
			{Title: "   "},
		},
		Challenges: []entity.Challenge{{Description: ""}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.TasksCompleted) != 1 {
		t.Errorf("tasks = %d, want 1", len(stored.TasksCompleted))
	}
	if len(stored.Challenges) != 0 {
		t.Errorf("challenges = %d, want 0", len(stored.Challenges))
	}
}

func TestGetDistinguishesMissingFromForeign(t *testing.T) {
	svc := newReportService(&mockReportRepo{
		getByID: func(_ context.Context, id string) (*entity.Report, error) {
			if id == "missing" {
				return nil, repo.ErrNotFound
			}
			return draftFor("someone-else"), nil
		},
	})

	if _, err := svc.Get(context.Background(), "u1", "missing"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("missing report err = %v, want ErrReportNotFound", err)
	}
	if _, err := svc.Get(context.Background(), "u1", "r1"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign report err = %v, want ErrNotOwner", err)
	}
}

func TestListPassesStatusFilter(t *testing.T) {
	var gotFilter repo.ReportFilter
	svc := newReportService(&mockReportRepo{
		listByOwner: func(_ context.Context, ownerID string, f repo.ReportFilter) ([]*entity.Report, error) {
			gotFilter = f
			return []*entity.Report{}, nil
		},
	})

	rs, err := svc.List(context.Background(), "u1", entity.StatusSubmitted)
	if err != nil {
		t.Fatal(err)
	}
	if gotFilter.Status != entity.StatusSubmitted {
		t.Errorf("filter = %+v", gotFilter)
	}
	if rs == nil || len(rs) != 0 {
		t.Errorf("empty list should be an empty slice, got %v", rs)
	}

	if _, err := svc.List(context.Background(), "u1", "bogus"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bogus filter err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateRejectsSubmittedReport(t *testing.T) {
	submitted := draftFor("u1")
	submitted.Status = entity.StatusSubmitted
	svc := newReportService(&mockReportRepo{
		getByID: func(_ context.Context, _ string) (*entity.Report, error) { return submitted, nil },
	})

	_, err := svc.Update(context.Background(), "u1", "r1", UpdateReportInput{Summary: strPtr("rewrite")})
	if !errors.Is(err, ErrReportSubmitted) {
		t.Fatalf("err = %v, want ErrReportSubmitted", err)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	var stored *entity.Report
	svc := newReportService(&mockReportRepo{
		getByID: func(_ context.Context, _ string) (*entity.Report, error) {
			r := draftFor("u1")
			r.Improvements = "original improvements"
			r.NextWeekPlan = "original plan"
			return r, nil
		},
		update: func(_ context.Context, r *entity.Report) error { stored = r; return nil },
	})

	r, err := svc.Update(context.Background(), "u1", "r1", UpdateReportInput{
		Summary: strPtr("new summary"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Summary != "new summary" {
		t.Errorf("summary = %q", r.Summary)
	}
	if stored.Improvements != "original improvements" || stored.NextWeekPlan != "original plan" {
		t.Error("untouched fields were overwritten")
	}
	if stored.Status != entity.StatusDraft || stored.SubmittedAt != nil {
		t.Error("update without status change must stay a draft")
	}
}

func TestUpdateTransitionStampsSubmittedAt(t *testing.T) {
	var stored *entity.Report
	svc := newReportService(&mockReportRepo{
		getByID: func(_ context.Context, _ string) (*entity.Report, error) { return draftFor("u1"), nil },
		update:  func(_ context.Context, r *entity.Report) error { stored = r; return nil },
	})

	before := time.Now().UTC()
	r, err := svc.Update(context.Background(), "u1", "r1", UpdateReportInput{
		Status: strPtr(entity.StatusSubmitted),
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != entity.StatusSubmitted {
		t.Fatalf("status = %q", r.Status)
	}
	if stored.SubmittedAt == nil || stored.SubmittedAt.Before(before) {
		t.Errorf("SubmittedAt = %v, want stamped at or after %v", stored.SubmittedAt, before)
	}
}

func TestUpdateOwnershipAndExistence(t *testing.T) {
	svc := newReportService(&mockReportRepo{
		getByID: func(_ context.Context, id string) (*entity.Report, error) {
			if id == "missing" {
				return nil, repo.ErrNotFound
			}
			return draftFor("other"), nil
		},
	})

	if _, err := svc.Update(context.Background(), "u1", "missing", UpdateReportInput{}); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("missing err = %v", err)
	}
	if _, err := svc.Update(context.Background(), "u1", "r1", UpdateReportInput{}); !errors.Is(err, ErrNotOwner) {
		t.Errorf("foreign err = %v", err)
	}
}

func TestDelete(t *testing.T) {
	deleted := ""
	svc := newReportService(&mockReportRepo{
		getByID: func(_ context.Context, id string) (*entity.Report, error) {
			if id == "missing" {
				return nil, repo.ErrNotFound
			}
			return draftFor("u1"), nil
		},
		delete: func(_ context.Context, id string) error { deleted = id; return nil },
	})

	if err := svc.Delete(context.Background(), "u1", "r1"); err != nil {
		t.Fatal(err)
	}
	if deleted != "r1" {
		t.Errorf("deleted = %q", deleted)
	}

	if err := svc.Delete(context.Background(), "u1", "missing"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("missing delete err = %v", err)
	}
}

func TestSearchFallsBackToScan(t *testing.T) {
	a := draftFor("u1")
	a.ID = "a"
	a.Summary = "kubernetes migration went fine"
	b := draftFor("u1")
	b.ID = "b"
	b.Summary = "ordinary week"
	b.TasksCompleted = []entity.Task{{Title: "Fixed Kubernetes ingress"}}
	c := draftFor("u1")
	c.ID = "c"
	c.Summary = "nothing related"

	svc := newReportService(&mockReportRepo{
		listByOwner: func(_ context.Context, _ string, _ repo.ReportFilter) ([]*entity.Report, error) {
			return []*entity.Report{a, b, c}, nil
		},
	})

	got, err := svc.Search(context.Background(), "u1", "kubernetes")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("hit ids = %s,%s", got[0].ID, got[1].ID)
	}
}

// The index projection and the scan fallback must cover the same text,
// or the same query returns different hits depending on whether the
// cluster is reachable.
func TestIndexProjectionCoversScanFields(t *testing.T) {
	r := draftFor("u1")
	r.Challenges = []entity.Challenge{
		{Description: "flaky pipeline", Solution: "pinned the runner image"},
	}
	r.TasksCompleted = []entity.Task{{Title: "fixed ingress"}}
	r.WorkInProgress = []entity.Task{{Title: "search rollout"}}

	doc := toDoc(r)

	joined := strings.Join(append(append([]string{
		doc.Summary, doc.Improvements, doc.NextWeekPlan,
	}, doc.Tasks...), doc.Challenges...), "\n")

	for _, needle := range []string{
		"flaky pipeline", "pinned the runner image", "fixed ingress", "search rollout",
	} {
		if !reportMatches(r, needle) {
			t.Errorf("scan fallback does not match %q", needle)
		}
		if !strings.Contains(joined, needle) {
			t.Errorf("index projection does not carry %q", needle)
		}
	}
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	svc := newReportService(&mockReportRepo{
		listByOwner: func(_ context.Context, _ string, f repo.ReportFilter) ([]*entity.Report, error) {
			if f.Status != "" {
				t.Errorf("unexpected status filter %q", f.Status)
			}
			return []*entity.Report{draftFor("u1")}, nil
		},
	})

	got, err := svc.Search(context.Background(), "u1", "   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("hits = %d, want 1", len(got))
	}
}

package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	repo "github.com/oksasatya/weekly-report-api/internal/domain/repository"
	"github.com/oksasatya/weekly-report-api/pkg/mailer"
	"github.com/oksasatya/weekly-report-api/pkg/mailer/templates"
	"github.com/oksasatya/weekly-report-api/pkg/reportform"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrNotOwner        = errors.New("report belongs to another user")
	ErrReportSubmitted = errors.New("submitted reports cannot be modified")
	ErrMissingDates    = errors.New("week start and end dates are required")
	ErrInvalidStatus   = errors.New("status must be draft or submitted")
)

// Publisher is the slice of RabbitPublisher the report flow needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ReportService owns the report lifecycle: create, read, update, delete,
// and the one-way draft to submitted transition. Every operation is
// scoped to the owner taken from the session, never from the payload.
type ReportService struct {
	Reports repo.ReportRepository
	Users   repo.UserRepository
	ES      *elasticsearch.Client
	ESIndex string
	Pub     Publisher
	Logger  *logrus.Logger

	// Branding passed through to the submission receipt email.
	AppURL      string
	CompanyName string
}

func NewReportService(reports repo.ReportRepository, users repo.UserRepository, es *elasticsearch.Client, esIndex string, pub Publisher, logger *logrus.Logger) *ReportService {
	return &ReportService{Reports: reports, Users: users, ES: es, ESIndex: esIndex, Pub: pub, Logger: logger}
}

// CreateReportInput carries a full report payload. Zero dates are rejected.
type CreateReportInput struct {
	WeekStartDate  time.Time
	WeekEndDate    time.Time
	TasksCompleted []entity.Task
	WorkInProgress []entity.Task
	Challenges     []entity.Challenge
	Improvements   string
	NextWeekPlan   string
	Summary        string
	Status         string
}

// UpdateReportInput is a partial patch; nil fields keep the stored value.
type UpdateReportInput struct {
	WeekStartDate  *time.Time
	WeekEndDate    *time.Time
	TasksCompleted *[]entity.Task
	WorkInProgress *[]entity.Task
	Challenges     *[]entity.Challenge
	Improvements   *string
	NextWeekPlan   *string
	Summary        *string
	Status         *string
}

func validStatus(s string) bool {
	return s == entity.StatusDraft || s == entity.StatusSubmitted
}

// Create stores a new report for ownerID. Blank rows are dropped, the
// status defaults to draft, and a report created directly as submitted
// gets its SubmittedAt stamped here, never from the client.
func (s *ReportService) Create(ctx context.Context, ownerID string, in CreateReportInput) (*entity.Report, error) {
	if in.WeekStartDate.IsZero() || in.WeekEndDate.IsZero() {
		return nil, ErrMissingDates
	}
	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	r := &entity.Report{
		UserID:         ownerID,
		WeekStartDate:  in.WeekStartDate,
		WeekEndDate:    in.WeekEndDate,
		TasksCompleted: reportform.FilterTasks(in.TasksCompleted),
		WorkInProgress: reportform.FilterTasks(in.WorkInProgress),
		Challenges:     reportform.FilterChallenges(in.Challenges),
		Improvements:   in.Improvements,
		NextWeekPlan:   in.NextWeekPlan,
		Summary:        in.Summary,
		Status:         status,
	}
	if status == entity.StatusSubmitted {
		now := time.Now().UTC()
		r.SubmittedAt = &now
	}

	if err := s.Reports.Create(ctx, r); err != nil {
		return nil, err
	}

	s.indexReport(ctx, r)
	if r.IsSubmitted() {
		s.notifySubmitted(ctx, r)
	}
	return r, nil
}

// Get returns the report only to its owner. A missing report and a
// foreign report produce different errors so the handler can answer
// 404 and 403 distinctly.
func (s *ReportService) Get(ctx context.Context, ownerID, id string) (*entity.Report, error) {
	r, err := s.Reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if r.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return r, nil
}

// List returns the owner's reports, optionally filtered by status,
// newest week first. An empty result is a valid empty slice.
func (s *ReportService) List(ctx context.Context, ownerID, status string) ([]*entity.Report, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.Reports.ListByOwner(ctx, ownerID, repo.ReportFilter{Status: status})
}

// Update patches a draft. Submitted reports are immutable. When the
// patch moves the status from draft to submitted, SubmittedAt is
// stamped server-side; any client-supplied timestamp is ignored.
func (s *ReportService) Update(ctx context.Context, ownerID, id string, in UpdateReportInput) (*entity.Report, error) {
	r, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if r.IsSubmitted() {
		return nil, ErrReportSubmitted
	}

	if in.Status != nil && !validStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}
	if in.WeekStartDate != nil {
		r.WeekStartDate = *in.WeekStartDate
	}
	if in.WeekEndDate != nil {
		r.WeekEndDate = *in.WeekEndDate
	}
	if r.WeekStartDate.IsZero() || r.WeekEndDate.IsZero() {
		return nil, ErrMissingDates
	}
	if in.TasksCompleted != nil {
		r.TasksCompleted = reportform.FilterTasks(*in.TasksCompleted)
	}
	if in.WorkInProgress != nil {
		r.WorkInProgress = reportform.FilterTasks(*in.WorkInProgress)
	}
	if in.Challenges != nil {
		r.Challenges = reportform.FilterChallenges(*in.Challenges)
	}
	if in.Improvements != nil {
		r.Improvements = *in.Improvements
	}
	if in.NextWeekPlan != nil {
		r.NextWeekPlan = *in.NextWeekPlan
	}
	if in.Summary != nil {
		r.Summary = *in.Summary
	}

	becameSubmitted := false
	if in.Status != nil && *in.Status == entity.StatusSubmitted {
		r.Status = entity.StatusSubmitted
		now := time.Now().UTC()
		r.SubmittedAt = &now
		becameSubmitted = true
	}

	if err := s.Reports.Update(ctx, r); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	s.indexReport(ctx, r)
	if becameSubmitted {
		s.notifySubmitted(ctx, r)
	}
	return r, nil
}

// Delete removes the owner's report. Drafts and submitted reports alike
// can be deleted; only modification is blocked after submission.
func (s *ReportService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.Reports.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// reportDoc is the search projection of a report.
type reportDoc struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	WeekStartDate string   `json:"week_start_date"`
	WeekEndDate   string   `json:"week_end_date"`
	Status        string   `json:"status"`
	Summary       string   `json:"summary"`
	Improvements  string   `json:"improvements"`
	NextWeekPlan  string   `json:"next_week_plan"`
	Tasks         []string `json:"tasks"`
	Challenges    []string `json:"challenges"`
}

func toDoc(r *entity.Report) reportDoc {
	doc := reportDoc{
		ID:            r.ID,
		UserID:        r.UserID,
		WeekStartDate: r.WeekStartDate.Format("2006-01-02"),
		WeekEndDate:   r.WeekEndDate.Format("2006-01-02"),
		Status:        r.Status,
		Summary:       r.Summary,
		Improvements:  r.Improvements,
		NextWeekPlan:  r.NextWeekPlan,
	}
	for _, t := range r.TasksCompleted {
		doc.Tasks = append(doc.Tasks, t.Title)
	}
	for _, t := range r.WorkInProgress {
		doc.Tasks = append(doc.Tasks, t.Title)
	}
	for _, c := range r.Challenges {
		doc.Challenges = append(doc.Challenges, c.Description)
		if c.Solution != "" {
			doc.Challenges = append(doc.Challenges, c.Solution)
		}
	}
	return doc
}

// Search performs a full-text lookup over the owner's reports. It hits
// Elasticsearch when configured and falls back to a substring scan over
// the owner's list otherwise, so the endpoint works without the cluster.
func (s *ReportService) Search(ctx context.Context, ownerID, q string) ([]*entity.Report, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.List(ctx, ownerID, "")
	}
	if s.ES == nil {
		return s.scanSearch(ctx, ownerID, q)
	}

	ids, err := s.searchIDs(ctx, ownerID, q)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("elasticsearch query failed, falling back to scan")
		}
		return s.scanSearch(ctx, ownerID, q)
	}

	out := make([]*entity.Report, 0, len(ids))
	for _, id := range ids {
		r, err := s.Reports.GetByID(ctx, id)
		if err != nil {
			continue // index may be ahead of the table
		}
		if r.UserID != ownerID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *ReportService) searchIDs(ctx context.Context, ownerID, q string) ([]string, error) {
	query := map[string]any{
		"size": 50,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"user_id": ownerID}},
				},
				"must": []any{
					map[string]any{"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"summary", "improvements", "next_week_plan", "tasks", "challenges"},
					}},
				},
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.New("elasticsearch: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func (s *ReportService) scanSearch(ctx context.Context, ownerID, q string) ([]*entity.Report, error) {
	all, err := s.Reports.ListByOwner(ctx, ownerID, repo.ReportFilter{})
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]*entity.Report, 0)
	for _, r := range all {
		if reportMatches(r, needle) {
			out = append(out, r)
		}
	}
	return out, nil
}

func reportMatches(r *entity.Report, needle string) bool {
	fields := []string{r.Summary, r.Improvements, r.NextWeekPlan}
	for _, t := range r.TasksCompleted {
		fields = append(fields, t.Title)
	}
	for _, t := range r.WorkInProgress {
		fields = append(fields, t.Title)
	}
	for _, c := range r.Challenges {
		fields = append(fields, c.Description, c.Solution)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// indexReport mirrors the report into Elasticsearch. Best effort; a
// failure is logged and never surfaces to the caller.
func (s *ReportService) indexReport(ctx context.Context, r *entity.Report) {
	if s.ES == nil || r.ID == "" {
		return
	}
	body, err := json.Marshal(toDoc(r))
	if err != nil {
		return
	}
	res, err := s.ES.Index(s.ESIndex, bytes.NewReader(body),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(r.ID),
	)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("report_id", r.ID).Warn("index report failed")
		}
		return
	}
	defer res.Body.Close()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("report_id", r.ID).Warn("index report failed")
	}
}

func (s *ReportService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil {
		return
	}
	res, err := s.ES.Delete(s.ESIndex, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("report_id", id).Warn("delete report from index failed")
		}
		return
	}
	defer res.Body.Close()
}

// notifySubmitted queues the submission receipt email. Best effort.
func (s *ReportService) notifySubmitted(ctx context.Context, r *entity.Report) {
	if s.Pub == nil || s.Users == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, r.UserID)
	if err != nil || u == nil {
		return
	}

	weekLabel := r.WeekStartDate.Format("January 2") + " - " + r.WeekEndDate.Format("January 2, 2006")
	submittedAt := ""
	if r.SubmittedAt != nil {
		submittedAt = r.SubmittedAt.Format("January 2, 2006 15:04 MST")
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.ReportSubmitted,
		Data: map[string]any{
			"Name":        u.Name,
			"WeekLabel":   weekLabel,
			"SubmittedAt": submittedAt,
			"ReportURL":   s.AppURL + "/reports/" + r.ID,
			"AppURL":      s.AppURL,
			"CompanyName": s.CompanyName,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("report_id", r.ID).Warn("enqueue submission email failed")
	}
}

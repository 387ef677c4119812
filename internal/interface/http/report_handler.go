package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/weekly-report-api/internal/application"
	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	"github.com/oksasatya/weekly-report-api/pkg/response"
	"github.com/oksasatya/weekly-report-api/pkg/validation"
)

type ReportHandler struct {
	Svc    *application.ReportService
	Logger *logrus.Logger
}

func NewReportHandler(svc *application.ReportService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{Svc: svc, Logger: logger}
}

type taskPayload struct {
	Title     string   `json:"title"`
	TimeSpent *float64 `json:"timeSpent" binding:"omitempty,gte=0"`
	Priority  string   `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

type challengePayload struct {
	Description string `json:"description"`
	Solution    string `json:"solution"`
}

type createReportRequest struct {
	WeekStartDate  string             `json:"weekStartDate" binding:"required"`
	WeekEndDate    string             `json:"weekEndDate" binding:"required"`
	TasksCompleted []taskPayload      `json:"tasksCompleted" binding:"omitempty,dive"`
	WorkInProgress []taskPayload      `json:"workInProgress" binding:"omitempty,dive"`
	Challenges     []challengePayload `json:"challenges"`
	Improvements   string             `json:"improvements"`
	NextWeekPlan   string             `json:"nextWeekPlan"`
	Summary        string             `json:"summary"`
	Status         string             `json:"status" binding:"omitempty,oneof=draft submitted"`
}

// updateReportRequest distinguishes absent fields from zero values so a
// patch only touches what the client sent.
type updateReportRequest struct {
	WeekStartDate  *string             `json:"weekStartDate"`
	WeekEndDate    *string             `json:"weekEndDate"`
	TasksCompleted *[]taskPayload      `json:"tasksCompleted" binding:"omitempty,dive"`
	WorkInProgress *[]taskPayload      `json:"workInProgress" binding:"omitempty,dive"`
	Challenges     *[]challengePayload `json:"challenges"`
	Improvements   *string             `json:"improvements"`
	NextWeekPlan   *string             `json:"nextWeekPlan"`
	Summary        *string             `json:"summary"`
	Status         *string             `json:"status" binding:"omitempty,oneof=draft submitted"`
}

type reportView struct {
	ID             string             `json:"id"`
	UserID         string             `json:"userId"`
	WeekStartDate  string             `json:"weekStartDate"`
	WeekEndDate    string             `json:"weekEndDate"`
	TasksCompleted []entity.Task      `json:"tasksCompleted"`
	WorkInProgress []entity.Task      `json:"workInProgress"`
	Challenges     []entity.Challenge `json:"challenges"`
	Improvements   string             `json:"improvements,omitempty"`
	NextWeekPlan   string             `json:"nextWeekPlan,omitempty"`
	Summary        string             `json:"summary,omitempty"`
	Status         string             `json:"status"`
	SubmittedAt    *time.Time         `json:"submittedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func toReportView(r *entity.Report) reportView {
	return reportView{
		ID:             r.ID,
		UserID:         r.UserID,
		WeekStartDate:  r.WeekStartDate.Format("2006-01-02"),
		WeekEndDate:    r.WeekEndDate.Format("2006-01-02"),
		TasksCompleted: r.TasksCompleted,
		WorkInProgress: r.WorkInProgress,
		Challenges:     r.Challenges,
		Improvements:   r.Improvements,
		NextWeekPlan:   r.NextWeekPlan,
		Summary:        r.Summary,
		Status:         r.Status,
		SubmittedAt:    r.SubmittedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toReportViews(rs []*entity.Report) []reportView {
	out := make([]reportView, 0, len(rs))
	for _, r := range rs {
		out = append(out, toReportView(r))
	}
	return out
}

// parseDate accepts the date-only form the web client sends, falling
// back to RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func toTasks(in []taskPayload) []entity.Task {
	out := make([]entity.Task, 0, len(in))
	for _, t := range in {
		out = append(out, entity.Task{Title: t.Title, TimeSpent: t.TimeSpent, Priority: t.Priority})
	}
	return out
}

func toChallenges(in []challengePayload) []entity.Challenge {
	out := make([]entity.Challenge, 0, len(in))
	for _, c := range in {
		out = append(out, entity.Challenge{Description: c.Description, Solution: c.Solution})
	}
	return out
}

// failReport maps service errors onto the status codes the client relies
// on: missing report and foreign report stay distinguishable.
func (h *ReportHandler) failReport(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrReportNotFound):
		response.Fail[any](c, http.StatusNotFound, "report not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Fail[any](c, http.StatusForbidden, "you do not have access to this report", nil)
	case errors.Is(err, application.ErrReportSubmitted):
		response.Fail[any](c, http.StatusConflict, "submitted reports cannot be modified", nil)
	case errors.Is(err, application.ErrMissingDates), errors.Is(err, application.ErrInvalidStatus):
		response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		h.Logger.WithError(err).Error("report operation failed")
		response.Fail[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

// Create POST /api/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	start, err := parseDate(req.WeekStartDate)
	if err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid weekStartDate", nil)
		return
	}
	end, err := parseDate(req.WeekEndDate)
	if err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid weekEndDate", nil)
		return
	}

	uid := c.GetString("userID")
	r, err := h.Svc.Create(c.Request.Context(), uid, application.CreateReportInput{
		WeekStartDate:  start,
		WeekEndDate:    end,
		TasksCompleted: toTasks(req.TasksCompleted),
		WorkInProgress: toTasks(req.WorkInProgress),
		Challenges:     toChallenges(req.Challenges),
		Improvements:   req.Improvements,
		NextWeekPlan:   req.NextWeekPlan,
		Summary:        req.Summary,
		Status:         req.Status,
	})
	if err != nil {
		h.failReport(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toReportView(r), "report created", nil)
}

// List GET /api/reports?status=draft|submitted
func (h *ReportHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	status := c.Query("status")

	rs, err := h.Svc.List(c.Request.Context(), uid, status)
	if err != nil {
		h.failReport(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportViews(rs), "", gin.H{"count": len(rs)})
}

// Get GET /api/reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	r, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.failReport(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportView(r), "", nil)
}

// Update PUT /api/reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateReportInput{
		Improvements: req.Improvements,
		NextWeekPlan: req.NextWeekPlan,
		Summary:      req.Summary,
		Status:       req.Status,
	}
	if req.WeekStartDate != nil {
		t, err := parseDate(*req.WeekStartDate)
		if err != nil {
			response.Fail[any](c, http.StatusBadRequest, "invalid weekStartDate", nil)
			return
		}
		in.WeekStartDate = &t
	}
	if req.WeekEndDate != nil {
		t, err := parseDate(*req.WeekEndDate)
		if err != nil {
			response.Fail[any](c, http.StatusBadRequest, "invalid weekEndDate", nil)
			return
		}
		in.WeekEndDate = &t
	}
	if req.TasksCompleted != nil {
		tasks := toTasks(*req.TasksCompleted)
		in.TasksCompleted = &tasks
	}
	if req.WorkInProgress != nil {
		tasks := toTasks(*req.WorkInProgress)
		in.WorkInProgress = &tasks
	}
	if req.Challenges != nil {
		chs := toChallenges(*req.Challenges)
		in.Challenges = &chs
	}

	uid := c.GetString("userID")
	r, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), in)
	if err != nil {
		h.failReport(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportView(r), "report updated", nil)
}

// Delete DELETE /api/reports/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.failReport(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "report deleted", nil)
}

// Search GET /api/reports/search?q=
func (h *ReportHandler) Search(c *gin.Context) {
	uid := c.GetString("userID")
	rs, err := h.Svc.Search(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		h.failReport(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportViews(rs), "", gin.H{"count": len(rs)})
}

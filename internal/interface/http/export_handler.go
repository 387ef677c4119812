package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/weekly-report-api/internal/application"
	"github.com/oksasatya/weekly-report-api/pkg/export"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
	"github.com/oksasatya/weekly-report-api/pkg/response"
)

// ExportHandler serves report downloads and archives copies to GCS.
// Both routes run behind Auth, and the service re-checks ownership, so
// an export can never leak a foreign report.
type ExportHandler struct {
	Svc    *application.ReportService
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewExportHandler(svc *application.ReportService, gcs *storage.Client, bucket string, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{Svc: svc, GCS: gcs, Bucket: bucket, Logger: logger}
}

// Download GET /api/reports/:id/export?format=pdf|doc
func (h *ExportHandler) Download(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatPDF)))
	if err != nil {
		response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	uid := c.GetString("userID")
	r, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		failExport(c, h, err)
		return
	}

	data, err := export.Render(r, format)
	if err != nil {
		h.Logger.WithError(err).WithField("report_id", r.ID).Error("render export failed")
		response.Fail[any](c, http.StatusInternalServerError, "could not render document", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(r)))
	c.Data(http.StatusOK, format.ContentType(), data)
}

// Archive POST /api/reports/:id/export/archive?format=pdf|doc
// Renders the document and stores a copy in the archive bucket, returning
// the object URL.
func (h *ExportHandler) Archive(c *gin.Context) {
	if h.GCS == nil || h.Bucket == "" {
		response.Fail[any](c, http.StatusServiceUnavailable, "archive storage is not configured", nil)
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatPDF)))
	if err != nil {
		response.Fail[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	uid := c.GetString("userID")
	r, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		failExport(c, h, err)
		return
	}

	data, err := export.Render(r, format)
	if err != nil {
		h.Logger.WithError(err).WithField("report_id", r.ID).Error("render export failed")
		response.Fail[any](c, http.StatusInternalServerError, "could not render document", nil)
		return
	}

	object := fmt.Sprintf("exports/%s/%s-%s", uid, uuid.NewString(), format.Filename(r))
	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Bucket, object, format.ContentType(), bytes.NewReader(data))
	if err != nil {
		h.Logger.WithError(err).WithField("report_id", r.ID).Error("archive upload failed")
		response.Fail[any](c, http.StatusInternalServerError, "could not archive document", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url, "object": object}, "report archived", nil)
}

func failExport(c *gin.Context, h *ExportHandler, err error) {
	switch err {
	case application.ErrReportNotFound:
		response.Fail[any](c, http.StatusNotFound, "report not found", nil)
	case application.ErrNotOwner:
		response.Fail[any](c, http.StatusForbidden, "you do not have access to this report", nil)
	default:
		h.Logger.WithError(err).Error("export lookup failed")
		response.Fail[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

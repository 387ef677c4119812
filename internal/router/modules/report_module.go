package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/weekly-report-api/internal/container"
	handlers "github.com/oksasatya/weekly-report-api/internal/interface/http"
	"github.com/oksasatya/weekly-report-api/internal/interface/middleware"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
)

type ReportModule struct {
	Reports *handlers.ReportHandler
	Exports *handlers.ExportHandler
	Session *helpers.SessionManager
}

func NewReportModule(reports *handlers.ReportHandler, exports *handlers.ExportHandler, session *helpers.SessionManager) *ReportModule {
	return &ReportModule{Reports: reports, Exports: exports, Session: session}
}

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.Session))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/reports", m.Reports.Create)
		auth.GET("/reports", m.Reports.List)
		auth.GET("/reports/search", m.Reports.Search)
		auth.GET("/reports/:id", m.Reports.Get)
		auth.PUT("/reports/:id", m.Reports.Update)
		auth.DELETE("/reports/:id", m.Reports.Delete)

		auth.GET("/reports/:id/export", m.Exports.Download)
		auth.POST("/reports/:id/export/archive", m.Exports.Archive)
	}
}

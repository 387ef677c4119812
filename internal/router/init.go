package router

import (
	"github.com/oksasatya/weekly-report-api/internal/application"
	"github.com/oksasatya/weekly-report-api/internal/container"
	pginfra "github.com/oksasatya/weekly-report-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/weekly-report-api/internal/interface/http"
	"github.com/oksasatya/weekly-report-api/internal/router/modules"
)

type authModuleDeps struct {
	Service *application.UserService
	Handler *handlers.AuthHandler
}

type reportModuleDeps struct {
	Service *application.ReportService
	Reports *handlers.ReportHandler
	Exports *handlers.ExportHandler
}

func buildAuthDeps() authModuleDeps {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewUserService(
		repo,
		container.GetSession(),
		container.GetRedis(),
		container.GetLogger(),
	)

	handler := handlers.NewAuthHandler(
		service,
		container.GetCookies(),
		rabbitOrNil(),
		container.GetConfig(),
		container.GetLogger(),
	)

	return authModuleDeps{Service: service, Handler: handler}
}

func buildReportDeps() reportModuleDeps {
	cfg := container.GetConfig()
	reports := pginfra.NewReportRepository(container.GetPGPool())
	users := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewReportService(
		reports,
		users,
		container.GetES(),
		cfg.ESReportsIndex,
		rabbitOrNil(),
		container.GetLogger(),
	)
	service.AppURL = cfg.AppURL
	service.CompanyName = cfg.CompanyName

	return reportModuleDeps{
		Service: service,
		Reports: handlers.NewReportHandler(service, container.GetLogger()),
		Exports: handlers.NewExportHandler(service, container.GetGCS(), cfg.GCSBucket, container.GetLogger()),
	}
}

// rabbitOrNil avoids handing a typed-nil Publisher to consumers that
// check the interface against nil.
func rabbitOrNil() application.Publisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	authDeps := buildAuthDeps()
	reportDeps := buildReportDeps()

	r.Add(modules.NewAuthModule(authDeps.Handler, container.GetSession()))
	r.Add(modules.NewReportModule(reportDeps.Reports, reportDeps.Exports, container.GetSession()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	r.RegisterAll()
}

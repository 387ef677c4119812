package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/weekly-report-api/internal/container"
	handlers "github.com/oksasatya/weekly-report-api/internal/interface/http"
	"github.com/oksasatya/weekly-report-api/internal/interface/middleware"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Session *helpers.SessionManager
}

func NewAuthModule(h *handlers.AuthHandler, session *helpers.SessionManager) *AuthModule {
	return &AuthModule{Handler: h, Session: session}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits; login gets the
	// tightest budget since it is the credential-guessing surface.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 15, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.Session))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.GET("/auth/me", m.Handler.Me)
	}
}

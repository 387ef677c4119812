package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/weekly-report-api/config"
	"github.com/oksasatya/weekly-report-api/internal/application"
	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
	"github.com/oksasatya/weekly-report-api/pkg/mailer"
	tpl "github.com/oksasatya/weekly-report-api/pkg/mailer/templates"
	"github.com/oksasatya/weekly-report-api/pkg/response"
	"github.com/oksasatya/weekly-report-api/pkg/validation"
)

type AuthHandler struct {
	Users   *application.UserService
	Cookies *helpers.Manager
	Pub     application.Publisher
	Cfg     *config.Config
	Logger  *logrus.Logger
}

func NewAuthHandler(users *application.UserService, cookies *helpers.Manager, pub application.Publisher, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Cookies: cookies, Pub: pub, Cfg: cfg, Logger: logger}
}

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,pwd"`
	Department string `json:"department"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userView is the public shape of a user; the password hash never leaves
// the application layer.
type userView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserView(u *entity.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, Department: u.Department, CreatedAt: u.CreatedAt}
}

// Register POST /api/auth/register
// Creates the account and logs the new user straight in; the response
// carries the session cookie so no separate login round-trip is needed.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, tok, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		if err == application.ErrEmailTaken {
			response.Fail[any](c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Fail[any](c, http.StatusInternalServerError, "could not create account", nil)
		return
	}

	h.Cookies.SetSession(c, tok.Token, tok.Expiry)
	h.sendWelcome(c, u)
	response.Success(c, http.StatusCreated, toUserView(u), "account created", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, tok, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == application.ErrInvalidCredentials {
			response.Fail[any](c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Fail[any](c, http.StatusInternalServerError, "could not log in", nil)
		return
	}

	h.Cookies.SetSession(c, tok.Token, tok.Expiry)
	response.Success(c, http.StatusOK, toUserView(u), "logged in", nil)
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString("userID")
	h.Users.Logout(c.Request.Context(), uid)
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Users.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Fail[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "", nil)
}

// sendWelcome queues the welcome email. Best effort; registration never
// fails because mail infrastructure is down.
func (h *AuthHandler) sendWelcome(c *gin.Context, u *entity.User) {
	if h.Pub == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"Name":        u.Name,
			"AppURL":      h.Cfg.AppURL,
			"SupportURL":  h.Cfg.SupportURL,
			"CompanyName": h.Cfg.CompanyName,
		},
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

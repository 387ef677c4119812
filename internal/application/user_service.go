package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	repo "github.com/oksasatya/weekly-report-api/internal/domain/repository"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserService covers registration, login, and session issuing. A session
// is a signed 7-day token in an HTTP-only cookie plus a redis hash the
// auth middleware checks on every protected request.
type UserService struct {
	Repo    repo.UserRepository
	Session *helpers.SessionManager
	Redis   *redis.Client
	Logger  *logrus.Logger
}

func NewUserService(r repo.UserRepository, session *helpers.SessionManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Session: session, Redis: rdb, Logger: logger}
}

type SessionToken struct {
	Token  string
	Expiry time.Time
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Register creates the account and immediately logs the user in, exactly
// like the web flow. The stored password is always a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, SessionToken, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, SessionToken{}, err
	}

	u := &entity.User{
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Password:   hash,
		Name:       strings.TrimSpace(in.Name),
		Department: strings.TrimSpace(in.Department),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, SessionToken{}, ErrEmailTaken
		}
		return nil, SessionToken{}, err
	}

	tok, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, SessionToken{}, err
	}
	return u, tok, nil
}

// Authenticate validates email/password and returns the user without
// issuing a session. The error never reveals which check failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and records a fresh session.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, SessionToken, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, SessionToken{}, err
	}
	tok, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, SessionToken{}, err
	}
	return u, tok, nil
}

// Logout drops the redis session; the cookie is cleared by the handler.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("redis session delete failed")
	}
}

// GetProfile fetches the full user record for /auth/me.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) issueSession(ctx context.Context, u *entity.User) (SessionToken, error) {
	token, exp, err := s.Session.Generate(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return SessionToken{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"logged_in":  true,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.Session.TTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return SessionToken{Token: token, Expiry: exp}, nil
}

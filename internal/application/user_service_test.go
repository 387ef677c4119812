package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
	repo "github.com/oksasatya/weekly-report-api/internal/domain/repository"
	"github.com/oksasatya/weekly-report-api/pkg/helpers"
)

type mockUserRepo struct {
	create     func(ctx context.Context, u *entity.User) error
	getByID    func(ctx context.Context, id string) (*entity.User, error)
	getByEmail func(ctx context.Context, email string) (*entity.User, error)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.create(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.getByEmail(ctx, email)
}

func testSession() *helpers.SessionManager {
	return &helpers.SessionManager{Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestRegisterHashesAndLogsIn(t *testing.T) {
	var stored *entity.User
	svc := NewUserService(&mockUserRepo{
		create: func(_ context.Context, u *entity.User) error {
			u.ID = "u1"
			stored = u
			return nil
		},
	}, testSession(), nil, nil)

	u, tok, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "  Ada@Example.COM ",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatal(err)
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized lowercase", stored.Email)
	}
	if stored.Password == "hunter22" {
		t.Error("password stored in the clear")
	}
	if !helpers.CompareHashAndPassword(stored.Password, "hunter22") {
		t.Error("stored hash does not match the password")
	}

	claims, err := testSession().Parse(tok.Token)
	if err != nil {
		t.Fatalf("session token invalid: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("token uid = %q, want %q", claims.UserID, u.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepo{
		create: func(_ context.Context, _ *entity.User) error { return repo.ErrDuplicateEmail },
	}, testSession(), nil, nil)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := helpers.HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (*entity.User, error) {
			if email != "ada@example.com" {
				return nil, repo.ErrNotFound
			}
			return &entity.User{ID: "u1", Email: email, Password: hash}, nil
		},
	}
	svc := NewUserService(users, testSession(), nil, nil)

	u, tok, err := svc.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "u1" || tok.Token == "" {
		t.Errorf("login result = %+v / %+v", u, tok)
	}

	// Wrong password and unknown email produce the same error.
	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	svc := NewUserService(&mockUserRepo{
		getByID: func(_ context.Context, id string) (*entity.User, error) {
			if id != "u1" {
				return nil, repo.ErrNotFound
			}
			return &entity.User{ID: "u1", Name: "Ada"}, nil
		},
	}, testSession(), nil, nil)

	u, err := svc.GetProfile(context.Background(), "u1")
	if err != nil || u.Name != "Ada" {
		t.Errorf("profile = %+v, err = %v", u, err)
	}
	if _, err := svc.GetProfile(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing profile err = %v", err)
	}
}

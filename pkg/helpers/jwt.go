package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionManager issues and validates the signed session tokens carried in
// the login cookie. Tokens encode the user id and email and expire after
// the configured TTL (7 days by default).
type SessionManager struct {
	Secret []byte
	TTL    time.Duration
}

var defaultManager *SessionManager

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	m := &SessionManager{Secret: []byte(secret), TTL: ttl}
	defaultManager = m
	return m
}

// DefaultSession returns the last constructed SessionManager (used for auto-wiring routes)
func DefaultSession() *SessionManager { return defaultManager }

type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (m *SessionManager) Generate(userID, email string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse validates a session token. It fails closed: any malformed,
// expired, or mis-signed token yields an error, never a partial claim.
func (m *SessionManager) Parse(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

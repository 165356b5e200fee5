package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
)

// SessionService mints and verifies the signed session cookie value handed
// out after a successful redemption.
type SessionService struct {
	Secret        string
	SessionExpiry time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func NewSessionService(secret string, expiryDays int) *SessionService {
	return &SessionService{
		Secret:        secret,
		SessionExpiry: time.Duration(expiryDays) * 24 * time.Hour,
	}
}

// Establish returns a signed session value for the given email.
func (ss *SessionService) Establish(email string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ss.SessionExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ss.Secret))
}

// Verify parses and validates the given session value.
func (ss *SessionService) Verify(value string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ss.Secret), nil
	})

	if err != nil || !token.Valid {
		return nil, autherror.ErrInvalidSession
	}

	return claims, nil
}

// ShouldRefresh reports whether less than half the session lifetime remains.
// The middleware re-issues the cookie at that point, giving the 7-day expiry
// its sliding behavior.
func (ss *SessionService) ShouldRefresh(claims *SessionClaims) bool {
	if claims.ExpiresAt == nil {
		return false
	}

	return time.Until(claims.ExpiresAt.Time) < ss.SessionExpiry/2
}

// Refresh re-issues a session for the same email with a fresh expiry. The
// original login time is preserved in the claims.
func (ss *SessionService) Refresh(claims *SessionClaims) (string, error) {
	now := time.Now()

	next := SessionClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: jwt.NewNumericDate(now.Add(ss.SessionExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, next).SignedString([]byte(ss.Secret))
}

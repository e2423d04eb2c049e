package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// TokenService issues and verifies HS256-signed bearer tokens. Access tokens
// carry the user id as subject; password-reset tokens carry the username and
// a not-before claim set to issuance time. Reset tokens are self-contained:
// there is no server-side store of outstanding requests, so a reset token
// cannot be revoked before its natural expiry.
type TokenService struct {
	secret   []byte
	resetTTL time.Duration
}

// NewTokenService creates a TokenService signing with the process-wide
// secret. resetTTL bounds the lifetime of password-reset tokens.
func NewTokenService(secret string, resetTTL time.Duration) *TokenService {
	if resetTTL <= 0 {
		resetTTL = 48 * time.Hour
	}
	return &TokenService{secret: []byte(secret), resetTTL: resetTTL}
}

// IssueAccessToken returns a signed access token for the user, valid for ttl.
func (s *TokenService) IssueAccessToken(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyAccessToken checks signature and expiry and returns the user id
// encoded in the subject. Any failure — malformed token, wrong signature,
// expired — maps to domain.ErrInvalidCredentials.
func (s *TokenService) VerifyAccessToken(token string) (int64, error) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, domain.ErrInvalidCredentials
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidCredentials
	}
	return id, nil
}

// IssuePasswordResetToken returns a signed reset token for the username. The
// not-before claim equals issuance time, the expiry is now + the configured
// reset TTL.
func (s *TokenService) IssuePasswordResetToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyPasswordResetToken returns the username a valid reset token was
// issued for. A token that is malformed, carries a bad signature, is not yet
// valid, or has expired maps to domain.ErrInvalidResetToken.
func (s *TokenService) VerifyPasswordResetToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil || claims.Subject == "" {
		return "", domain.ErrInvalidResetToken
	}
	return claims.Subject, nil
}

// parse decodes and validates a token. jwt/v5 checks exp and nbf when
// present; the signing method is pinned to HS256.
func (s *TokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

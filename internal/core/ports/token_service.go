package ports

import "time"

// TokenService issues and verifies the two token kinds the system uses:
// access tokens (subject = user id) and password-reset tokens (subject =
// username, carrying a not-before claim). Both are signed with the single
// process-wide secret; rotating the secret invalidates all outstanding
// tokens.
type TokenService interface {
	IssueAccessToken(userID int64, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (int64, error)
	IssuePasswordResetToken(username string) (string, error)
	VerifyPasswordResetToken(token string) (string, error)
}

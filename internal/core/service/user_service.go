package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// UserService implements the account lifecycle. Uniqueness pre-checks here
// are a fast-path UX improvement only; the repository surfaces the storage
// layer's unique-constraint violation as the authoritative signal.
type UserService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	tokens   ports.TokenService
	mail     ports.MailEnqueuer
	composer ports.MailComposer
	cache    ports.PrincipalCache
	logger   zerolog.Logger
}

// NewUserService wires the account lifecycle with its collaborators. mail,
// composer and cache may be nil: notifications and caching are then skipped.
func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	tokens ports.TokenService,
	mail ports.MailEnqueuer,
	composer ports.MailComposer,
	cache ports.PrincipalCache,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		roles:    roles,
		tokens:   tokens,
		mail:     mail,
		composer: composer,
		cache:    cache,
		logger:   logger,
	}
}

// Create registers a new employee: advisory username check, role lookup by
// name, password hashing, persistence, then a best-effort welcome email.
// An email failure never rolls back the already-committed record.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	}

	role, err := s.roles.FindByName(ctx, input.RoleName)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		IsAdmin:      input.IsAdmin,
		IsOwner:      input.IsOwner,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Birthday:     input.Birthday,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		Salary:       input.Salary,
		RegisterDate: today(),
		ImagePath:    input.ImagePath,
		RoleID:       role.ID,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")

	if s.mail != nil && s.composer != nil {
		s.mail.Enqueue(s.composer.NewAccountEmail(created.Email, created.Username, input.Password))
	}

	return created, nil
}

// Authenticate is a pure credential check. It returns the user when the
// password matches, regardless of terminated state; callers that care about
// liveness check it themselves, so wrong credentials and terminated accounts
// stay distinguishable.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser resolves a bearer token to a live user record: verify the
// token, load the subject, reject terminated accounts.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Active() {
		return nil, domain.ErrTerminatedUser
	}
	return user, nil
}

// lookup reads through the principal cache when one is configured.
func (s *UserService) lookup(ctx context.Context, id int64) (*domain.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, id); ok {
			return user, nil
		}
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, skip, limit int64) ([]*domain.User, int64, error) {
	return s.users.List(ctx, skip, limit)
}

// Update applies a partial patch: nil fields are untouched. A supplied
// password is re-hashed, the old hash is discarded. Username uniqueness is
// the caller's pre-check; the repository's constraint remains the authority.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Birthday != nil {
		user.Birthday = *input.Birthday
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Salary != nil {
		user.Salary = *input.Salary
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.ImagePath != nil {
		user.ImagePath = *input.ImagePath
	}
	if input.RoleName != nil {
		role, err := s.roles.FindByName(ctx, *input.RoleName)
		if err != nil {
			return nil, domain.ErrRoleNotFound
		}
		user.RoleID = role.ID
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// ChangePassword verifies the current password, rejects a no-op change by
// comparing the plaintext inputs, and persists a fresh hash.
func (s *UserService) ChangePassword(ctx context.Context, user *domain.User, currentPassword, newPassword string) error {
	if !VerifyPassword(currentPassword, user.PasswordHash) {
		return domain.ErrIncorrectPassword
	}
	if currentPassword == newPassword {
		return domain.ErrSamePassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, user.ID)
	return nil
}

// Terminate marks the target account inactive as of today. Terminating an
// already-terminated user refreshes the date rather than failing. Owners
// cannot terminate themselves.
func (s *UserService) Terminate(ctx context.Context, actor *domain.User, targetID int64) (*domain.User, error) {
	if actor != nil && actor.ID == targetID {
		return nil, domain.ErrSelfTermination
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	now := today()
	user.TerminatedAt = &now
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, targetID)
	s.logger.Info().Int64("user_id", targetID).Msg("user terminated")
	return updated, nil
}

// Delete permanently removes the target record. Irreversible; owners cannot
// delete themselves.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, targetID int64) error {
	if actor != nil && actor.ID == targetID {
		return domain.ErrSelfDelete
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return domain.ErrUserNotFound
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.invalidate(ctx, targetID)
	s.logger.Info().Int64("user_id", targetID).Msg("user deleted")
	return nil
}

// RequestPasswordReset issues a reset token for the username and emails the
// recovery link. The email is delivered asynchronously, best-effort.
func (s *UserService) RequestPasswordReset(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.ErrUserNotFound
	}

	token, err := s.tokens.IssuePasswordResetToken(user.Username)
	if err != nil {
		return err
	}

	if s.mail != nil && s.composer != nil {
		s.mail.Enqueue(s.composer.ResetPasswordEmail(user.Email, user.Username, token))
	}
	return nil
}

// ResetPassword verifies a reset token and sets the new password. Terminated
// accounts cannot complete a reset.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	username, err := s.tokens.VerifyPasswordResetToken(token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if !user.Active() {
		return domain.ErrTerminatedUser
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.invalidate(ctx, user.ID)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

// today truncates the current UTC time to a date, matching how termination
// and registration dates are recorded.
func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

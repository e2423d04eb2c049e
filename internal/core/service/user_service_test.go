package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.TerminatedAt != nil {
		at := *u.TerminatedAt
		clone.TerminatedAt = &at
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.Username == user.Username && u.ID != user.ID {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, skip, limit int64) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, roleID int64) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

type stubRoleRepo struct {
	roles  map[int64]*domain.Role
	nextID int64
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[int64]*domain.Role)}
}

func cloneRole(role *domain.Role) *domain.Role {
	if role == nil {
		return nil
	}
	clone := *role
	return &clone
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return nil, domain.ErrRoleNameTaken
		}
	}
	r.nextID++
	copy := cloneRole(role)
	copy.ID = r.nextID
	r.roles[copy.ID] = cloneRole(copy)
	return cloneRole(copy), nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return cloneRole(role), nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if _, ok := r.roles[role.ID]; !ok {
		return nil, domain.ErrRoleNotFound
	}
	r.roles[role.ID] = cloneRole(role)
	return cloneRole(role), nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *stubRoleRepo) List(_ context.Context, skip, limit int64) ([]*domain.Role, int64, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, cloneRole(role))
	}
	return out, int64(len(r.roles)), nil
}

type recordingEnqueuer struct {
	sent []ports.Email
}

func (e *recordingEnqueuer) Enqueue(email ports.Email) {
	e.sent = append(e.sent, email)
}

type stubComposer struct{}

func (stubComposer) NewAccountEmail(to, username, password string) ports.Email {
	return ports.Email{To: to, Subject: "new account " + username, HTMLBody: password}
}

func (stubComposer) ResetPasswordEmail(to, username, token string) ports.Email {
	return ports.Email{To: to, Subject: "reset " + username, HTMLBody: token}
}

func newTestUserService(t *testing.T) (*UserService, *stubUserRepo, *stubRoleRepo, *recordingEnqueuer) {
	t.Helper()
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	mail := &recordingEnqueuer{}
	tokens := NewTokenService("secret", time.Hour)
	svc := NewUserService(users, roles, tokens, mail, stubComposer{}, nil, zerolog.Nop())
	return svc, users, roles, mail
}

func seedRole(t *testing.T, roles *stubRoleRepo, name string) *domain.Role {
	t.Helper()
	role, err := roles.Create(context.Background(), &domain.Role{Name: name})
	if err != nil {
		t.Fatalf("seed role: %v", err)
	}
	return role
}

func createUser(t *testing.T, svc *UserService, username, password, roleName string) *domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username:  username,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		RoleName:  roleName,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestUserService_Create_Success(t *testing.T) {
	svc, _, roles, mail := newTestUserService(t)
	seedRole(t, roles, "staff")

	user := createUser(t, svc, "alice", "pass1234", "staff")
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if user.RegisterDate.IsZero() {
		t.Fatalf("expected register date to be set")
	}
	if !user.Active() {
		t.Fatalf("new user should be active")
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected one welcome email, got %d", len(mail.sent))
	}
	if mail.sent[0].To != "alice@example.com" {
		t.Fatalf("welcome email sent to %q", mail.sent[0].To)
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	createUser(t, svc, "alice", "pass1234", "staff")

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "other-pass",
		RoleName: "staff",
	})
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "pass1234",
		RoleName: "nonexistent",
	})
	if err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	createUser(t, svc, "alice", "pass1234", "staff")

	user, err := svc.Authenticate(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "pass1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserService_Authenticate_TerminatedStillMatches(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	owner := createUser(t, svc, "owner", "pass1234", "staff")
	target := createUser(t, svc, "bob", "pass1234", "staff")

	if _, err := svc.Terminate(context.Background(), owner, target.ID); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}

	// Credentials still check out; liveness is the caller's decision.
	user, err := svc.Authenticate(context.Background(), "bob", "pass1234")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.Active() {
		t.Fatalf("expected terminated user")
	}
}

func TestUserService_CurrentUser(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	user := createUser(t, svc, "alice", "pass1234", "staff")

	token, err := svc.tokens.IssueAccessToken(user.ID, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	resolved, err := svc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, resolved.ID)
	}

	if _, err := svc.CurrentUser(context.Background(), "garbage"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_CurrentUser_Terminated(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	owner := createUser(t, svc, "owner", "pass1234", "staff")
	target := createUser(t, svc, "bob", "pass1234", "staff")

	token, err := svc.tokens.IssueAccessToken(target.ID, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := svc.Terminate(context.Background(), owner, target.ID); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}

	// The token is still cryptographically valid; the account is not.
	if _, err := svc.CurrentUser(context.Background(), token); err != domain.ErrTerminatedUser {
		t.Fatalf("expected ErrTerminatedUser, got %v", err)
	}
}

func TestUserService_Update_PartialPatch(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	other := seedRole(t, roles, "manager")
	user := createUser(t, svc, "alice", "pass1234", "staff")

	email := "new@example.com"
	roleName := "manager"
	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{
		Email:    &email,
		RoleName: &roleName,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	if updated.RoleID != other.ID {
		t.Fatalf("role not updated: %d", updated.RoleID)
	}
	if updated.Username != "alice" {
		t.Fatalf("untouched field changed: %q", updated.Username)
	}
	if updated.FirstName != "Test" {
		t.Fatalf("untouched field changed: %q", updated.FirstName)
	}
}

func TestUserService_Update_PasswordRehash(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	user := createUser(t, svc, "alice", "pass1234", "staff")

	newPass := "fresh-pass"
	if _, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{Password: &newPass}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "fresh-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "pass1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted")
	}
}

func TestUserService_Update_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	email := "new@example.com"
	if _, err := svc.Update(context.Background(), 999, ports.UpdateUserInput{Email: &email}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	user := createUser(t, svc, "alice", "pass1234", "staff")

	if err := svc.ChangePassword(context.Background(), user, "wrong", "next-pass"); err != domain.ErrIncorrectPassword {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user, "pass1234", "pass1234"); err != domain.ErrSamePassword {
		t.Fatalf("expected ErrSamePassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user, "pass1234", "next-pass"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "next-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUserService_Terminate(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	owner := createUser(t, svc, "owner", "pass1234", "staff")
	target := createUser(t, svc, "bob", "pass1234", "staff")

	terminated, err := svc.Terminate(context.Background(), owner, target.ID)
	if err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}
	if terminated.Active() {
		t.Fatalf("expected terminated user")
	}

	// Terminating again refreshes the date instead of failing.
	again, err := svc.Terminate(context.Background(), owner, target.ID)
	if err != nil {
		t.Fatalf("second Terminate returned error: %v", err)
	}
	if again.TerminatedAt == nil {
		t.Fatalf("expected termination date to remain set")
	}
}

func TestUserService_Terminate_Self(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	owner := createUser(t, svc, "owner", "pass1234", "staff")

	if _, err := svc.Terminate(context.Background(), owner, owner.ID); err != domain.ErrSelfTermination {
		t.Fatalf("expected ErrSelfTermination, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, _, roles, _ := newTestUserService(t)
	seedRole(t, roles, "staff")
	owner := createUser(t, svc, "owner", "pass1234", "staff")
	target := createUser(t, svc, "bob", "pass1234", "staff")

	if err := svc.Delete(context.Background(), owner, owner.ID); err != domain.ErrSelfDelete {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, target.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), target.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, target.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_PasswordResetFlow(t *testing.T) {
	svc, _, roles, mail := newTestUserService(t)
	seedRole(t, roles, "staff")
	createUser(t, svc, "alice", "pass1234", "staff")
	mail.sent = nil

	if err := svc.RequestPasswordReset(context.Background(), "alice"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected one reset email, got %d", len(mail.sent))
	}

	// The stub composer stores the raw token in the body.
	token := mail.sent[0].HTMLBody
	if err := svc.ResetPassword(context.Background(), token, "brand-new-pass"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "alice", "brand-new-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUserService_PasswordReset_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	if err := svc.RequestPasswordReset(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ResetPassword_InvalidToken(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	if err := svc.ResetPassword(context.Background(), "garbage", "brand-new-pass"); err != domain.ErrInvalidResetToken {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}
}

func TestUserService_ResetPassword_Terminated(t *testing.T) {
	svc, _, roles, mail := newTestUserService(t)
	seedRole(t, roles, "staff")
	owner := createUser(t, svc, "owner", "pass1234", "staff")
	target := createUser(t, svc, "bob", "pass1234", "staff")
	mail.sent = nil

	if err := svc.RequestPasswordReset(context.Background(), "bob"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}
	token := mail.sent[0].HTMLBody

	if _, err := svc.Terminate(context.Background(), owner, target.ID); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}

	if err := svc.ResetPassword(context.Background(), token, "brand-new-pass"); err != domain.ErrTerminatedUser {
		t.Fatalf("expected ErrTerminatedUser, got %v", err)
	}
}

package ports

import (
	"context"

	"github.com/staffcore/employee-system/internal/core/domain"
)

// PrincipalCache is a best-effort read cache in front of the user store,
// used by principal resolution only. A cache miss or error always falls
// back to the repository; entries must be invalidated on every mutation of
// the cached user.
type PrincipalCache interface {
	Get(ctx context.Context, id int64) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, id int64)
}

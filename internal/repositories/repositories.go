// Package repositories provides storage-technology-agnostic CRUD access to
// the persisted entities. Concrete implementations are selected at startup
// through the factory, keyed on the configured storage backend.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"fittrack-server/internal/config"
	"fittrack-server/internal/interfaces"
	"fittrack-server/internal/schemas"
)

// ErrNotFound is returned when zero rows match an owned read.
var ErrNotFound = errors.New("no matching record")

// ErrOperationFailed is returned when a mutation affects zero rows or the
// store rejects it.
var ErrOperationFailed = errors.New("operation failed")

// UserRepo is the CRUD contract for users.
type UserRepo interface {
	// Register inserts a new user. The password must already be hashed.
	Register(ctx context.Context, user *schemas.User) (*schemas.User, error)
	// GetCurrent re-derives the full user record from token claims by exact
	// match on both id and email.
	GetCurrent(ctx context.Context, id int64, email string) (*schemas.User, error)
	// GetByEmail returns the first user with the given email.
	GetByEmail(ctx context.Context, email string) (*schemas.User, error)
	GetAll(ctx context.Context) ([]schemas.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ActivityRepo is the CRUD contract for activities. Every operation takes the
// owner's user ID as a mandatory scoping parameter; no call returns or
// mutates another user's row.
type ActivityRepo interface {
	GetByID(ctx context.Context, id, ownerID int64) (*schemas.Activity, error)
	GetAll(ctx context.Context, ownerID int64) ([]schemas.Activity, error)
	GetAllByType(ctx context.Context, ownerID int64, activityType schemas.ActivityType) ([]schemas.Activity, error)
	// GetLastX returns at most amount activities ordered newest-id-first,
	// optionally filtered by type (empty type means no filter).
	GetLastX(ctx context.Context, ownerID int64, amount int, activityType schemas.ActivityType) ([]schemas.Activity, error)
	Create(ctx context.Context, activity *schemas.Activity) (*schemas.Activity, error)
	Update(ctx context.Context, id, ownerID int64, patch *schemas.ActivityPatch) (bool, error)
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}

// Repositories bundles the constructed repository set handed to the router.
type Repositories struct {
	Users      UserRepo
	Activities ActivityRepo
}

// New constructs the repository set for the configured storage backend.
func New(backend string, pool interfaces.PgxPoolIface) (*Repositories, error) {
	switch backend {
	case config.StorageBackendPostgres:
		return &Repositories{
			Users:      NewUserRepository(pool),
			Activities: NewActivityRepository(pool),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

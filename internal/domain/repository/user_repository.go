package repository

import (
	"errors"

	"github.com/connectify-hq/connectify/internal/domain/entity"
)

// ErrNotFound is returned by every repository when the requested document
// does not exist. Any other error is a store failure.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
// Email lookups normalize (trim + lowercase) before querying, mirroring the
// normalization applied at write time.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(u *entity.User) error
	// UpdateFields applies a partial $set of already-filtered fields and
	// returns the updated document.
	UpdateFields(id string, fields map[string]any) (*entity.User, error)
	// SearchByName matches names case-insensitively.
	SearchByName(name string, limit int) ([]entity.User, error)
}

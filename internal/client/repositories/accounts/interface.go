// Package accounts persists the account directory as a single JSON array
// under the "accounts" key of a kv.Store. Every write replaces the whole blob.
package accounts

import (
	"context"

	"github.com/Breathless11/Tamamla/internal/client/models"
)

// Key is the kv key holding the account blob.
const Key = "accounts"

type Repository interface {
	// List returns all accounts in registration order.
	List(ctx context.Context) ([]models.Account, error)

	// Find returns the account with exactly this username or common.ErrNotFound.
	Find(ctx context.Context, username string) (*models.Account, error)

	// Add appends a new account; common.ErrDuplicateUsername if the name is taken.
	Add(ctx context.Context, account models.Account) error

	// Remove deletes the account; common.ErrNotFound if it does not exist.
	Remove(ctx context.Context, username string) error
}

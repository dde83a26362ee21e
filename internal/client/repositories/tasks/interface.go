// Package tasks persists every user's task list in one JSON object, keyed by
// username, under the "tasks" key of a kv.Store.
//
// Writes follow the read-modify-write contract of the store: the whole object
// is read, one user's list is replaced, and the whole object is written back.
// Callers are responsible for serializing writers.
package tasks

import (
	"context"

	"github.com/Breathless11/Tamamla/internal/client/models"
)

// Key is the kv key holding the task blob.
const Key = "tasks"

type Repository interface {
	// ListByUser returns the user's tasks oldest first; an unknown user has
	// an empty list.
	ListByUser(ctx context.Context, username string) ([]models.Task, error)

	// ReplaceUser stores list as the user's complete task collection.
	// An empty list removes the user's entry.
	ReplaceUser(ctx context.Context, username string, list []models.Task) error

	// DeleteUser drops the user's collection. Missing users are a no-op.
	DeleteUser(ctx context.Context, username string) error
}

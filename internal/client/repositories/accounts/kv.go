package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/client/repositories/kv"
	"github.com/Breathless11/Tamamla/internal/common"
)

// KVRepository implements Repository on top of a kv.Store.
type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) List(ctx context.Context) ([]models.Account, error) {
	raw, ok, err := r.store.GetString(ctx, Key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []models.Account{}, nil
	}

	var list []models.Account
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	if list == nil {
		list = []models.Account{}
	}
	return list, nil
}

func (r *KVRepository) Find(ctx context.Context, username string) (*models.Account, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(list, username)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	return &list[i], nil
}

func (r *KVRepository) Add(ctx context.Context, account models.Account) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	if indexOf(list, account.Username) >= 0 {
		return common.ErrDuplicateUsername
	}
	return r.save(ctx, append(list, account))
}

func (r *KVRepository) Remove(ctx context.Context, username string) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(list, username)
	if i < 0 {
		return common.ErrNotFound
	}
	return r.save(ctx, slices.Delete(list, i, i+1))
}

func (r *KVRepository) save(ctx context.Context, list []models.Account) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	return r.store.SetString(ctx, Key, string(b))
}

func indexOf(list []models.Account, username string) int {
	return slices.IndexFunc(list, func(a models.Account) bool { return a.Username == username })
}

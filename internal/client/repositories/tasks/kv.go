package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Breathless11/Tamamla/internal/client/models"
	"github.com/Breathless11/Tamamla/internal/client/repositories/kv"
)

type KVRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) ListByUser(ctx context.Context, username string) ([]models.Task, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	list := all[username]
	if list == nil {
		list = []models.Task{}
	}
	return list, nil
}

func (r *KVRepository) ReplaceUser(ctx context.Context, username string, list []models.Task) error {
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		delete(all, username)
	} else {
		all[username] = list
	}
	return r.save(ctx, all)
}

func (r *KVRepository) DeleteUser(ctx context.Context, username string) error {
	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[username]; !ok {
		return nil
	}
	delete(all, username)
	return r.save(ctx, all)
}

func (r *KVRepository) load(ctx context.Context) (map[string][]models.Task, error) {
	raw, ok, err := r.store.GetString(ctx, Key)
	if err != nil {
		return nil, err
	}
	all := make(map[string][]models.Task)
	if !ok || raw == "" {
		return all, nil
	}
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return all, nil
}

func (r *KVRepository) save(ctx context.Context, all map[string][]models.Task) error {
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	return r.store.SetString(ctx, Key, string(b))
}

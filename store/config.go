package store

import (
	"context"
	"database/sql"
	"errors"
)

// ConfigStore is the persistence contract config.Store is built on
// (spec.md §4.2). It is implemented by the same bunStore as Store,
// sharing one *bun.DB and one "config" table created by InitDB.
type ConfigStore interface {
	GetConfig(ctx context.Context, key string) (string, bool, error)
	SetConfig(ctx context.Context, key, value string) error
	AllConfig(ctx context.Context) (map[string]string, error)
}

// GetConfig returns the stored value for key, or ("", false, nil) if
// no row exists.
func (s *bunStore) GetConfig(ctx context.Context, key string) (string, bool, error) {
	var model configModel
	err := s.db.NewSelect().
		Model(&model).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return model.Value, true, nil
}

// SetConfig upserts key/value.
func (s *bunStore) SetConfig(ctx context.Context, key, value string) error {
	model := &configModel{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

// AllConfig returns every stored key/value pair.
func (s *bunStore) AllConfig(ctx context.Context) (map[string]string, error) {
	var models []configModel
	if err := s.db.NewSelect().Model(&models).Scan(ctx); err != nil {
		return nil, err
	}
	ret := make(map[string]string, len(models))
	for _, m := range models {
		ret[m.Key] = m.Value
	}
	return ret, nil
}

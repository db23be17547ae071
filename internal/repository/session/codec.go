package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bdshop/internal/domain"
)

// LoadJSON decodes the value under key into v. It reports false, with v left
// untouched, when the key does not exist.
func LoadJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key, refreshing the ttl.
func SaveJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw, ttl); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// UpdateJSON decodes the value under key into a fresh T (zero when absent),
// applies mutate and stores the result through Store.Update. mutate may run
// more than once when the store retries.
func UpdateJSON[T any](ctx context.Context, s Store, key string, ttl time.Duration, mutate func(v *T) error) (*T, error) {
	var out *T
	err := s.Update(ctx, key, ttl, func(current []byte) ([]byte, error) {
		v := new(T)
		if current != nil {
			if err := json.Unmarshal(current, v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
		}
		if err := mutate(v); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out = v
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

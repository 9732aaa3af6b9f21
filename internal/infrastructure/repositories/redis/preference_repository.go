package redis

import (
	"context"
	"fmt"
	"sort"

	"streamgrid/internal/core/domain"
	"streamgrid/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisPreferenceRepository keeps each user's preferences in a single hash.
type RedisPreferenceRepository struct {
	client *redis.Client
	prefix string
}

var _ ports.PreferenceRepository = (*RedisPreferenceRepository)(nil)

func NewRedisPreferenceRepository(client *redis.Client) ports.PreferenceRepository {
	return &RedisPreferenceRepository{
		client: client,
		prefix: "streamgrid:prefs:",
	}
}

func (r *RedisPreferenceRepository) userKey(user domain.UserID) string {
	return r.prefix + string(user)
}

func (r *RedisPreferenceRepository) Set(ctx context.Context, pref domain.Preference) error {
	if err := r.client.HSet(ctx, r.userKey(pref.UserID), pref.Key, pref.Value).Err(); err != nil {
		return fmt.Errorf("failed to set preference in Redis: %w", err)
	}
	return nil
}

func (r *RedisPreferenceRepository) Get(ctx context.Context, user domain.UserID, key string) (*domain.Preference, error) {
	value, err := r.client.HGet(ctx, r.userKey(user), key).Result()
	if err == redis.Nil {
		return nil, domain.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference from Redis: %w", err)
	}
	return &domain.Preference{UserID: user, Key: key, Value: value}, nil
}

func (r *RedisPreferenceRepository) Delete(ctx context.Context, user domain.UserID, key string) error {
	removed, err := r.client.HDel(ctx, r.userKey(user), key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete preference from Redis: %w", err)
	}
	if removed == 0 {
		return domain.ErrPreferenceNotFound
	}
	return nil
}

func (r *RedisPreferenceRepository) List(ctx context.Context, user domain.UserID) ([]domain.Preference, error) {
	values, err := r.client.HGetAll(ctx, r.userKey(user)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences from Redis: %w", err)
	}

	prefs := make([]domain.Preference, 0, len(values))
	for key, value := range values {
		prefs = append(prefs, domain.Preference{UserID: user, Key: key, Value: value})
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].Key < prefs[j].Key })
	return prefs, nil
}

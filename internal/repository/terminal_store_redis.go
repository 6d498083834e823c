package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/caisse"

	"github.com/redis/go-redis/v9"
)

const terminalKeyPrefix = "caisse:terminal:"

type redisTerminalStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisTerminalStore stores one JSON document per terminal. A state
// untouched for ttl expires (0 = never).
func NewRedisTerminalStore(rdb *redis.Client, ttl time.Duration) TerminalStore {
	return &redisTerminalStore{rdb: rdb, ttl: ttl}
}

func (r *redisTerminalStore) Load(ctx context.Context, terminalID string) (*caisse.State, error) {
	data, err := r.rdb.Get(ctx, terminalKeyPrefix+terminalID).Bytes()
	if errors.Is(err, redis.Nil) {
		return caisse.NewState(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState(data)
}

func (r *redisTerminalStore) Save(ctx context.Context, terminalID string, st *caisse.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, terminalKeyPrefix+terminalID, data, r.ttl).Err()
}

func (r *redisTerminalStore) Delete(ctx context.Context, terminalID string) error {
	return r.rdb.Del(ctx, terminalKeyPrefix+terminalID).Err()
}

func (r *redisTerminalStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.rdb.Scan(ctx, 0, terminalKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), terminalKeyPrefix))
	}
	return ids, iter.Err()
}

func (r *redisTerminalStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

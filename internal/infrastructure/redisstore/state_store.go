package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/pkg/config"
)

var _ ports.StateStore = (*StateStore)(nil)

// stateTTL ventana en la que el usuario debe completar el login en Kakao.
const stateTTL = 10 * time.Minute

// StateStore tokens de state OAuth de un solo uso sobre Redis.
type StateStore struct {
	rdb *redis.Client
}

// NewClient construye el cliente Redis con la configuración de la app.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewStateStore construye el store sobre un cliente Redis existente.
func NewStateStore(rdb *redis.Client) *StateStore {
	return &StateStore{rdb: rdb}
}

func stateKey(state string) string {
	return "oauth:state:" + state
}

// Issue genera un state aleatorio y lo registra con TTL.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := s.rdb.Set(ctx, stateKey(state), "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("issue oauth state: %w", err)
	}
	return state, nil
}

// Consume valida y elimina el state en una sola operación; false si no existe
// o ya fue usado.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	deleted, err := s.rdb.Del(ctx, stateKey(state)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return deleted > 0, nil
}

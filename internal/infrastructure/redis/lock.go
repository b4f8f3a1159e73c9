// Package redis provee el lock distribuido que serializa corridas de
// asignación: dos corridas concurrentes sobre el mismo stock romperían la
// conservación de inventario.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/clix-soa/allocation-api/internal/domain"
	"github.com/clix-soa/allocation-api/pkg/config"
)

// allocationLockKey clave única del lock de corridas de asignación.
const allocationLockKey = "allocation:run:lock"

// NewClient crea y verifica el cliente Redis.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RunLocker obtiene y libera el lock de corridas de asignación.
type RunLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewRunLocker construye el locker sobre un cliente Redis.
func NewRunLocker(rdb *goredis.Client, ttl time.Duration) *RunLocker {
	return &RunLocker{locker: redislock.New(rdb), ttl: ttl}
}

// Acquire toma el lock de corrida. Devuelve ErrRunInProgress si otra corrida
// lo tiene; el release devuelto libera el lock (ignora errores de release).
func (l *RunLocker) Acquire(ctx context.Context) (release func(), err error) {
	lock, err := l.locker.Obtain(ctx, allocationLockKey, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrRunInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock de corrida: %w", err)
	}
	return func() { _ = lock.Release(ctx) }, nil
}

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis es el almacén respaldado en Redis, para correr más de una réplica
// del frontend compartiendo sesiones y snapshots.
type Redis struct {
	cliente *redis.Client
}

// NewRedis conecta al Redis indicado y verifica la conexión.
func NewRedis(addr string) (*Redis, error) {
	cliente := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cliente.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{cliente: cliente}, nil
}

func (r *Redis) Get(key string) ([]byte, error) {
	val, err := r.cliente.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	return r.cliente.Set(context.Background(), key, val, exp).Err()
}

func (r *Redis) Delete(key string) error {
	return r.cliente.Del(context.Background(), key).Err()
}

func (r *Redis) Reset() error {
	return r.cliente.FlushDB(context.Background()).Err()
}

func (r *Redis) Close() error {
	return r.cliente.Close()
}

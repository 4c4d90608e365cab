package save

import (
	"context"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// RedisStore keeps each slot as one hash, plus a set of slot names. The hash
// is written with a single HSET so readers never see half a save.
type RedisStore struct {
	pool   *redis.Pool
	prefix string
}

func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     4,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", addr) },
	}
}

func NewRedisStore(pool *redis.Pool, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "monopoly"
	}
	return &RedisStore{pool: pool, prefix: prefix}
}

func (s *RedisStore) key(slot string) string { return s.prefix + ":save:" + slot }
func (s *RedisStore) slotsKey() string       { return s.prefix + ":saves" }

func (s *RedisStore) Put(ctx context.Context, slot string, docs Documents) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("HSET", s.key(slot),
		BoardFile, docs.Board,
		PlayersFile, docs.Players,
		MetaFile, docs.Meta); err != nil {
		return err
	}
	_, err = conn.Do("SADD", s.slotsKey(), slot)
	return err
}

func (s *RedisStore) Get(ctx context.Context, slot string) (Documents, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return Documents{}, err
	}
	defer conn.Close()

	m, err := redis.StringMap(conn.Do("HGETALL", s.key(slot)))
	if err != nil {
		return Documents{}, err
	}
	if len(m) == 0 {
		return Documents{}, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}

	docs := Documents{
		Board:   []byte(m[BoardFile]),
		Players: []byte(m[PlayersFile]),
		Meta:    []byte(m[MetaFile]),
	}
	if len(docs.Board) == 0 || len(docs.Players) == 0 || len(docs.Meta) == 0 {
		return Documents{}, fmt.Errorf("%w: %s is incomplete", ErrCorrupt, slot)
	}
	return docs, nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	slots, err := redis.Strings(conn.Do("SMEMBERS", s.slotsKey()))
	if err != nil {
		return nil, err
	}
	return sorted(slots), nil
}

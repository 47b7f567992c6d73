package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

// Open creates a Redis client and pings it to validate the connection.
func Open(ctx context.Context, addr, password string, dbNum int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbNum,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// UserCache stores users under both their id and wallet address.
type UserCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewUserCache(client redis.Cmdable, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

func (c *UserCache) keyByID(id string) string { return "user:id:" + id }
func (c *UserCache) keyByWallet(wallet string) string { return "user:wallet:" + wallet }

func (c *UserCache) Set(ctx context.Context, u *db.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, c.keyByID(u.ID), b, c.ttl)
		p.Set(ctx, c.keyByWallet(u.WalletAddress), b, c.ttl)
		return nil
	})
	return err
}

func (c *UserCache) GetByID(ctx context.Context, id string) (*db.User, error) {
	return c.get(ctx, c.keyByID(id))
}

func (c *UserCache) GetByWallet(ctx context.Context, wallet string) (*db.User, error) {
	return c.get(ctx, c.keyByWallet(wallet))
}

func (c *UserCache) get(ctx context.Context, key string) (*db.User, error) {
	v, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var u db.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

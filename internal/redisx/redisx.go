package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct{ Rdb *redis.Client }

func New(addr string, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &Client{Rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.Rdb.Ping(ctx).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key string, val string, ttl time.Duration) error {
	return c.Rdb.Set(ctx, key, val, ttl).Err()
}

func (c *Client) Del(ctx context.Context, key string) error {
	return c.Rdb.Del(ctx, key).Err()
}

func (c *Client) SetNX(ctx context.Context, key string, val string, ttl time.Duration) (bool, error) {
	return c.Rdb.SetNX(ctx, key, val, ttl).Result()
}

// Liked sets: one Redis set per user holding the listing ids they liked.
// The like toggle flips membership optimistically before the backend
// mutation resolves.

func likedKey(userID string) string { return "likes:user:" + userID }

func (c *Client) AddLike(ctx context.Context, userID, listingID string) error {
	return c.Rdb.SAdd(ctx, likedKey(userID), listingID).Err()
}

func (c *Client) RemoveLike(ctx context.Context, userID, listingID string) error {
	return c.Rdb.SRem(ctx, likedKey(userID), listingID).Err()
}

func (c *Client) IsLiked(ctx context.Context, userID, listingID string) (bool, error) {
	return c.Rdb.SIsMember(ctx, likedKey(userID), listingID).Result()
}

package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sofianedj/boardhub/internal/jobs"
)

// Client wraps the redis connection and the single job list the API
// produces to and the worker consumes from.
type Client struct {
	redisdb *redis.Client
	key     string
}

type Config struct {
	Addr     string
	Password string
	DB       int
	QueueKey string
}

var ErrEmpty = errors.New("queue empty")

func New(cfg Config) *Client {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	key := cfg.QueueKey
	if key == "" {
		key = "boardhub:jobs"
	}

	return &Client{redisdb: redisdb, key: key}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

// Enqueue pushes one encoded job onto the list.
func (c *Client) Enqueue(ctx context.Context, j jobs.Job) error {
	raw, err := jobs.Encode(j)

	if err != nil {
		return err
	}

	return c.redisdb.LPush(ctx, c.key, raw).Err()
}

// Dequeue blocks up to timeout for the next job. Returns ErrEmpty on a
// quiet queue so callers can just loop.
func (c *Client) Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error) {
	res, err := c.redisdb.BRPop(ctx, timeout, c.key).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jobs.Job{}, ErrEmpty
		}

		return jobs.Job{}, err
	}

	// BRPOP returns [key, value]
	if len(res) != 2 {
		return jobs.Job{}, ErrEmpty
	}

	return jobs.Decode([]byte(res[1]))
}

package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTracker keeps progress counters in Redis under
// {prefix}:{connection_id}:total_tables and {prefix}:{connection_id}:processed_tables.
type RedisTracker struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// ErrNilClient is returned by NewRedisTracker when no client is given.
var ErrNilClient = errors.New("redis client cannot be nil")

// NewRedisTracker wraps client. An empty prefix selects DefaultKeyPrefix and a
// zero ttl keeps keys forever.
func NewRedisTracker(client redis.Cmdable, prefix string, ttl time.Duration) (*RedisTracker, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisTracker{client: client, prefix: prefix, ttl: ttl}, nil
}

var _ Tracker = (*RedisTracker)(nil)

// TotalKey is the key holding the table count of connectionID.
func (t *RedisTracker) TotalKey(connectionID string) string {
	return fmt.Sprintf("%s:%s:total_tables", t.prefix, connectionID)
}

// ProcessedKey is the key holding the processed count of connectionID.
func (t *RedisTracker) ProcessedKey(connectionID string) string {
	return fmt.Sprintf("%s:%s:processed_tables", t.prefix, connectionID)
}

func (t *RedisTracker) SetTotal(ctx context.Context, connectionID string, total int) error {
	if err := t.client.Set(ctx, t.TotalKey(connectionID), total, t.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set total tables: %w", err)
	}
	return nil
}

func (t *RedisTracker) SetProcessed(ctx context.Context, connectionID string, processed int) error {
	if err := t.client.Set(ctx, t.ProcessedKey(connectionID), processed, t.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set processed tables: %w", err)
	}
	return nil
}

// IncrProcessed increments the processed counter. INCR keeps an existing TTL.
func (t *RedisTracker) IncrProcessed(ctx context.Context, connectionID string) (int64, error) {
	n, err := t.client.Incr(ctx, t.ProcessedKey(connectionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment processed tables: %w", err)
	}
	return n, nil
}

func (t *RedisTracker) Get(ctx context.Context, connectionID string) (Progress, error) {
	vals, err := t.client.MGet(ctx, t.TotalKey(connectionID), t.ProcessedKey(connectionID)).Result()
	if err != nil {
		return Progress{}, fmt.Errorf("failed to read progress: %w", err)
	}

	if vals[0] == nil {
		return Progress{}, ErrNoProgress
	}

	total, err := toInt64(vals[0])
	if err != nil {
		return Progress{}, fmt.Errorf("failed to parse total tables: %w", err)
	}

	var processed int64
	if vals[1] != nil {
		if processed, err = toInt64(vals[1]); err != nil {
			return Progress{}, fmt.Errorf("failed to parse processed tables: %w", err)
		}
	}

	return Progress{Total: total, Processed: processed}, nil
}

var errUnexpectedValue = errors.New("unexpected value type")

func toInt64(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("%w: %T", errUnexpectedValue, v)
	}
	return strconv.ParseInt(s, 10, 64)
}

// Dial parses a redis:// URL, opens a client and pings it.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

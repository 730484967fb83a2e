package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var pingTimeout = 5 * time.Second

// Connect parses url, applies password when set, and pings the server
func Connect(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// Store is the small key/value surface the HTTP layer needs
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps client, namespacing every key with prefix
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, s.key(key)).Result()
}

// Set stores a key-value pair with expiration
func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, s.key(key), value, expiration).Err()
}

// SetNX sets a key only if it does not exist
func (s *Store) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.key(key), value, expiration).Result()
}

// Del removes a key
func (s *Store) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// IsMissing reports whether err means the key does not exist
func IsMissing(err error) bool {
	return errors.Is(err, redis.Nil)
}

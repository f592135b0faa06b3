package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "sugang"
	pingTimeout   = 5 * time.Second
)

type Config struct {
	URL string
	// Prefix namespaces every key this client builds. Defaults to DefaultPrefix.
	Prefix string
}

// Client is a go-redis client that knows its key namespace.
type Client struct {
	*redis.Client

	prefix string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return Wrap(client, cfg.Prefix), nil
}

// Wrap namespaces an existing client.
func Wrap(client *redis.Client, prefix string) *Client {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Client{Client: client, prefix: prefix}
}

// Key joins parts under the client's prefix: Key("credentials") is
// "sugang:credentials".
func (c *Client) Key(parts ...string) string {
	return c.prefix + ":" + strings.Join(parts, ":")
}

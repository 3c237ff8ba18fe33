package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promopilot/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Article is the published-content payload cached per node. Deeper cascade
// levels reuse it for contextual continuity instead of re-fetching the page.
type Article struct {
	Title       string `json:"title"`
	HTMLContent string `json:"htmlContent"`
	PlainText   string `json:"plainText"`
	Language    string `json:"language"`
}

const articleTTL = 72 * time.Hour

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client
func NewClient(addr string, logger *observability.Logger) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "addr", Value: addr}),
		"successfully connected to Redis")

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// GetClient exposes the underlying client for callers that need raw commands
func (c *Client) GetClient() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func articleKey(nodeID string) string {
	return "promotion:article:" + nodeID
}

// SetArticle caches the published article payload for a node
func (c *Client) SetArticle(ctx context.Context, nodeID string, article Article) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	data, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("failed to marshal article: %w", err)
	}
	if err := c.client.Set(ctx, articleKey(nodeID), data, articleTTL).Err(); err != nil {
		c.logger.Error(ctx, "failed to cache article", err)
		return fmt.Errorf("failed to cache article: %w", err)
	}
	return nil
}

// GetArticle retrieves a cached article payload for a node. Returns found=false
// when the cache has no entry; callers fall back to the original anchor text.
func (c *Client) GetArticle(ctx context.Context, nodeID string) (Article, bool, error) {
	if c == nil || c.client == nil {
		return Article{}, false, fmt.Errorf("Redis client not initialized")
	}
	data, err := c.client.Get(ctx, articleKey(nodeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Article{}, false, nil
		}
		c.logger.Error(ctx, "failed to read cached article", err)
		return Article{}, false, fmt.Errorf("failed to read cached article: %w", err)
	}
	var article Article
	if err := json.Unmarshal(data, &article); err != nil {
		return Article{}, false, fmt.Errorf("failed to unmarshal cached article: %w", err)
	}
	return article, true, nil
}

// Throttle reports whether an event keyed by key fired within the window.
// Used to rate-limit repetitive log events across worker processes. The first
// caller in a window gets false and arms the window.
func (c *Client) Throttle(ctx context.Context, key string, window time.Duration) (bool, error) {
	if c == nil || c.client == nil {
		return false, fmt.Errorf("Redis client not initialized")
	}
	set, err := c.client.SetNX(ctx, "promotion:throttle:"+key, time.Now().Unix(), window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check throttle key: %w", err)
	}
	return !set, nil
}

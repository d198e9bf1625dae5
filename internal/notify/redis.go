package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// RedisNotifier publishes notification events on a Redis channel so
// connected clients can render them as toasts.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

type event struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	At      int64  `json:"ts"`
}

func NewRedisNotifier(ctx context.Context, redisURL, channel string, logger *zap.Logger) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisNotifier{client: client, channel: channel, logger: logger}, nil
}

func (n *RedisNotifier) Notify(kind Kind, message string) {
	payload, err := json.Marshal(event{Kind: kind, Message: message, At: time.Now().UnixMilli()})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.logger.Warn("Failed to publish notification",
			zap.Error(err),
			zap.String("channel", n.channel))
	}
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

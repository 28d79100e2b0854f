package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisProducer pushes JSON-encoded jobs onto a Redis list consumed by an
// external worker.
type RedisProducer struct {
	client *redis.Client
	queue  string
}

func NewRedisProducer(client *redis.Client, queue string) *RedisProducer {
	return &RedisProducer{client: client, queue: queue}
}

func (p *RedisProducer) Enqueue(ctx context.Context, job any) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err := p.client.RPush(ctx, p.queue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", p.queue, err)
	}

	return nil
}

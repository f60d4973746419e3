// Package events publishes domain events on Redis pub/sub channels.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	JobCreated         = "JOB_CREATED"
	ApplicationCreated = "APPLICATION_CREATED"
	PaymentLogged      = "PAYMENT_LOGGED"
)

// Publisher sends one event to the channel named after its type.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]string) error
}

type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, payload map[string]string) error {
	body := make(map[string]string, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["type"] = eventType

	event, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	if err := p.rdb.Publish(ctx, eventType, event).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

// Nop drops every event. Used when Redis is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, map[string]string) error { return nil }

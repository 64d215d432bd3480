package service

import (
	"context"
	"encoding/json"

	"docuverify/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EventPublisher hands decision events to the notification queue. Publishing
// is best-effort: a failed push is logged and never fails the transition
// that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, ev model.DecisionEvent)
}

type RedisEventPublisher struct {
	rdb       *redis.Client
	queueName string
	log       zerolog.Logger
}

func NewRedisEventPublisher(rdb *redis.Client, queueName string, baseLogger zerolog.Logger) *RedisEventPublisher {
	return &RedisEventPublisher{
		rdb:       rdb,
		queueName: queueName,
		log:       baseLogger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *RedisEventPublisher) Publish(ctx context.Context, ev model.DecisionEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("request_id", ev.RequestID).Msg("failed to marshal decision event")
		return
	}
	if err := p.rdb.LPush(ctx, p.queueName, payload).Err(); err != nil {
		p.log.Error().Err(err).Str("request_id", ev.RequestID).Msg("failed to push decision event")
	}
}

// NopEventPublisher discards events; used when no queue is configured and in
// tests that do not care about notifications.
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, model.DecisionEvent) {}

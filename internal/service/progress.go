package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cbnu/campus-ontology/internal/config"
	"github.com/cbnu/campus-ontology/internal/websocket"
)

// ProgressPublisher fans out run progress to whoever is listening.
type ProgressPublisher interface {
	Publish(ctx context.Context, ev websocket.ProgressEvent) error
}

// RedisProgressPublisher publishes events on the run's PubSub channel.
type RedisProgressPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRedisProgressPublisher(rdb *redis.Client, log zerolog.Logger) *RedisProgressPublisher {
	return &RedisProgressPublisher{
		rdb: rdb,
		log: log.With().Str("component", "progress_publisher").Logger(),
	}
}

func (p *RedisProgressPublisher) Publish(ctx context.Context, ev websocket.ProgressEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	return p.rdb.Publish(ctx, config.CacheKey.RunProgressChannel(ev.RunID), payload).Err()
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, websocket.ProgressEvent) error { return nil }

// progressFor binds a publisher to one run. Publish failures are logged and
// never fail the run.
type progressFor struct {
	pub   ProgressPublisher
	runID uuid.UUID
	log   zerolog.Logger
}

func (p progressFor) send(ctx context.Context, ev websocket.ProgressEvent) {
	ev.RunID = p.runID.String()
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := p.pub.Publish(context.WithoutCancel(ctx), ev); err != nil {
		p.log.Warn().Err(err).Str("event", string(ev.Event)).Msg("Progress publish failed")
	}
}

func (p progressFor) phase(ctx context.Context, phase string) {
	p.send(ctx, websocket.ProgressEvent{Event: websocket.EventPhase, Phase: phase})
}

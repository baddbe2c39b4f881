package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/internal/observability"
)

// Notice event sources.
const (
	NoticeSourceAdmin     = "admin"
	NoticeSourcePromotion = "promotion"
)

// NoticeEvent is broadcast whenever a notice is published.
type NoticeEvent struct {
	NoticeID    uint      `json:"notice_id"`
	Title       string    `json:"title"`
	CourseIDs   []uint    `json:"course_ids"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
}

// NoticeBroadcaster fans published notices out to subscribers.
type NoticeBroadcaster interface {
	Broadcast(ctx context.Context, notice models.Notice, source string)
}

type noticeBroadcaster struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
}

// NewNoticeBroadcaster publishes to the Redis channel and NATS subject that are configured. Either may be nil.
func NewNoticeBroadcaster(redisClient *redis.Client, redisChannel string, natsConn *nats.Conn, natsSubject string, logger zerolog.Logger) NoticeBroadcaster {
	return &noticeBroadcaster{
		redis:        redisClient,
		redisChannel: redisChannel,
		nats:         natsConn,
		natsSubject:  natsSubject,
		logger:       logger.With().Str("component", "notice_broadcaster").Logger(),
	}
}

// Broadcast never fails the caller; transport errors are logged.
func (b *noticeBroadcaster) Broadcast(ctx context.Context, notice models.Notice, source string) {
	event := NoticeEvent{
		NoticeID:    notice.ID,
		Title:       notice.Title,
		CourseIDs:   notice.CourseIDs(),
		PublishedAt: notice.PublishedAt.UTC(),
		Source:      source,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Uint("notice_id", notice.ID).Msg("failed to encode notice event")
		return
	}

	if b.redis != nil && b.redisChannel != "" {
		if err := b.redis.Publish(ctx, b.redisChannel, payload).Err(); err != nil {
			observability.NoticeBroadcasts().WithLabelValues("redis", "error").Inc()
			b.logger.Warn().Err(err).Uint("notice_id", notice.ID).Msg("notice event not published to redis")
		} else {
			observability.NoticeBroadcasts().WithLabelValues("redis", "ok").Inc()
		}
	}

	if b.nats != nil && b.natsSubject != "" {
		if err := b.nats.Publish(b.natsSubject, payload); err != nil {
			observability.NoticeBroadcasts().WithLabelValues("nats", "error").Inc()
			b.logger.Warn().Err(err).Uint("notice_id", notice.ID).Msg("notice event not published to nats")
		} else {
			observability.NoticeBroadcasts().WithLabelValues("nats", "ok").Inc()
		}
	}
}

package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"docuverify/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Notifier consumes decision events from the redis queue and hands them to
// the external presentation collaborator. Delivery is single-attempt: a
// failed webhook call is logged, never retried, and never blocks the engine
// that produced the event.
type Notifier struct {
	rdb        *redis.Client
	queueName  string
	webhookURL string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewNotifier(rdb *redis.Client, queueName, webhookURL string, baseLogger zerolog.Logger) *Notifier {
	return &Notifier{
		rdb:        rdb,
		queueName:  queueName,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        baseLogger.With().Str("component", "notifier").Logger(),
	}
}

func (w *Notifier) Start(ctx context.Context) {
	w.log.Info().Str("queue", w.queueName).Msg("notifier started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("notifier stopping")
			return
		default:
			result, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				w.log.Error().Err(err).Str("queue", w.queueName).Msg("BRPop failed")
				time.Sleep(5 * time.Second) // Wait before retrying on other errors
				continue
			}

			// result is [queueName, value]
			if len(result) < 2 || result[1] == "" {
				continue
			}
			w.deliver(ctx, []byte(result[1]))
		}
	}
}

func (w *Notifier) deliver(ctx context.Context, payload []byte) {
	var ev model.DecisionEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		w.log.Error().Err(err).Msg("malformed decision event, dropping")
		return
	}

	log := w.log.With().
		Str("event_id", ev.ID).
		Str("request_id", ev.RequestID).
		Str("status", string(ev.Status)).
		Logger()

	if w.webhookURL == "" {
		log.Info().Msg("decision event (no webhook configured)")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(payload))
	if err != nil {
		log.Error().Err(err).Msg("failed to build webhook request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("webhook delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Error().Int("status_code", resp.StatusCode).Msg("webhook rejected decision event")
		return
	}
	log.Info().Msg("decision event delivered")
}

package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docuverify/internal/domain/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(t *testing.T) []byte {
	t.Helper()
	reason := "signature mismatch"
	payload, err := json.Marshal(model.DecisionEvent{
		ID:          "event-1",
		RequestID:   "request-1",
		SubmitterID: "user-1",
		Status:      model.StatusRejected,
		Reason:      &reason,
		ActorID:     "admin-2",
		OccurredAt:  time.Now(),
	})
	require.NoError(t, err)
	return payload
}

func TestDeliverPostsToWebhook(t *testing.T) {
	received := make(chan model.DecisionEvent, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev model.DecisionEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	w := NewNotifier(nil, "decision_events_queue", server.URL, zerolog.Nop())
	w.deliver(context.Background(), testEvent(t))

	select {
	case ev := <-received:
		assert.Equal(t, "request-1", ev.RequestID)
		assert.Equal(t, model.StatusRejected, ev.Status)
		require.NotNil(t, ev.Reason)
		assert.Equal(t, "signature mismatch", *ev.Reason)
	case <-time.After(time.Second):
		t.Fatal("webhook never received the event")
	}
}

func TestDeliverToleratesFailures(t *testing.T) {
	// None of these may panic or retry; delivery is best-effort.
	t.Run("malformed payload dropped", func(t *testing.T) {
		w := NewNotifier(nil, "decision_events_queue", "http://unused.invalid", zerolog.Nop())
		w.deliver(context.Background(), []byte("not json"))
	})

	t.Run("no webhook configured logs only", func(t *testing.T) {
		w := NewNotifier(nil, "decision_events_queue", "", zerolog.Nop())
		w.deliver(context.Background(), testEvent(t))
	})

	t.Run("webhook rejection is swallowed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		w := NewNotifier(nil, "decision_events_queue", server.URL, zerolog.Nop())
		w.deliver(context.Background(), testEvent(t))
	})
}

//go:build unit

package outbox_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"booking-engine/internal/domain/shared/event"
	"booking-engine/internal/infra/memory"
	"booking-engine/internal/infra/outbox"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/shared"
	"booking-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	failOn    string
	published []string
}

func (p *recordingPublisher) Publish(ctx context.Context, env event.Envelope) error {
	if env.AggregateID == p.failOn {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, env.AggregateID)
	return nil
}

func seed(t *testing.T, store *memory.Store, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for range n {
			b := builder.NewBookingBuilder().BuildDomain()
			ids = append(ids, b.ID().String())
			if err := tx.Outbox().Append(ctx, b.CreatedEvent()); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return ids
}

func newRelay(store *memory.Store, pub outbox.Publisher, batch int) *outbox.Relay {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return outbox.NewRelay(store, pub, config.OutboxConfig{PollInterval: 10 * time.Millisecond, BatchSize: batch}, logger)
}

func TestRelay_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes in order and marks events", func(t *testing.T) {
		store := memory.NewStore()
		ids := seed(t, store, 3)
		pub := &recordingPublisher{}

		n, err := newRelay(store, pub, 10).RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, ids, pub.published)
		assert.Empty(t, store.Pending())

		n, err = newRelay(store, pub, 10).RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("batch size bounds one pass", func(t *testing.T) {
		store := memory.NewStore()
		seed(t, store, 5)
		relay := newRelay(store, &recordingPublisher{}, 2)

		n, err := relay.RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, store.Pending(), 3)
	})

	t.Run("a failure stops the batch and keeps the rest pending", func(t *testing.T) {
		store := memory.NewStore()
		ids := seed(t, store, 3)
		pub := &recordingPublisher{failOn: ids[1]}

		n, err := newRelay(store, pub, 10).RunOnce(ctx)
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, ids[:1], pub.published)

		var pending []string
		for _, env := range store.Pending() {
			pending = append(pending, env.AggregateID)
		}
		assert.Equal(t, ids[1:], pending)

		pub.failOn = ""
		n, err = newRelay(store, pub, 10).RunOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, ids, pub.published)
	})
}

func TestRelay_StartStop(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, 2)
	relay := newRelay(store, outbox.NewLogPublisher(slog.New(slog.NewTextHandler(io.Discard, nil))), 10)

	relay.Start()
	assert.Eventually(t, func() bool { return len(store.Pending()) == 0 }, time.Second, 10*time.Millisecond)
	relay.Stop()
}

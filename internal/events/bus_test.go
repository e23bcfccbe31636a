package events

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/metrics"
)

func startBus(t *testing.T, m *metrics.Metrics, extra ...cqrs.EventHandler) *Bus {
	t.Helper()

	bus, err := NewBus(zerolog.Nop(), m, extra...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx) }()

	select {
	case <-bus.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	t.Cleanup(func() {
		cancel()
		_ = bus.Close()
		<-done
	})
	return bus
}

func TestActivityCountsPublishedEvents(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	bus := startBus(t, m)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, &VenueListed{Header: NewHeader("req-1"), VenueID: 1, Name: "The Musical Hop"}))
	require.NoError(t, bus.Publish(ctx, &VenueDeleted{Header: NewHeader("req-2"), VenueID: 1, ShowsRemoved: 2}))
	require.NoError(t, bus.Publish(ctx, &ShowListed{Header: NewHeader("req-3"), ShowID: 5}))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.ListingEvents.WithLabelValues("venue_listed")) == 1 &&
			testutil.ToFloat64(m.ListingEvents.WithLabelValues("venue_deleted")) == 1 &&
			testutil.ToFloat64(m.ListingEvents.WithLabelValues("show_listed")) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestExtraHandlersReceiveEvents(t *testing.T) {
	received := make(chan *ArtistUpdated, 1)
	handler := cqrs.NewEventHandler("test-artist-updated", func(ctx context.Context, e *ArtistUpdated) error {
		received <- e
		return nil
	})

	bus := startBus(t, nil, handler)

	header := NewHeader("req-9")
	require.NoError(t, bus.Publish(context.Background(), &ArtistUpdated{Header: header, ArtistID: 4, Name: "Guns N Petals"}))

	select {
	case e := <-received:
		assert.Equal(t, int64(4), e.ArtistID)
		assert.Equal(t, header.ID, e.Header.ID)
		assert.Equal(t, "req-9", e.Header.RequestID)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.New(&buf)).With(watermill.LogFields{"handler": "h1"})

	logger.Error("handler failed", errors.New("boom"), watermill.LogFields{"topic": "fyyur.VenueListed"})

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"handler":"h1"`)
	assert.Contains(t, out, `"topic":"fyyur.VenueListed"`)
	assert.Contains(t, out, `"component":"events"`)
}

//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"credstate/internal/audit"
	"credstate/pkg/testutil/containers"
)

func TestPublisherRoundTrip(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	publisher, err := audit.NewPublisher([]string{rp.Broker}, "credstate.audit", logger)
	require.NoError(t, err)
	t.Cleanup(publisher.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	require.NoError(t, publisher.EnsureTopic(ctx, 1, 1))
	require.NoError(t, publisher.EnsureTopic(ctx, 1, 1), "ensure is idempotent")

	publisher.Emit(ctx, audit.Event{
		Type:       audit.EventStatusChecked,
		IdentityDN: "cn=alice,ou=people,dc=example,dc=org",
		Device:     "Chrome on Mac OS X",
	})

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics("credstate.audit"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)

	assert.Equal(t, "cn=alice,ou=people,dc=example,dc=org", string(records[0].Key),
		"events are keyed by identity so one identity stays ordered")

	var event audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &event))
	assert.Equal(t, audit.EventStatusChecked, event.Type)
	assert.Equal(t, "cn=alice,ou=people,dc=example,dc=org", event.IdentityDN)
	assert.Equal(t, "Chrome on Mac OS X", event.Device)
	assert.NotEmpty(t, event.ID, "emit assigns an ID")
	assert.False(t, event.Timestamp.IsZero(), "emit assigns a timestamp")
}

func TestNilPublisherIsSafe(t *testing.T) {
	var publisher *audit.Publisher
	publisher.Emit(context.Background(), audit.Event{Type: audit.EventStatusChecked})
	publisher.Close()
}

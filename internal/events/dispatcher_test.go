package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_PublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string

	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.SubjectID)
		return errors.New("smtp down")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventPasswordResetRequested, func(context.Context, Event) error {
		seen = append(seen, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventUserRegistered, SubjectID: "u1"})

	require.ErrorContains(t, err, "smtp down")
	require.Equal(t, []string{"first:u1", "second:u1"}, seen)
}

func TestInMemoryDispatcher_NoListeners(t *testing.T) {
	require.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventCommunityAdminAdded}))
}

func TestInMemoryDispatcher_StopsWhenContextDone(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		calls++
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Publish(ctx, Event{Type: EventUserRegistered})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls)
}

package emitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitDone(t *testing.T) {
	em := New()
	go func() { _ = em.CallDone("test") }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := em.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", v)
}

func TestAwaitDoneWithoutValue(t *testing.T) {
	em := New()
	require.NoError(t, em.CallDone())

	v, err := em.Await(context.Background())
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestAwaitRejections(t *testing.T) {
	for _, name := range []string{ChannelError, ChannelCatch} {
		t.Run(name, func(t *testing.T) {
			em := New()
			_, _ = em.On(name, func(...any) error { return nil })
			require.NoError(t, em.Call(name, "test"))

			_, err := em.Await(context.Background())
			var rej *RejectionError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, name, rej.Channel)
			assert.Equal(t, []any{"test"}, rej.Args)
		})
	}
}

func TestAwaitRejectionUnwrapsError(t *testing.T) {
	em := New()
	cause := errors.New("cause")
	_, _ = em.OnError(func(...any) error { return nil })
	require.NoError(t, em.CallError(cause))

	_, err := em.Await(context.Background())
	assert.ErrorIs(t, err, cause)
}

func TestAwaitContextCancelled(t *testing.T) {
	em := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := em.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitCancelledReleasesSubscriptions(t *testing.T) {
	em, sink := newTestEmitter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := em.Await(ctx)
	require.ErrorIs(t, err, context.Canceled)

	for _, name := range []string{ChannelDone, ChannelError, ChannelCatch} {
		c, _ := em.channels.Get(name)
		assert.True(t, c.isEmpty(), name)
	}

	require.NoError(t, em.CallCatch("later"))
	assert.Equal(t, [][]any{{"later"}}, sink.snapshot())
}

func TestPromiseSettlesOnce(t *testing.T) {
	em := New()

	ch, err := em.Promise()
	require.NoError(t, err)

	require.NoError(t, em.CallDone(1))
	_, _ = em.OnError(func(...any) error { return nil })
	require.NoError(t, em.CallError("late"))

	s, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, 1, s.Value)
	assert.Equal(t, []any{1}, s.Args)
	assert.NoError(t, s.Err)

	_, ok = <-ch
	assert.False(t, ok, "channel is closed after settling")
}

func TestPromiseReleasesSubscriptions(t *testing.T) {
	em := New()
	require.NoError(t, em.CallDone("sticky"))

	ch, err := em.Promise()
	require.NoError(t, err)
	s := <-ch
	assert.Equal(t, "sticky", s.Value)

	for _, name := range []string{ChannelDone, ChannelError, ChannelCatch} {
		c, _ := em.channels.Get(name)
		assert.True(t, c.isEmpty(), name)
	}
}

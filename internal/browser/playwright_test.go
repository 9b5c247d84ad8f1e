package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitCtx_ReturnsCallResult(t *testing.T) {
	boom := errors.New("selector not attached")

	assert.NoError(t, awaitCtx(context.Background(), func() error { return nil }))
	assert.ErrorIs(t, awaitCtx(context.Background(), func() error { return boom }), boom)
}

func TestAwaitCtx_ReturnsWhenContextEnds(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	err := awaitCtx(ctx, func() error {
		<-release
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMillis(t *testing.T) {
	ms, err := millis(context.Background(), 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, float64(10000), ms)

	ms, err = millis(context.Background(), time.Microsecond)
	require.NoError(t, err)
	assert.Equal(t, float64(1), ms)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = millis(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

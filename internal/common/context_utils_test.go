package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitWithCancellation(t *testing.T) {
	assert.NoError(t, WaitWithCancellation(context.Background(), time.Millisecond))
	assert.NoError(t, WaitWithCancellation(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, WaitWithCancellation(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, WaitWithCancellation(ctx, 0), context.Canceled)
}

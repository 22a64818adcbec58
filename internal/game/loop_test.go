package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcb4/DrawNGuess/internal/logger"
)

func runLoop(t *testing.T) (*Loop, context.CancelFunc) {
	loop := NewLoop(16, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(cancel)
	return loop, cancel
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	loop, _ := runLoop(t)
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, loop.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, loop.Do(context.Background(), func() {}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoopSurvivesPanics(t *testing.T) {
	loop, _ := runLoop(t)
	loop.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, loop.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoopRejectsWorkAfterStop(t *testing.T) {
	loop, cancel := runLoop(t)
	cancel()
	assert.Eventually(t, func() bool { return !loop.Post(func() {}) }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, loop.Do(context.Background(), func() {}), ErrLoopStopped)
}

func TestLoopDoHonorsContext(t *testing.T) {
	loop, _ := runLoop(t)
	release := make(chan struct{})
	loop.Post(func() { <-release })
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, loop.Do(ctx, func() {}), context.DeadlineExceeded)
}

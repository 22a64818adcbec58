package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/jdcb4/DrawNGuess/internal/logger"
)

// Loop runs every engine mutation on one goroutine, in arrival order.
// Socket readers and timers post work here; nothing else touches the engine.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	Logger logger.Logger
}

func NewLoop(buffer int, log logger.Logger) *Loop {
	return &Loop{
		tasks:  make(chan func(), buffer),
		done:   make(chan struct{}),
		Logger: log,
	}
}

func (l *Loop) Run(ctx context.Context) {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			l.Logger.Info("Game loop stopped")
			return
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.Logger.Error("Recovered from panic in game loop", fmt.Errorf("%v", r))
		}
	}()
	fn()
}

// Post queues fn. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do queues fn and waits for it to run. Never call it from inside the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

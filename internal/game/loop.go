package game

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned by Submit once the loop has exited.
var ErrLoopStopped = errors.New("game loop stopped")

type request struct {
	cmd   Command
	reply chan error
}

// Loop runs one Controller on its own goroutine, feeding it commands,
// countdown ticks and delayed actions.
type Loop struct {
	ctrl  *Controller
	sched *scheduler

	requests chan request
	done     chan struct{}
}

// NewLoop creates a loop for ctrl. Call Run to start it.
func NewLoop(ctrl *Controller, cfg Config) *Loop {
	cfg = cfg.withDefaults()
	return &Loop{
		ctrl:     ctrl,
		sched:    newScheduler(cfg.TickInterval),
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	defer l.sched.stop()

	for {
		l.sched.sync(l.ctrl.Session())
		select {
		case <-ctx.Done():
			return
		case req := <-l.requests:
			req.reply <- l.ctrl.Dispatch(ctx, req.cmd)
		case <-l.sched.ticks():
			l.ctrl.Tick(ctx)
		case <-l.sched.fired():
			l.ctrl.Resolve(ctx, l.sched.take())
		}
	}
}

// Submit hands cmd to the loop and waits for it to be applied.
func (l *Loop) Submit(ctx context.Context, cmd Command) error {
	req := request{cmd: cmd, reply: make(chan error, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

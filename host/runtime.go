package host

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Runtime executes contract operations as serialized, all-or-nothing
// invocations against a fixed set of facades.
type Runtime struct {
	mu        sync.Mutex
	store     Storage
	events    NotificationLog
	committer InvocationCommitter
	logger    *zap.Logger
}

// NewRuntime wires a runtime from its facades. A nil logger disables
// operation logging. When store and events are one and the same
// InvocationCommitter, commits go through it in a single step.
func NewRuntime(store Storage, events NotificationLog, logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Runtime{
		store:  store,
		events: events,
		logger: logger,
	}
	if c, ok := store.(InvocationCommitter); ok {
		if ec, ok := events.(InvocationCommitter); ok && ec == c {
			rt.committer = c
		}
	}
	return rt
}

// Invoke runs fn as one invocation approved by the given witness. If fn
// panics, the invocation aborts: the error is an *AbortError and none of
// the buffered writes or notifications take effect. On normal return the
// write set is committed to storage first and the notifications are
// published after it.
func (rt *Runtime) Invoke(w Witness, fn func(e *Env)) (err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	env := newEnv(rt.store, w, rt.logger)

	defer func() {
		if r := recover(); r != nil {
			reason := abortReason(r)
			rt.logger.Warn("invocation aborted", zap.String("reason", reason))
			err = &AbortError{Reason: reason}
		}
	}()

	fn(env)

	if cerr := env.commit(rt.store, rt.events, rt.committer); cerr != nil {
		return fmt.Errorf("host: commit invocation: %w", cerr)
	}
	return nil
}

// View runs fn as a read-only invocation: it may read current state but
// any buffered writes or notifications are discarded. Panics abort it
// the same way Invoke does. The witness denies every account, so
// operations requiring authorization fault.
func (rt *Runtime) View(fn func(e *Env)) (err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	env := newEnv(rt.store, denyAll{}, rt.logger)

	defer func() {
		if r := recover(); r != nil {
			err = &AbortError{Reason: abortReason(r)}
		}
	}()

	fn(env)
	return nil
}

func abortReason(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

type denyAll struct{}

func (denyAll) CheckWitness([]byte) bool { return false }

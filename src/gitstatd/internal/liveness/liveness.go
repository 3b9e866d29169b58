// Package liveness watches for the death of the parent process. The daemon
// has no heartbeat protocol: the parent either keeps an advisory lock on an
// inherited descriptor or keeps accepting SIGWINCH, and losing either one
// is reason to exit immediately.
package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Module is the Fx module for this package.
var Module = fx.Provide(func(p Params) Supervisor {
	return New(p)
})

const (
	_checkInterval = time.Second
	_idleThreshold = time.Second
)

// Supervisor tracks request activity and self-terminates the process when
// the parent appears gone during an idle period.
type Supervisor interface {
	// Begin marks a request as in flight. The supervisor never fires
	// between Begin and End, so an unflushed response cannot be cut off.
	Begin()
	// End marks the in-flight request as complete and resets the idle
	// timer.
	End()
}

// Params define values to be used by the supervisor.
type Params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     entity.Config
	Clock      clock.Clock
	Logger     *zap.SugaredLogger
}

// Option customizes the supervisor's probes, mainly so tests can avoid
// real file locks and signals.
type Option func(*supervisor)

// WithLockProbe overrides the advisory-lock check. The probe reports
// whether another process currently holds the lock on fd.
func WithLockProbe(probe func(fd int) (bool, error)) Option {
	return func(s *supervisor) {
		s.lockProbe = probe
	}
}

// WithSignalProbe overrides SIGWINCH delivery to the parent.
func WithSignalProbe(probe func(pid int) error) Option {
	return func(s *supervisor) {
		s.signalProbe = probe
	}
}

type supervisor struct {
	config     entity.Config
	clock      clock.Clock
	shutdowner fx.Shutdowner
	logger     *zap.SugaredLogger

	lockProbe   func(fd int) (bool, error)
	signalProbe func(pid int) error

	mu           sync.Mutex
	lastActivity time.Time
	inFlight     bool

	done chan struct{}
}

// New creates the supervisor and, when any check is configured, starts its
// timer loop on application start.
func New(p Params, opts ...Option) Supervisor {
	s := &supervisor{
		config:       p.Config,
		clock:        p.Clock,
		shutdowner:   p.Shutdowner,
		logger:       p.Logger,
		lockProbe:    flockHeld,
		signalProbe:  sendSigwinch,
		lastActivity: p.Clock.Now(),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.config.LockFD < 0 && s.config.SigwinchPID < 0 {
		return s
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.run()
			return nil
		},
		OnStop: func(context.Context) error {
			close(s.done)
			return nil
		},
	})
	return s
}

func (s *supervisor) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = true
}

func (s *supervisor) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	s.lastActivity = s.clock.Now()
}

func (s *supervisor) run() {
	for {
		select {
		case <-s.done:
			return
		case now := <-s.clock.After(_checkInterval):
			if !s.check(now) {
				return
			}
		}
	}
}

// check runs both configured probes if the loop has been idle long enough.
// It returns false once the process is being terminated.
func (s *supervisor) check(now time.Time) bool {
	// Idleness is read at a single point in time so the decision cannot
	// race a request that arrives while the probes run.
	s.mu.Lock()
	idle := !s.inFlight && now.Sub(s.lastActivity) >= _idleThreshold
	s.mu.Unlock()
	if !idle {
		return true
	}

	alive := true
	var probeErr error
	if s.config.LockFD >= 0 {
		held, err := s.lockProbe(s.config.LockFD)
		if err != nil || !held {
			alive = false
			probeErr = multierr.Append(probeErr, err)
		}
	}
	if s.config.SigwinchPID >= 0 {
		if err := s.signalProbe(s.config.SigwinchPID); err != nil {
			alive = false
			probeErr = multierr.Append(probeErr, err)
		}
	}
	if !alive {
		s.logger.Warnw("parent appears gone, exiting",
			"fd", s.config.LockFD, "pid", s.config.SigwinchPID, "error", probeErr)
		s.shutdowner.Shutdown(fx.ExitCode(1))
		return false
	}
	return true
}

// flockHeld reports whether another process still holds the advisory lock
// on fd. Acquiring the lock ourselves proves the parent released it.
func flockHeld(fd int) (bool, error) {
	err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return false, nil
	}
	if err == unix.EWOULDBLOCK {
		return true, nil
	}
	return false, err
}

func sendSigwinch(pid int) error {
	return unix.Kill(pid, unix.SIGWINCH)
}

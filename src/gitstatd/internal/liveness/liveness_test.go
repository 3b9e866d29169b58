package liveness

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeClock struct {
	now  time.Time
	tick chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0), tick: make(chan time.Time)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) After(time.Duration) <-chan time.Time { return f.tick }

type fakeShutdowner struct {
	fired chan struct{}
}

func newFakeShutdowner() *fakeShutdowner {
	return &fakeShutdowner{fired: make(chan struct{})}
}

func (f *fakeShutdowner) Shutdown(...fx.ShutdownOption) error {
	close(f.fired)
	return nil
}

func supervisorFixture(t *testing.T, cfg entity.Config, opts ...Option) (Supervisor, *fakeClock, *fakeShutdowner, *fxtest.Lifecycle) {
	clk := newFakeClock()
	sh := newFakeShutdowner()
	lc := fxtest.NewLifecycle(t)
	s := New(Params{
		Lifecycle:  lc,
		Shutdowner: sh,
		Config:     cfg,
		Clock:      clk,
		Logger:     zap.NewNop().Sugar(),
	}, opts...)
	return s, clk, sh, lc
}

func TestLockReleasedTriggersShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := entity.DefaultConfig()
	cfg.LockFD = 7
	_, clk, sh, lc := supervisorFixture(t, cfg,
		WithLockProbe(func(fd int) (bool, error) {
			assert.Equal(t, 7, fd)
			return false, nil
		}))

	lc.RequireStart()
	defer lc.RequireStop()

	clk.tick <- clk.now.Add(2 * time.Second)
	<-sh.fired
}

func TestLockHeldKeepsRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := entity.DefaultConfig()
	cfg.LockFD = 7
	probed := make(chan struct{}, 4)
	_, clk, sh, lc := supervisorFixture(t, cfg,
		WithLockProbe(func(int) (bool, error) {
			probed <- struct{}{}
			return true, nil
		}))

	lc.RequireStart()

	clk.tick <- clk.now.Add(2 * time.Second)
	<-probed

	select {
	case <-sh.fired:
		t.Fatal("supervisor fired while the parent holds the lock")
	default:
	}
	lc.RequireStop()
}

func TestSigwinchFailureTriggersShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := entity.DefaultConfig()
	cfg.SigwinchPID = 4242
	_, clk, sh, lc := supervisorFixture(t, cfg,
		WithSignalProbe(func(pid int) error {
			assert.Equal(t, 4242, pid)
			return assert.AnError
		}))

	lc.RequireStart()
	defer lc.RequireStop()

	clk.tick <- clk.now.Add(2 * time.Second)
	<-sh.fired
}

func TestInFlightRequestSuppressesProbes(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := entity.DefaultConfig()
	cfg.LockFD = 7
	var probes atomic.Int32
	s, clk, _, lc := supervisorFixture(t, cfg,
		WithLockProbe(func(int) (bool, error) {
			probes.Add(1)
			return false, nil
		}))

	lc.RequireStart()
	defer lc.RequireStop()

	s.Begin()
	clk.tick <- clk.now.Add(time.Hour)
	// The unbuffered tick channel accepting a second send proves the first
	// check completed without probing.
	clk.tick <- clk.now.Add(2 * time.Hour)
	assert.Zero(t, probes.Load())
	s.End()
}

func TestRecentActivityDefersProbes(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := entity.DefaultConfig()
	cfg.LockFD = 7
	var probes atomic.Int32
	s, clk, _, lc := supervisorFixture(t, cfg,
		WithLockProbe(func(int) (bool, error) {
			probes.Add(1)
			return false, nil
		}))

	lc.RequireStart()
	defer lc.RequireStop()

	s.Begin()
	clk.now = clk.now.Add(time.Hour)
	s.End()

	// Half a second after the last response is below the idle threshold.
	clk.tick <- clk.now.Add(500 * time.Millisecond)
	clk.tick <- clk.now.Add(600 * time.Millisecond)
	assert.Zero(t, probes.Load())
}

func TestDisabledChecksStartNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _, sh, lc := supervisorFixture(t, entity.DefaultConfig())

	lc.RequireStart()
	s.Begin()
	s.End()
	lc.RequireStop()

	select {
	case <-sh.fired:
		t.Fatal("supervisor fired with both checks disabled")
	default:
	}
}

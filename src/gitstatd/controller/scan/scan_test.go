package scan

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/promptkit/gitstatd/src/gitstatd/gateway/git"
	"github.com/promptkit/gitstatd/src/gitstatd/gateway/git/gitmock"
	"github.com/stretchr/testify/assert"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestController(t *testing.T, cfg entity.Config) (Controller, *gitmock.MockGateway) {
	ctrl := gomock.NewController(t)
	gw := gitmock.NewMockGateway(ctrl)
	c := New(Params{
		Config:  cfg,
		Gateway: gw,
		Logger:  zap.NewNop().Sugar(),
		Stats:   tally.NewTestScope("", nil),
	})
	return c, gw
}

func trackedUnits(n int) []git.ScanUnit {
	units := make([]git.ScanUnit, n)
	for i := range units {
		units[i] = git.ScanUnit{Kind: git.KindTracked, Lo: i, Hi: i + 1}
	}
	return units
}

func TestScanClean(t *testing.T) {
	cfg := entity.DefaultConfig()
	cfg.NumThreads = 2
	c, gw := newTestController(t, cfg)
	sess := &entity.Session{Workdir: "/repo"}

	gw.EXPECT().HasStagedChanges(sess).Return(false, nil)
	gw.EXPECT().IndexEntryCount(sess).Return(3)
	gw.EXPECT().ScanUnits(sess, 2).Return(trackedUnits(3))
	gw.EXPECT().Scan(sess, gomock.Any()).Return(false, false).Times(3)

	hasStaged, unstaged, untracked := c.Scan(context.Background(), sess)
	assert.False(t, hasStaged)
	assert.Equal(t, entity.No, unstaged)
	assert.Equal(t, entity.No, untracked)
}

func TestScanFindings(t *testing.T) {
	cfg := entity.DefaultConfig()
	cfg.NumThreads = 1
	c, gw := newTestController(t, cfg)
	sess := &entity.Session{Workdir: "/repo"}

	gw.EXPECT().HasStagedChanges(sess).Return(true, nil)
	gw.EXPECT().IndexEntryCount(sess).Return(2)
	gw.EXPECT().ScanUnits(sess, 1).Return([]git.ScanUnit{
		{Kind: git.KindTracked, Lo: 0, Hi: 2},
		{Kind: git.KindUntracked, Root: "src"},
	})
	gomock.InOrder(
		gw.EXPECT().Scan(sess, git.ScanUnit{Kind: git.KindTracked, Lo: 0, Hi: 2}).Return(true, false),
		gw.EXPECT().Scan(sess, git.ScanUnit{Kind: git.KindUntracked, Root: "src"}).Return(false, true),
	)

	hasStaged, unstaged, untracked := c.Scan(context.Background(), sess)
	assert.True(t, hasStaged)
	assert.Equal(t, entity.Yes, unstaged)
	assert.Equal(t, entity.Yes, untracked)
}

func TestScanBoundedIndex(t *testing.T) {
	cfg := entity.DefaultConfig()
	cfg.DirtyMaxIndexSize = 10
	c, gw := newTestController(t, cfg)
	sess := &entity.Session{Workdir: "/repo"}

	gw.EXPECT().HasStagedChanges(sess).Return(true, nil)
	gw.EXPECT().IndexEntryCount(sess).Return(11)
	// ScanUnits and Scan must never be called when the bound trips.

	hasStaged, unstaged, untracked := c.Scan(context.Background(), sess)
	assert.True(t, hasStaged, "staged detection still runs under the bound")
	assert.Equal(t, entity.Unknown, unstaged)
	assert.Equal(t, entity.Unknown, untracked)
}

func TestScanStagedErrorDegrades(t *testing.T) {
	cfg := entity.DefaultConfig()
	cfg.NumThreads = 1
	c, gw := newTestController(t, cfg)
	sess := &entity.Session{Workdir: "/repo"}

	gw.EXPECT().HasStagedChanges(sess).Return(false, assert.AnError)
	gw.EXPECT().IndexEntryCount(sess).Return(0)
	gw.EXPECT().ScanUnits(sess, 1).Return(nil)

	hasStaged, _, _ := c.Scan(context.Background(), sess)
	assert.False(t, hasStaged)
}

// The aggregate is a pure OR over disjoint units, so it must not vary with
// the worker count.
func TestScanDeterministicAcrossWorkerCounts(t *testing.T) {
	units := trackedUnits(16)
	units = append(units, git.ScanUnit{Kind: git.KindUntracked, Root: "vendor"})

	for _, workers := range []int{1, 2, 8} {
		cfg := entity.DefaultConfig()
		cfg.NumThreads = workers
		c, gw := newTestController(t, cfg)
		sess := &entity.Session{Workdir: "/repo"}

		gw.EXPECT().HasStagedChanges(sess).Return(false, nil)
		gw.EXPECT().IndexEntryCount(sess).Return(len(units))
		gw.EXPECT().ScanUnits(sess, workers).Return(units)
		// Only index range 9..10 is dirty; nothing is untracked.
		gw.EXPECT().Scan(sess, gomock.Any()).DoAndReturn(
			func(_ *entity.Session, u git.ScanUnit) (bool, bool) {
				return u.Kind == git.KindTracked && u.Lo == 9, false
			}).AnyTimes()

		_, unstaged, untracked := c.Scan(context.Background(), sess)
		assert.Equal(t, entity.Yes, unstaged, "workers=%d", workers)
		assert.Equal(t, entity.No, untracked, "workers=%d", workers)
	}
}

// Concurrency never exceeds the configured worker count.
func TestScanBackpressure(t *testing.T) {
	const workers = 3
	cfg := entity.DefaultConfig()
	cfg.NumThreads = workers
	c, gw := newTestController(t, cfg)
	sess := &entity.Session{Workdir: "/repo"}

	var inFlight, peak atomic.Int32

	gw.EXPECT().HasStagedChanges(sess).Return(false, nil)
	gw.EXPECT().IndexEntryCount(sess).Return(32)
	gw.EXPECT().ScanUnits(sess, workers).Return(trackedUnits(32))
	gw.EXPECT().Scan(sess, gomock.Any()).DoAndReturn(
		func(_ *entity.Session, _ git.ScanUnit) (bool, bool) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			inFlight.Add(-1)
			return false, false
		}).Times(32)

	c.Scan(context.Background(), sess)
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

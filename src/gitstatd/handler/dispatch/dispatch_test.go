package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/promptkit/gitstatd/src/gitstatd/controller/status/statusmock"
	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// countingSupervisor verifies Begin/End bracket every resolved request.
type countingSupervisor struct {
	begins, ends atomic.Int32
}

func (c *countingSupervisor) Begin() { c.begins.Add(1) }
func (c *countingSupervisor) End()   { c.ends.Add(1) }

func newTestLoop(t *testing.T) (Loop, *statusmock.MockController, *countingSupervisor) {
	ctrl := gomock.NewController(t)
	resolver := statusmock.NewMockController(ctrl)
	sup := &countingSupervisor{}
	l := New(Params{
		Resolver:   resolver,
		Supervisor: sup,
		Logger:     zap.NewNop().Sugar(),
	})
	return l, resolver, sup
}

func frame(fields ...string) string {
	return strings.Join(fields, "\x1f") + "\x1e"
}

func TestRunAnswersInRequestOrder(t *testing.T) {
	l, resolver, sup := newTestLoop(t)

	const n = 20
	var in bytes.Buffer
	for i := 0; i < n; i++ {
		in.WriteString(frame(fmt.Sprintf("id%02d", i), "/nowhere"))
	}

	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req entity.Request) *entity.Status {
			return entity.NotARepo(req.ID)
		}).Times(n)

	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), &in, &out))

	var want strings.Builder
	for i := 0; i < n; i++ {
		want.WriteString(frame(fmt.Sprintf("id%02d", i), "0"))
	}
	assert.Equal(t, want.String(), out.String())
	assert.Equal(t, int32(n), sup.begins.Load())
	assert.Equal(t, int32(n), sup.ends.Load())
}

func TestRunCleanEndOfStream(t *testing.T) {
	l, _, sup := newTestLoop(t)

	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), strings.NewReader(""), &out))
	assert.Zero(t, out.Len())
	assert.Zero(t, sup.begins.Load())
}

func TestRunTruncatedFrameFails(t *testing.T) {
	l, resolver, _ := newTestLoop(t)

	resolver.EXPECT().Resolve(gomock.Any(), entity.Request{ID: "a", Path: "/p"}).
		Return(entity.NotARepo("a"))

	in := strings.NewReader(frame("a", "/p") + "b\x1f/partial")
	var out bytes.Buffer

	err := l.Run(context.Background(), in, &out)
	assert.ErrorIs(t, err, wire.ErrTruncatedFrame)
	assert.Equal(t, frame("a", "0"), out.String(), "the complete frame was still answered")
}

func TestRunMalformedFrameFails(t *testing.T) {
	l, _, _ := newTestLoop(t)

	in := strings.NewReader("no-separator-here\x1e")
	var out bytes.Buffer

	err := l.Run(context.Background(), in, &out)
	assert.ErrorIs(t, err, wire.ErrMalformedFrame)
	assert.Zero(t, out.Len())
}

func TestRunFullStatusFrame(t *testing.T) {
	l, resolver, _ := newTestLoop(t)

	resolver.EXPECT().Resolve(gomock.Any(), entity.Request{ID: "q", Path: "/home/u/proj"}).
		Return(&entity.Status{
			ID:          "q",
			IsRepo:      true,
			Workdir:     "/home/u/proj",
			HeadCommit:  strings.Repeat("a", 40),
			LocalBranch: "main",
			Unstaged:    entity.No,
			Untracked:   entity.Unknown,
			Ahead:       2,
		})

	in := strings.NewReader(frame("q", "/home/u/proj"))
	var out bytes.Buffer
	require.NoError(t, l.Run(context.Background(), in, &out))

	body := strings.TrimSuffix(out.String(), "\x1e")
	fields := strings.Split(body, "\x1f")
	assert.Len(t, fields, 15)
	assert.Equal(t, "q", fields[0])
	assert.Equal(t, "1", fields[1])
	assert.Equal(t, "-1", fields[10])
	assert.Equal(t, "/home/u/proj", fields[14])
}

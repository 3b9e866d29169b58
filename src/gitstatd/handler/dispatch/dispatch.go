// Package dispatch implements the daemon's request loop: read one frame,
// resolve it, write one frame, repeat until the stream ends. Exactly one
// request is ever in flight, which is what guarantees response ordering.
package dispatch

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/promptkit/gitstatd/src/gitstatd/controller/status"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/liveness"
	"github.com/promptkit/gitstatd/src/gitstatd/internal/wire"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the loop into the application and starts it on stdin/stdout.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(register),
)

// Loop runs the request/response cycle over one byte stream.
type Loop interface {
	// Run serves requests until the stream ends. It returns nil on a clean
	// end-of-stream and the fatal framing or write error otherwise.
	Run(ctx context.Context, r io.Reader, w io.Writer) error
}

// Params define values to be used by the dispatch loop.
type Params struct {
	fx.In

	Resolver   status.Controller
	Supervisor liveness.Supervisor
	Logger     *zap.SugaredLogger
}

type loop struct {
	resolver   status.Controller
	supervisor liveness.Supervisor
	logger     *zap.SugaredLogger
}

// New creates the dispatch loop.
func New(p Params) Loop {
	return &loop{
		resolver:   p.Resolver,
		supervisor: p.Supervisor,
		logger:     p.Logger,
	}
}

func (l *loop) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	dec := wire.NewDecoder(r)
	enc := wire.NewEncoder(w)

	for {
		req, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			l.logger.Errorw("request stream failed", "error", err)
			return err
		}

		// The supervisor must not fire between decoding a request and
		// flushing its response.
		l.supervisor.Begin()
		st := l.resolver.Resolve(ctx, req)
		err = enc.Encode(st)
		l.supervisor.End()
		if err != nil {
			l.logger.Errorw("response write failed", "error", err)
			return err
		}
	}
}

// register starts the loop on the process streams and maps its outcome to
// the exit status: zero for a clean end-of-stream, non-zero otherwise.
func register(lc fx.Lifecycle, shutdowner fx.Shutdowner, l Loop) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := l.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
					shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				shutdowner.Shutdown(fx.ExitCode(0))
			}()
			return nil
		},
	})
}

// Command gitstatd answers git-status requests for an interactive shell
// prompt over a stdin/stdout byte stream. See the wire format in
// internal/wire.
package main

import (
	"os"

	"github.com/promptkit/gitstatd/src/gitstatd/app"
	"github.com/promptkit/gitstatd/src/gitstatd/entity"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newRootCommand() *cobra.Command {
	cfg := entity.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "gitstatd",
		Short:         "Print machine-readable git status for directories read from stdin",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fx.New(
				app.Module,
				fx.Supply(cfg),
			).Run()
		},
	}

	cmd.Flags().IntVarP(&cfg.LockFD, "lock-fd", "l", cfg.LockFD,
		"exit when this descriptor is no longer locked after one idle second; negative disables")
	cmd.Flags().IntVarP(&cfg.SigwinchPID, "sigwinch-pid", "p", cfg.SigwinchPID,
		"send SIGWINCH to this pid after one idle second and exit if delivery fails; negative disables")
	cmd.Flags().IntVarP(&cfg.NumThreads, "num-threads", "t", cfg.NumThreads,
		"workers used to scan a working tree; non-positive means one per CPU")
	cmd.Flags().Int64VarP(&cfg.DirtyMaxIndexSize, "dirty-max-index-size", "m", cfg.DirtyMaxIndexSize,
		"report unknown unstaged/untracked when the index has more entries than this; negative means unbounded")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

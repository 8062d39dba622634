package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"concepdag/internal/adapters/watcher"
)

var debounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild whenever a node record changes",
	Long: `Run a full build, then watch the node records and rebuild after every
burst of changes. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := GetProject()
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, err := p.Build(ctx, true, true); err != nil {
			p.Logger.Error("build failed", "err", err)
		}

		w := watcher.New(p.Layout.RecordsDir(), debounce, p.Logger)
		return w.Watch(ctx, func(paths []string) {
			p.Logger.Info("records changed", "files", len(paths))
			if _, err := p.Build(context.WithoutCancel(ctx), true, true); err != nil {
				p.Logger.Error("build failed", "err", err)
			}
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period before rebuilding")
	rootCmd.AddCommand(watchCmd)
}

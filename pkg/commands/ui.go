package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/runner/ui"
	"tableflip.dev/tiles/pkg/shell"
)

func addUI(topLevel *cobra.Command) {
	demo := false
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based dashboard",
		Example: `
tiles ui
tiles ui --demo
tiles ui --log-file ~/.tiles.log -v
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			// The dashboard owns the terminal, logs only go to --log-file.
			if demo {
				log, closeLog, err := lo.Logger(io.Discard)
				if err != nil {
					return err
				}
				defer func() { _ = closeLog() }()
				dir, err := os.MkdirTemp("", "tiles-demo-")
				if err != nil {
					return err
				}
				defer func() { _ = os.RemoveAll(dir) }()
				d := ui.Demo{Dir: dir, Log: log}
				return d.Do(ctx)
			}

			s, err := openSession(ctx, io.Discard)
			if err != nil {
				return err
			}
			defer s.Close()
			i := ui.UI{
				Service: s.svc,
				Host:    shell.Detect(s.cfg.ShellDir(), s.log),
				Log:     s.log,
			}
			return i.Do(ctx)
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "Open a throwaway dashboard with one tile of every kind.")

	topLevel.AddCommand(cmd)
}

package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/app"
	"tableflip.dev/tiles/pkg/commands/options"
	"tableflip.dev/tiles/pkg/prompt"
	"tableflip.dev/tiles/pkg/runner/backup"
)

func addExport(topLevel *cobra.Command) {
	file := ""
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every space to a JSON backup file.",
		Example: `
tiles export
tiles export -o ~/tiles.json
tiles export -o - > tiles.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				e := backup.Export{
					Service: s.svc,
					File:    file,
					Out:     cmd.OutOrStdout(),
				}
				return e.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "output", "o", "", "Backup file, - for stdout. Defaults to ./"+app.ExportFileName+".")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace every space with the contents of a backup file.",
		Long: `Replace every space with the contents of a backup file, - reads stdin.
The file must hold a JSON array of spaces. Nothing changes when it does not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				i := backup.Import{
					Service: s.svc,
					File:    args[0],
					In:      cmd.InOrStdin(),
					Out:     cmd.OutOrStdout(),
				}
				return i.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and start over with the default space.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := backup.Reset{
					Service: s.svc,
					Out:     cmd.OutOrStdout(),
				}
				if !co.Yes {
					r.Confirm = func() (bool, error) {
						if !prompt.Interactive() {
							return false, prompt.ErrNotInteractive
						}
						return prompt.Confirm("Erase all spaces, tiles and settings", os.Stdin, os.Stdout)
					}
				}
				return r.Do(ctx)
			})
		},
	}
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}

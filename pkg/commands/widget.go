package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/runner/tiles"
)

func addWidget(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "widget <space> <tile> <action> [args...]",
		Short: "Run a widget action on a tile.",
		Long: `Run a widget action on a tile, the same edits the dashboard makes.
Use "tiles tiles show <tile>" to list the actions a tile accepts.`,
		Example: `
tiles widget home h1 add Bread
tiles widget Home h1 remove <item-id>
tiles widget home t2 duration 25m
tiles widget home t2 start
`,
		Args:              cobra.MinimumNArgs(3),
		ValidArgsFunction: completeSpaces,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				a := tiles.Act{
					Service: s.svc,
					Space:   args[0],
					Tile:    args[1],
					Action:  args[2],
					Args:    args[3:],
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return a.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

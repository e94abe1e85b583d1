package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/commands/options"
	"tableflip.dev/tiles/pkg/runner/tiles"
)

func addTiles(topLevel *cobra.Command) {
	so := &options.SpaceOptions{}
	ido := &options.IDOptions{}

	list := func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			l := tiles.List{
				Service: s.svc,
				Space:   so.Space,
				ShowID:  ido.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return l.Do(ctx)
		})
	}

	cmd := &cobra.Command{
		Use:     "tiles",
		Aliases: []string{"tile"},
		Short:   "List and manage the tiles of a space.",
		Example: `
tiles tiles
tiles tiles add todo Groceries --size wide
tiles tiles show h1 -s home
tiles tiles resize h1 big
tiles tiles remove h1
`,
		Args: cobra.NoArgs,
		RunE: list,
	}
	options.AddSpaceArgs(cmd, so)
	options.AddShowIDArgs(cmd, ido)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tiles of a space in grid order.",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	options.AddSpaceArgs(listCmd, so)
	options.AddShowIDArgs(listCmd, ido)
	cmd.AddCommand(listCmd)

	addTilesShow(cmd)
	addTilesAdd(cmd)
	addTilesRemove(cmd)
	addTilesResize(cmd)

	topLevel.AddCommand(cmd)
}

func addTilesShow(parent *cobra.Command) {
	so := &options.SpaceOptions{}
	cmd := &cobra.Command{
		Use:   "show <tile>",
		Short: "Show one tile and the actions it accepts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				sh := tiles.Show{
					Service: s.svc,
					Space:   so.Space,
					Tile:    args[0],
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return sh.Do(ctx)
			})
		},
	}
	options.AddSpaceArgs(cmd, so)
	parent.AddCommand(cmd)
}

func addTilesAdd(parent *cobra.Command) {
	so := &options.SpaceOptions{}
	size := ""
	cmd := &cobra.Command{
		Use:               "add <kind> [title]",
		Short:             "Add a tile with the default content for its kind.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				a := tiles.Add{
					Service: s.svc,
					Space:   so.Space,
					Kind:    args[0],
					Title:   strings.Join(args[1:], " "),
					Size:    size,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return a.Do(ctx)
			})
		},
	}
	options.AddSpaceArgs(cmd, so)
	cmd.Flags().StringVar(&size, "size", "", "Tile size, one of "+strings.Join(sizeNames(), ", ")+". Defaults by kind.")
	parent.AddCommand(cmd)
}

func addTilesRemove(parent *cobra.Command) {
	so := &options.SpaceOptions{}
	cmd := &cobra.Command{
		Use:     "remove <tile>",
		Aliases: []string{"rm"},
		Short:   "Delete a tile.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := tiles.Remove{
					Service: s.svc,
					Space:   so.Space,
					Tile:    args[0],
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}
	options.AddSpaceArgs(cmd, so)
	parent.AddCommand(cmd)
}

func addTilesResize(parent *cobra.Command) {
	so := &options.SpaceOptions{}
	title := ""
	cmd := &cobra.Command{
		Use:   "resize <tile> [size]",
		Short: "Set a tile's size, or step to the next size when none is given.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size := ""
			if len(args) > 1 {
				size = args[1]
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := tiles.Resize{
					Service: s.svc,
					Space:   so.Space,
					Tile:    args[0],
					Size:    size,
					Title:   title,
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}
	options.AddSpaceArgs(cmd, so)
	cmd.Flags().StringVar(&title, "title", "", "Also rename the tile.")
	parent.AddCommand(cmd)
}

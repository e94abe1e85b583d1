package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/commands/options"
	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/runner/spaces"
)

func addSpaces(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	list := func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			l := spaces.List{
				Service: s.svc,
				ShowID:  ido.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return l.Do(ctx)
		})
	}

	cmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"space"},
		Short:   "List and manage spaces.",
		Example: `
tiles spaces
tiles spaces add Work --theme violet --icon code
tiles spaces rename work "Day job"
tiles spaces remove work
`,
		Args: cobra.NoArgs,
		RunE: list,
	}
	options.AddShowIDArgs(cmd, ido)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List spaces in order.",
		Args:  cobra.NoArgs,
		RunE:  list,
	})

	addSpacesAdd(cmd)
	addSpacesRemove(cmd)
	addSpacesRename(cmd)

	topLevel.AddCommand(cmd)
}

func addSpacesAdd(parent *cobra.Command) {
	var theme, icon string
	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Create a new, empty space.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				a := spaces.Add{
					Service: s.svc,
					Label:   strings.Join(args, " "),
					Theme:   theme,
					Icon:    icon,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return a.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&theme, "theme", dashboard.DefaultTheme,
		"Accent theme, one of "+strings.Join(dashboard.Themes, ", ")+".")
	cmd.Flags().StringVar(&icon, "icon", dashboard.DefaultIcon,
		"Icon, one of "+strings.Join(dashboard.Icons, ", ")+".")
	parent.AddCommand(cmd)
}

func addSpacesRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "remove <space>",
		Aliases:           []string{"rm"},
		Short:             "Delete a space and its tiles. The last space can not be removed.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSpaces,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				r := spaces.Remove{
					Service: s.svc,
					ID:      args[0],
					Out:     cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}
	parent.AddCommand(cmd)
}

func addSpacesRename(parent *cobra.Command) {
	var theme, icon string
	cmd := &cobra.Command{
		Use:               "rename <space> [label]",
		Aliases:           []string{"edit"},
		Short:             "Change the label, theme or icon of a space.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeSpaces,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				u := spaces.Update{
					Service: s.svc,
					ID:      args[0],
					Label:   strings.Join(args[1:], " "),
					Theme:   theme,
					Icon:    icon,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return u.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "New accent theme.")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon.")
	parent.AddCommand(cmd)
}

package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	tilesettings "tableflip.dev/tiles/pkg/runner/settings"
	"tableflip.dev/tiles/pkg/settings"
)

func addSettings(topLevel *cobra.Command) {
	show := func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			sh := tilesettings.Show{
				Service: s.svc,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return sh.Do(ctx)
		})
	}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change appearance settings.",
		Example: `
tiles settings
tiles settings set gridGap 16
tiles settings set userName Ada
`,
		Args: cobra.NoArgs,
		RunE: show,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show every setting.",
		Args:  cobra.NoArgs,
		RunE:  show,
	})

	set := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting. Keys: " + strings.Join(append(settings.Keys(), "darkMode"), ", ") + ".",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: append(settings.Keys(), "darkMode"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				st := tilesettings.Set{
					Service: s.svc,
					Key:     args[0],
					Value:   strings.Join(args[1:], " "),
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return st.Do(ctx)
			})
		},
	}
	cmd.AddCommand(set)

	topLevel.AddCommand(cmd)
}

func addDarkMode(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "dark-mode [on|off]",
		Short:     "Toggle dark mode, or turn it on or off.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) > 0 {
				value = args[0]
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				d := tilesettings.DarkMode{
					Service: s.svc,
					Value:   value,
					Out:     cmd.OutOrStdout(),
				}
				return d.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

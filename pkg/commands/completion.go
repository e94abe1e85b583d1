package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tiles/pkg/dashboard"
	"tableflip.dev/tiles/pkg/widget"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(tiles completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(tiles completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// spaceCompletions offers stored space ids, quietly giving up when the store
// can not be opened.
func spaceCompletions(toComplete string) []string {
	s, err := openSession(context.Background(), io.Discard)
	if err != nil {
		return nil
	}
	defer s.Close()
	var ids []string
	for _, sp := range s.svc.Spaces() {
		if strings.HasPrefix(sp.ID, toComplete) {
			ids = append(ids, sp.ID)
		}
	}
	return ids
}

func completeSpaces(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return spaceCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeKinds(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var kinds []string
	for _, k := range widget.AllKinds() {
		if strings.HasPrefix(string(k), toComplete) {
			kinds = append(kinds, string(k))
		}
	}
	return kinds, cobra.ShellCompDirectiveNoFileComp
}

func sizeNames() []string {
	names := make([]string, 0, len(dashboard.Sizes))
	for _, s := range dashboard.Sizes {
		names = append(names, string(s))
	}
	return names
}

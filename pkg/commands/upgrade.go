package commands

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade tiles to the latest release with go install.",
		Example: `
tiles upgrade
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out bytes.Buffer
			install := exec.CommandContext(cmd.Context(), "go", "install", "tableflip.dev/tiles/cmd/tiles@latest")
			install.Stdout = &out
			install.Stderr = &out
			if err := install.Run(); err != nil {
				return oo.HandleError(fmt.Errorf("go install: %w\n%s", err, out.String()))
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.String())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

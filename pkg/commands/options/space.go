package options

import (
	"github.com/spf13/cobra"
)

// SpaceOptions selects the space a tile command works on.
type SpaceOptions struct {
	Space string
}

// AddSpaceArgs registers --space. An empty value means the first space.
func AddSpaceArgs(cmd *cobra.Command, o *SpaceOptions) {
	cmd.Flags().StringVarP(&o.Space, "space", "s", "",
		"Space id or label. Defaults to the first space.")
}

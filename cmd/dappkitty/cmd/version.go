package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trickstertwo/dappkitty"
)

func (c *command) initVersionCmd() {
	c.root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(dappkitty.Version)
		},
	})
}

package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/lvtools"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of uimirror",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "uimirror version %s\n", strings.TrimSpace(lvtools.Version))
		},
	}
}

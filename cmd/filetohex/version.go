package main

import (
	"strings"

	"github.com/aretw0/lvtools"
	"github.com/spf13/cobra"
)

// setVersion exposes the release through --version. A subcommand would
// shadow an input file of the same name.
func setVersion(cmd *cobra.Command) {
	cmd.Version = strings.TrimSpace(lvtools.Version)
	cmd.SetVersionTemplate("filetohex version {{.Version}}\n")
}

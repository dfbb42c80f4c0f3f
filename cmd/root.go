package cmd

import (
	"github.com/respic/respic/cmd/all"
	"github.com/respic/respic/cmd/build"
	"github.com/respic/respic/cmd/html"
	"github.com/respic/respic/cmd/initialize"
	"github.com/respic/respic/cmd/publish"

	"github.com/spf13/cobra"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "respic",
	Short:         "Batch image resizer with responsive HTML preview generation",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.AddCommand(initialize.Cmd)
	RootCmd.AddCommand(build.Cmd)
	RootCmd.AddCommand(html.Cmd)
	RootCmd.AddCommand(all.Cmd)
	RootCmd.AddCommand(publish.Cmd)
}

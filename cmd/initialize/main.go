package initialize

import (
	"github.com/respic/respic/config"
	"github.com/respic/respic/logger"
	"github.com/spf13/cobra"
)

var configPath = config.DefaultFileName

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return err
		}
		logger.Info("config written", "path", configPath)
		return nil
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", configPath, "Config file to create")
}

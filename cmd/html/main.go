package html

import (
	"github.com/respic/respic/config"
	"github.com/respic/respic/htmlgen"
	"github.com/respic/respic/logger"
	"github.com/respic/respic/manifest"
	"github.com/spf13/cobra"
)

var (
	configPath = config.DefaultFileName
	verbose    = false
	jsonLog    = false
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "html",
	Short: "Generate the responsive HTML preview from the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(verbose, jsonLog)
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		m, err := manifest.Load(cfg.OutputDir)
		if err != nil {
			return err
		}
		htmlPath := cfg.HTMLPath()
		if err := htmlgen.Generate(m, cfg, htmlPath); err != nil {
			return err
		}
		logger.Info("html written", "path", htmlPath, "images", len(m.Entries))
		return nil
	},
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", configPath, "Config file")
	flags.BoolVarP(&verbose, "verbose", "v", verbose, "Debug logging")
	flags.BoolVar(&jsonLog, "json", jsonLog, "JSON log output")
}

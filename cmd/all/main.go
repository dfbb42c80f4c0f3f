package all

import (
	"github.com/respic/respic/codec"
	"github.com/respic/respic/config"
	"github.com/respic/respic/htmlgen"
	"github.com/respic/respic/logger"
	"github.com/respic/respic/pipeline"
	"github.com/spf13/cobra"
)

var (
	configPath = config.DefaultFileName
	verbose    = false
	jsonLog    = false
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "all",
	Short: "Run build and html in sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(verbose, jsonLog)
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		runner := pipeline.NewRunner(cfg, codec.New())
		m, stats, err := runner.Build(cmd.Context())
		if err != nil {
			return err
		}
		if err := m.Save(cfg.OutputDir); err != nil {
			return err
		}
		logger.Info("build complete",
			"images", stats.Images,
			"written", stats.Written,
			"skipped", stats.Skipped,
			"failed", stats.Failed)

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

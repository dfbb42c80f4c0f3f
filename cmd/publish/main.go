package publish

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/respic/respic/config"
	"github.com/respic/respic/logger"
	"github.com/respic/respic/util"
	"github.com/spf13/cobra"
)

var (
	configPath = config.DefaultFileName
	verbose    = false
	jsonLog    = false
)

// Cmd is the declaration of the command line
var Cmd = &cobra.Command{
	Use:   "publish <s3+http(s)://host/bucket[/prefix]>",
	Short: "Upload the output directory to S3, skipping objects already there",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(verbose, jsonLog)
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		u := util.GetS3URL(args[0])
		if u == nil {
			return fmt.Errorf("not an s3+http(s) url: %s", args[0])
		}
		client, err := util.GetS3Client(u)
		if err != nil {
			return err
		}
		bucket, prefix := util.SplitS3Path(u)
		if bucket == "" {
			return fmt.Errorf("no bucket in url: %s", args[0])
		}
		if !util.IsDir(cfg.OutputDir) {
			return fmt.Errorf("output directory not found: %s (run build first?)", cfg.OutputDir)
		}

		ctx := cmd.Context()
		uploaded, skipped := 0, 0
		err = filepath.Walk(cfg.OutputDir, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(cfg.OutputDir, p)
			if err != nil {
				return err
			}
			key := filepath.ToSlash(filepath.Join(prefix, rel))
			stat, statErr := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
			if statErr == nil && stat.Size == info.Size() {
				logger.Debug("object exists, skipping", "key", key)
				skipped++
				return nil
			}
			logger.Info("uploading", "key", key, "size", info.Size())
			_, err = client.FPutObject(ctx, bucket, key, p, minio.PutObjectOptions{
				ContentType: contentType(p),
			})
			if err != nil {
				return fmt.Errorf("upload %s: %w", key, err)
			}
			uploaded++
			return nil
		})
		if err != nil {
			return err
		}
		logger.Info("publish complete", "bucket", bucket, "uploaded", uploaded, "skipped", skipped)
		return nil
	},
}

func contentType(p string) string {
	switch filepath.Ext(p) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".avif":
		return "image/avif"
	case ".html":
		return "text/html"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", configPath, "Config file")
	flags.BoolVarP(&verbose, "verbose", "v", verbose, "Debug logging")
	flags.BoolVar(&jsonLog, "json", jsonLog, "JSON log output")
}

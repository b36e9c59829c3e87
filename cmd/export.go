package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Pre-render every city page to JSON files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		outDir := a.cfg.Export.OutDir
		manifest, err := a.container.Prerenderer.Run(cmd.Context(), outDir)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		a.logger.Info("Export finished",
			slog.String("out_dir", outDir),
			slog.String("build_id", manifest.BuildID.String()),
			slog.Int("pages", len(manifest.Cities)))
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "out", "directory the pages and manifest are written to")
	exportCmd.Flags().Int("concurrency", 4, "number of pages rendered in parallel")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/capstone-matcher/internal/services"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import accepted projects from a YAML manifest",
	Long: `Ingest reads a manifest of accepted projects and stores each one in the
archive. Entries without a description take it from their report PDF.
Projects whose title already exists are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath, _ := cmd.Flags().GetString("manifest")
		workers, _ := cmd.Flags().GetInt("workers")

		jobs, err := services.LoadManifest(manifestPath)
		if err != nil {
			return err
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.closer()

		storage := services.NewStorageService(rt.cfg.Storage.UploadPath)
		if err := storage.EnsureUploadDir(); err != nil {
			return err
		}

		archive := services.NewArchiveService(rt.repo.Project, services.NewPDFParserService(), rt.log)
		importer := services.NewBatchImporter(archive, storage, workers, rt.log)

		var created, skipped, failed int
		for _, out := range importer.Run(cmd.Context(), jobs) {
			switch {
			case out.Err != nil:
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  #%d %s: %v\n", out.Index, out.Title, out.Err)
			case out.Skipped:
				skipped++
				fmt.Fprintf(cmd.OutOrStdout(), "SKIP  #%d %s (already archived)\n", out.Index, out.Title)
			default:
				created++
				fmt.Fprintf(cmd.OutOrStdout(), "OK    #%d %s (id %d)\n", out.Index, out.Title, out.ProjectID)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d created, %d skipped, %d failed\n", created, skipped, failed)
		if failed > 0 {
			return fmt.Errorf("%d projects failed to import", failed)
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("manifest", "archive.yaml", "path to the archive manifest")
	ingestCmd.Flags().Int("workers", 4, "number of concurrent import workers")

	rootCmd.AddCommand(ingestCmd)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javanhut/multimerge/internal/fsproject"
	"github.com/javanhut/multimerge/internal/store"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var quiet bool

var exportCmd = &cobra.Command{
	Use:   "export <output-dir> <project-dir>...",
	Short: "Resolve collisions and write the merged tree to output-dir",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, roots := args[0], args[1:]

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		planDir := filepath.Join(outputDir, ".multimerge")
		if err := os.MkdirAll(planDir, 0755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		shared, err := store.GetSharedDB(planDir)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer shared.Close()
		db := shared.DB

		ws, err := buildWorkspace(roots, outputDir, db)
		if err != nil {
			return err
		}

		t := ws.Resolve()
		entries := t.Entries()

		mapping, err := t.Mapping()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		blobs, err := loadBlobCAS(outputDir)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		exporter := t.NewExporterWithCAS(outputDir, fsproject.Load, blobs)

		var bar *mpb.Bar
		var progress *mpb.Progress
		if !quiet && len(entries) > 0 {
			progress = mpb.New(mpb.WithOutput(os.Stderr), mpb.WithAutoRefresh())
			bar = progress.New(int64(len(entries)),
				mpb.BarStyle().Filler("#").Padding(" "),
				mpb.PrependDecorators(decor.Name("exporting ")),
				mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
			)
		}

		for _, entry := range entries {
			if err := exporter.ExportEntry(mapping, entry); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if bar != nil {
				bar.Increment()
			}
			if err := db.RecordStrategy(entry.Index.RelPath, entry.Strategy.String()); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}

		if progress != nil {
			progress.Wait()
		}

		fmt.Printf("exported %d entries to %s\n", len(entries), outputDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress bar")
}

// Package consolidate implements the import-new-data command.
package consolidate

import (
	"github.com/spf13/cobra"

	"github.com/iceerpgeorgia/ice-erp-sub000/cmd/root"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/pipeline"
)

// Cmd runs one consolidation batch over the unprocessed records of the raw
// partition.
var Cmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Classify newly imported statement entries and write consolidated records",
	Long: `Runs one consolidation batch: every unprocessed raw entry is classified,
its amount converted into the nominal currency, and a consolidated record is
written. Already-processed entries and entries with an existing consolidated
row are skipped, so the command is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunPipeline(pipeline.Options{})
	},
}

// Package reprocess implements the full-batch reprocessing command.
package reprocess

import (
	"github.com/spf13/cobra"

	"github.com/iceerpgeorgia/ice-erp-sub000/cmd/root"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/pipeline"
)

var purge bool

// Cmd resets the processing state of the whole partition and classifies it
// again, absorbing corrected reference data.
var Cmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Reset flags and reclassify the whole raw partition",
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.RunPipeline(pipeline.Options{
			Reprocess:         true,
			PurgeConsolidated: purge,
		})
	},
}

func init() {
	Cmd.Flags().BoolVar(&purge, "purge", false, "Delete all prior consolidated rows before reprocessing")
}

// Package root contains the root command and the shared wiring used by the
// subcommands.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/config"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/currency"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/logging"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/pipeline"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/refdata"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/report"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/store"
)

var (
	// Cfg is the loaded application configuration, available to subcommands.
	Cfg *config.Config

	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ice-erp-sub000",
		Short: "Consolidates raw bank-statement transactions against bookkeeping reference data.",
		Long: `ice-erp-sub000 classifies imported bank-statement entries: it resolves the
counterparty by INN, matches payment codes found in the narrative, applies
parsing rules and converts amounts into the nominal currency, producing
consolidated records with a per-record audit explanation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
	}
)

// Init initializes the root command flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&rawFileFlag, "raw", "", "Raw transaction partition file (overrides config)")
	Cmd.PersistentFlags().StringVar(&consolidatedFileFlag, "consolidated", "", "Consolidated output file (overrides config)")
	Cmd.PersistentFlags().StringVar(&referenceDirFlag, "reference", "", "Reference data directory (overrides config)")
}

var (
	rawFileFlag          string
	consolidatedFileFlag string
	referenceDirFlag     string
)

// RunPipeline loads the reference snapshot, runs one batch with the given
// options and emits the run summary and missing-counteragent report.
func RunPipeline(opts pipeline.Options) error {
	rawFile := Cfg.Data.RawFile
	if rawFileFlag != "" {
		rawFile = rawFileFlag
	}
	consolidatedFile := Cfg.Data.ConsolidatedFile
	if consolidatedFileFlag != "" {
		consolidatedFile = consolidatedFileFlag
	}
	referenceDir := Cfg.Data.ReferenceDir
	if referenceDirFlag != "" {
		referenceDir = referenceDirFlag
	}

	snapshot, err := refdata.Load(store.NewReferenceStore(referenceDir), Log)
	if err != nil {
		return err
	}

	normalizer := currency.NewNormalizer(snapshot.Rates, Cfg.Currency.LocalCode, Log)
	controller := pipeline.NewController(
		store.NewRawStore(rawFile),
		store.NewConsolidatedStore(consolidatedFile),
		snapshot,
		normalizer,
		Log,
	)

	if opts.TopMissing == 0 {
		opts.TopMissing = Cfg.Report.TopMissing
	}

	summary, err := controller.Run(opts)
	if err != nil {
		return err
	}

	logSummary(summary)
	return writeMissingReport(summary)
}

func logSummary(summary *pipeline.Summary) {
	Log.Info("Case summary",
		logging.F("case1_inn_matched", summary.CaseCounts.Case1),
		logging.F("case2_inn_blank", summary.CaseCounts.Case2),
		logging.F("case3_inn_not_found", summary.CaseCounts.Case3),
		logging.F("case4_payment_matched", summary.CaseCounts.Case4),
		logging.F("case5_payment_conflict", summary.CaseCounts.Case5),
		logging.F("case6_rule_matched", summary.CaseCounts.Case6),
		logging.F("case7_rule_conflict", summary.CaseCounts.Case7),
		logging.F("case8_rule_override", summary.CaseCounts.Case8))

	for _, entry := range summary.Missing {
		Log.Warn("Unmatched counteragent INN",
			logging.F(logging.FieldInn, entry.Inn.String()),
			logging.F(logging.FieldCount, entry.Count),
			logging.F("sample_keys", entry.SampleKeys))
	}
}

func writeMissingReport(summary *pipeline.Summary) error {
	if Cfg.Report.File == "" || len(summary.Missing) == 0 {
		return nil
	}

	generator := report.NewGenerator()
	data, err := generator.Generate(report.NewMissingCounteragentReport(summary.Missing), Cfg.Report.Format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(Cfg.Report.File, data, 0644); err != nil {
		return fmt.Errorf("failed to write missing-counteragent report: %w", err)
	}

	Log.Info("Missing-counteragent report written",
		logging.F(logging.FieldFile, Cfg.Report.File),
		logging.F(logging.FieldCount, len(summary.Missing)))
	return nil
}

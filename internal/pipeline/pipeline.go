// Package pipeline orchestrates one consolidation batch: classify every
// unprocessed raw entry, normalize its amount into the nominal currency,
// write the consolidated rows and persist the case flags. Runs are
// idempotent: processed records and records with an existing consolidated
// row are skipped, and a record is only flagged processed after its
// consolidated row has been committed.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/classifier"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/currency"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/dateutils"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/logging"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/refdata"
)

// RawFeed is the raw transaction partition the controller consumes and
// writes flags back to.
type RawFeed interface {
	Load() ([]models.RawTransaction, error)
	Save([]models.RawTransaction) error
}

// ConsolidatedSink is the consolidated output store.
type ConsolidatedSink interface {
	Load() ([]models.ConsolidatedTransaction, error)
	Write([]models.ConsolidatedTransaction) error
	Purge() error
}

// Options control one batch run.
type Options struct {
	// Reprocess resets the flags of every record and classifies the whole
	// partition again, absorbing corrected reference data.
	Reprocess bool
	// PurgeConsolidated also deletes the prior consolidated rows before a
	// reprocess run.
	PurgeConsolidated bool
	// TopMissing caps the ranked unmatched-INN list in the summary.
	TopMissing int
}

// Summary is the user-visible outcome of a batch run.
type Summary struct {
	Total        int
	Consolidated int
	Skipped      int // already processed or duplicate natural key
	Unparsable   int // records left unprocessed for lack of a date
	CaseCounts   models.CaseCounts
	Missing      []classifier.MissingEntry
}

// Controller runs consolidation batches.
type Controller struct {
	raw          RawFeed
	consolidated ConsolidatedSink
	snapshot     *refdata.Snapshot
	normalizer   *currency.Normalizer
	logger       logging.Logger
}

// NewController wires a Controller for one run.
func NewController(raw RawFeed, consolidated ConsolidatedSink, snapshot *refdata.Snapshot, normalizer *currency.Normalizer, logger logging.Logger) *Controller {
	return &Controller{
		raw:          raw,
		consolidated: consolidated,
		snapshot:     snapshot,
		normalizer:   normalizer,
		logger:       logger,
	}
}

// Run executes one batch. Per-record anomalies (blank INN, unmatched
// payment code, unparsable date, missing rate) stay local to the record;
// only infrastructure failures propagate as errors.
func (c *Controller) Run(opts Options) (*Summary, error) {
	transactions, err := c.raw.Load()
	if err != nil {
		return nil, err
	}

	if opts.Reprocess {
		for i := range transactions {
			transactions[i].ResetProcessing()
		}
		if opts.PurgeConsolidated {
			if err := c.consolidated.Purge(); err != nil {
				return nil, err
			}
		}
	}

	existing, err := c.consolidated.Load()
	if err != nil {
		return nil, err
	}
	if opts.Reprocess && !opts.PurgeConsolidated {
		// Rows belonging to this partition are rebuilt from the corrected
		// reference data; rows of other partitions are kept as-is.
		existing = dropPartitionRows(existing, transactions)
	}
	seen := make(map[models.RecordKey]bool, len(existing))
	for i := range existing {
		seen[existing[i].Key()] = true
	}

	cls := classifier.New(c.snapshot, c.logger)
	summary := &Summary{Total: len(transactions)}

	// Flag updates are staged and only applied after the consolidated rows
	// have been committed, so no record is ever flagged processed without a
	// matching consolidated row.
	staged := make(map[int]models.CaseFlags)
	var rows []models.ConsolidatedTransaction

	for i := range transactions {
		tx := &transactions[i]

		if tx.IsProcessed {
			summary.Skipped++
			continue
		}
		if seen[tx.Key()] {
			// A row exists but the flags were never persisted; skip the
			// record rather than duplicate its consolidated row.
			summary.Skipped++
			c.logger.Debug("Consolidated row already present, skipping",
				logging.F(logging.FieldDocument, tx.DocumentKey),
				logging.F(logging.FieldEntry, tx.EntryID))
			continue
		}

		date, err := dateutils.ParseStatementDate(tx.Date)
		if err != nil {
			summary.Unparsable++
			c.logger.Warn("Record left unprocessed",
				logging.F(logging.FieldDocument, tx.DocumentKey),
				logging.F(logging.FieldEntry, tx.EntryID),
				logging.F(logging.FieldError, err.Error()))
			continue
		}

		result := cls.Classify(tx)
		summary.CaseCounts.Add(result.Flags)

		amount := tx.Amount()
		nominalCode := c.snapshot.CurrencyCode(result.CurrencyID)
		nominal := c.normalizer.Normalize(amount, tx.Currency, nominalCode, date)

		rows = append(rows, models.ConsolidatedTransaction{
			DocumentKey:      tx.DocumentKey,
			EntryID:          tx.EntryID,
			Date:             dateutils.DayKey(date),
			CounteragentID:   result.CounteragentID,
			CounteragentName: c.counteragentName(result.CounteragentID),
			ProjectID:        result.ProjectID,
			FinancialCodeID:  result.FinancialCodeID,
			CurrencyID:       result.CurrencyID,
			PaymentCode:      result.PaymentCode,
			AccountCurrency:  tx.Currency,
			Amount:           amount,
			NominalAmount:    nominal,
			CaseExplanation:  result.Flags.Explanation(),
		})
		seen[tx.Key()] = true
		staged[i] = result.Flags
	}

	if len(rows) > 0 || opts.Reprocess {
		if err := c.consolidated.Write(append(existing, rows...)); err != nil {
			return nil, err
		}
	}

	for i, flags := range staged {
		transactions[i].CaseFlags = flags
		transactions[i].IsProcessed = true
	}
	if len(staged) > 0 || opts.Reprocess {
		if err := c.raw.Save(transactions); err != nil {
			return nil, err
		}
	}

	summary.Consolidated = len(rows)
	summary.Missing = cls.Missing().Top(opts.TopMissing)

	c.logger.Info("Batch run finished",
		logging.F("total", summary.Total),
		logging.F("consolidated", summary.Consolidated),
		logging.F("skipped", summary.Skipped),
		logging.F("unparsable", summary.Unparsable),
		logging.F("missing_counteragents", cls.Missing().Len()))

	return summary, nil
}

func (c *Controller) counteragentName(id uuid.UUID) string {
	return c.snapshot.CounteragentName(id)
}

func dropPartitionRows(rows []models.ConsolidatedTransaction, partition []models.RawTransaction) []models.ConsolidatedTransaction {
	keys := make(map[models.RecordKey]bool, len(partition))
	for i := range partition {
		keys[partition[i].Key()] = true
	}
	kept := rows[:0]
	for i := range rows {
		if !keys[rows[i].Key()] {
			kept = append(kept, rows[i])
		}
	}
	return kept
}

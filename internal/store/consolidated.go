package store

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/procerror"
)

// ConsolidatedStore holds the consolidated output rows, one per classified
// raw entry. A missing file is an empty store, not an error: the first run
// against a partition starts from nothing.
type ConsolidatedStore struct {
	Path string
}

// NewConsolidatedStore creates a ConsolidatedStore.
func NewConsolidatedStore(path string) *ConsolidatedStore {
	return &ConsolidatedStore{Path: path}
}

// Load reads all consolidated rows.
func (s *ConsolidatedStore) Load() ([]models.ConsolidatedTransaction, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &procerror.StoreError{Store: "consolidated", Op: "open", Err: err}
	}
	defer file.Close()

	var rows []models.ConsolidatedTransaction
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, &procerror.StoreError{Store: "consolidated", Op: "unmarshal", Err: err}
	}
	return rows, nil
}

// Write replaces the store contents with rows. The pipeline commits the
// consolidated rows before persisting raw flags, so a failure here leaves
// every new record unprocessed.
func (s *ConsolidatedStore) Write(rows []models.ConsolidatedTransaction) error {
	file, err := os.Create(s.Path)
	if err != nil {
		return &procerror.StoreError{Store: "consolidated", Op: "create", Err: err}
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return &procerror.StoreError{Store: "consolidated", Op: "marshal", Err: err}
	}
	return nil
}

// Purge removes all consolidated rows, used by full reprocessing.
func (s *ConsolidatedStore) Purge() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return &procerror.StoreError{Store: "consolidated", Op: "purge", Err: err}
	}
	return nil
}

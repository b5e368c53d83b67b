package store

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/iceerpgeorgia/ice-erp-sub000/internal/models"
	"github.com/iceerpgeorgia/ice-erp-sub000/internal/procerror"
)

// RawStore is the raw transaction feed: an append-only CSV store keyed by
// (document key, entry id). The pipeline reads the whole partition, updates
// case flags and the processed mark in memory and writes it back in one
// batch.
type RawStore struct {
	Path string
}

// NewRawStore creates a RawStore over one raw-data partition file.
func NewRawStore(path string) *RawStore {
	return &RawStore{Path: path}
}

// Load reads all entries of the partition.
func (s *RawStore) Load() ([]models.RawTransaction, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, &procerror.StoreError{Store: "raw", Op: "open", Err: err}
	}
	defer file.Close()

	var transactions []models.RawTransaction
	if err := gocsv.UnmarshalFile(file, &transactions); err != nil {
		return nil, &procerror.StoreError{Store: "raw", Op: "unmarshal", Err: err}
	}
	return transactions, nil
}

// Save writes the partition back, persisting flag updates. Writing the full
// partition in one pass is the batch commit unit for this store.
func (s *RawStore) Save(transactions []models.RawTransaction) error {
	file, err := os.Create(s.Path)
	if err != nil {
		return &procerror.StoreError{Store: "raw", Op: "create", Err: err}
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&transactions, file); err != nil {
		return &procerror.StoreError{Store: "raw", Op: "marshal", Err: err}
	}
	return nil
}

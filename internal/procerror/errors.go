// Package procerror defines the typed errors raised by infrastructure
// failures. Per-record anomalies are never errors; they surface as case
// flags on the record instead.
package procerror

import "fmt"

// LoadError reports a failure to load one of the reference-data snapshots.
// Any LoadError aborts the run before a single record is touched.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s reference data: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StoreError reports a failed read or write against one of the backing
// stores.
type StoreError struct {
	Store string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store: %s: %v", e.Store, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

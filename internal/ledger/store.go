package ledger

import (
	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// Store is the immutable in-memory record set built once at startup.
// Reads are safe from any number of goroutines because nothing mutates the
// store after construction.
type Store struct {
	records []models.ExpenseRecord
	skipped int
}

// NewStore wraps a loaded record slice. Record IDs must equal their position
// in the slice; the loader guarantees this.
func NewStore(records []models.ExpenseRecord, skipped int) *Store {
	return &Store{records: records, skipped: skipped}
}

// Records returns the full ordered record set. Callers must not modify the
// returned slice.
func (s *Store) Records() []models.ExpenseRecord {
	return s.records
}

// ByID returns the record with the given stable id.
func (s *Store) ByID(id int) (models.ExpenseRecord, bool) {
	if id < 0 || id >= len(s.records) {
		return models.ExpenseRecord{}, false
	}
	return s.records[id], true
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Skipped returns how many malformed source rows were dropped at load time.
func (s *Store) Skipped() int {
	return s.skipped
}

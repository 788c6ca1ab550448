package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

// ledgerRow mirrors one CSV line of the source spreadsheet export. The ledger
// is ragged: any of the columns besides Despesas and Valor may be blank.
type ledgerRow struct {
	Description string `csv:"Despesas"`
	DueDay      string `csv:"Vcto"`
	Amount      string `csv:"Valor"`
	Status      string `csv:"Status"`
	Category    string `csv:"Categoria"`
}

// Loader reads every *.csv file in a directory into expense records. The
// file base name is the reference period the records belong to, mirroring
// the "one sheet per month" layout of the original spreadsheet.
type Loader struct {
	dir   string
	rules CategoryRules
	log   logging.Logger
}

// NewLoader creates a Loader for the given ledger directory.
func NewLoader(dir string, rules CategoryRules, logger logging.Logger) *Loader {
	return &Loader{dir: dir, rules: rules, log: logger}
}

// Load reads the whole ledger once and returns the immutable record store.
// Rows missing a description or carrying an unparseable amount are skipped
// silently; the skipped count is observable on the store.
func (l *Loader) Load() (*Store, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, &ragerror.LoadError{Path: l.dir, Err: err}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	if len(files) == 0 {
		return nil, &ragerror.LoadError{Path: l.dir, Err: fmt.Errorf("no csv files found")}
	}
	sort.Strings(files)

	var records []models.ExpenseRecord
	skipped := 0

	for _, name := range files {
		reference := strings.TrimSuffix(name, filepath.Ext(name))
		rows, err := l.readFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, &ragerror.LoadError{Path: filepath.Join(l.dir, name), Err: err}
		}

		for _, row := range rows {
			record, ok := l.buildRecord(row, reference, len(records))
			if !ok {
				skipped++
				continue
			}
			records = append(records, record)
		}

		l.log.WithField("reference", reference).Debug("Loaded ledger file")
	}

	l.log.Info("Ledger loaded",
		logging.F("records", len(records)),
		logging.F("skipped", skipped),
		logging.F("files", len(files)))

	return NewStore(records, skipped), nil
}

func (l *Loader) readFile(path string) ([]ledgerRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening csv file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.log.WithError(err).Warn("Failed to close ledger file")
		}
	}()

	var rows []ledgerRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing csv file: %w", err)
	}
	return rows, nil
}

// buildRecord validates and normalizes one raw row. The returned bool is
// false when the row must be skipped.
func (l *Loader) buildRecord(row ledgerRow, reference string, id int) (models.ExpenseRecord, bool) {
	description := strings.TrimSpace(row.Description)
	if description == "" {
		return models.ExpenseRecord{}, false
	}

	amount, ok := models.ParseAmount(row.Amount)
	if !ok {
		return models.ExpenseRecord{}, false
	}

	category := strings.ToLower(strings.TrimSpace(row.Category))
	if category == "" {
		category = l.rules.Infer(description)
	}

	return models.ExpenseRecord{
		ID:          id,
		Description: description,
		DueDay:      parseDueDay(row.DueDay),
		Amount:      amount,
		Status:      strings.TrimSpace(row.Status),
		Reference:   reference,
		Category:    category,
	}, true
}

// parseDueDay parses the Vcto column. Spreadsheet exports sometimes render
// the day as a float ("5.0"), so both forms are accepted.
func parseDueDay(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if day, err := strconv.Atoi(raw); err == nil {
		return &day
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		day := int(f)
		return &day
	}
	return nil
}

package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

func writeLedgerFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeLedgerFile(t, dir, "marco.csv",
		"Despesas,Vcto,Valor,Status,Categoria\n"+
			"Aluguel,5,\"1500,00\",pago,moradia\n"+
			"Fatura cartão de crédito,10,\"850,50\",pendente,\n"+
			"Conta Celesc,,120.75,pago,\n"+
			",,50,pago,\n"+ // no description: skipped
			"Sem valor,3,,pago,\n") // no amount: skipped
	writeLedgerFile(t, dir, "abril.csv",
		"Despesas,Vcto,Valor,Status,Categoria\n"+
			"Internet,15,99.90,,\n")

	loader := NewLoader(dir, DefaultCategoryRules(), &logging.MockLogger{})
	store, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 4, store.Len())
	assert.Equal(t, 2, store.Skipped())

	records := store.Records()

	// Files are read in sorted order, so abril comes first.
	assert.Equal(t, "Internet", records[0].Description)
	assert.Equal(t, "abril", records[0].Reference)
	assert.Equal(t, models.CategoryOther, records[0].Category)
	assert.Equal(t, "", records[0].Status)

	assert.Equal(t, "Aluguel", records[1].Description)
	assert.Equal(t, "marco", records[1].Reference)
	assert.Equal(t, "moradia", records[1].Category) // explicit column wins
	require.NotNil(t, records[1].DueDay)
	assert.Equal(t, 5, *records[1].DueDay)
	assert.Equal(t, "1500", records[1].Amount.String())

	// Blank category column falls back to keyword inference.
	assert.Equal(t, models.CategoryCreditCard, records[2].Category)
	assert.Equal(t, models.CategoryEnergy, records[3].Category)
	assert.Nil(t, records[3].DueDay)

	// IDs are stable positions.
	for i, r := range records {
		assert.Equal(t, i, r.ID)
	}
}

func TestLoader_Load_MissingDirectory(t *testing.T) {
	loader := NewLoader("/nonexistent/ledger", DefaultCategoryRules(), &logging.MockLogger{})
	_, err := loader.Load()
	require.Error(t, err)

	var loadErr *ragerror.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoader_Load_EmptyDirectory(t *testing.T) {
	loader := NewLoader(t.TempDir(), DefaultCategoryRules(), &logging.MockLogger{})
	_, err := loader.Load()
	require.Error(t, err)

	var loadErr *ragerror.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestParseDueDay(t *testing.T) {
	tests := []struct {
		input    string
		expected *int
	}{
		{input: "5", expected: intPtr(5)},
		{input: "5.0", expected: intPtr(5)},
		{input: " 12 ", expected: intPtr(12)},
		{input: "", expected: nil},
		{input: "abc", expected: nil},
	}

	for _, tt := range tests {
		got := parseDueDay(tt.input)
		if tt.expected == nil {
			assert.Nil(t, got, tt.input)
		} else {
			require.NotNil(t, got, tt.input)
			assert.Equal(t, *tt.expected, *got)
		}
	}
}

func intPtr(v int) *int { return &v }

package ledger

import (
	"fmt"
	"strconv"

	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// Project renders a record into its canonical pipe-delimited text form. This
// string is the sole unit of meaning exchanged with the embedding and
// generation collaborators, so it must be deterministic: equal records always
// produce identical strings.
func Project(r models.ExpenseRecord) string {
	dueDay := "-"
	if r.DueDay != nil {
		dueDay = strconv.Itoa(*r.DueDay)
	}
	return fmt.Sprintf(
		"Despesa: %s | Vencimento: dia %s | Valor: %s | Status: %s | Referencia: %s | Categoria: %s",
		r.Description, dueDay, r.Amount.String(), r.Status, r.Reference, r.Category,
	)
}

// ProjectAll projects every record in store order.
func ProjectAll(records []models.ExpenseRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = Project(r)
	}
	return out
}

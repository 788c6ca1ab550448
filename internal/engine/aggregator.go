package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// Aggregate computes the exact total for a deterministic operation over the
// candidate subset. It never consults the similarity index. The returned
// bool is false when the operation is aggregate-class but not one of the
// three known kinds; callers must surface that downgrade instead of silently
// reclassifying.
func Aggregate(candidates []models.ExpenseRecord, operation models.Operation) (decimal.Decimal, []models.ExpenseRecord, bool) {
	var selected []models.ExpenseRecord

	switch operation {
	case models.OperationTotalPago:
		for _, r := range candidates {
			if r.HasStatus(models.StatusPaid) {
				selected = append(selected, r)
			}
		}
	case models.OperationTotalPendente:
		for _, r := range candidates {
			if isPending(r) {
				selected = append(selected, r)
			}
		}
	case models.OperationTotal:
		selected = candidates
	default:
		return decimal.Zero, nil, false
	}

	total := decimal.Zero
	for _, r := range selected {
		total = total.Add(r.Amount)
	}

	return total, selected, true
}

func isPending(r models.ExpenseRecord) bool {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	for _, pending := range models.PendingStatuses {
		if status == pending {
			return true
		}
	}
	return false
}

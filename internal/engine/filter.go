package engine

import (
	"strings"

	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// FilterRecords applies the structured filters conjunctively and returns the
// candidate subset. Vendor, reference and status are case-insensitive
// substring matches against their fields; category is exact case-insensitive
// equality. When the conjunction selects nothing the full record set is
// returned instead: an over-specific or misparsed filter should still
// retrieve something rather than report no data. The fallback applies once,
// here, never per individual filter.
func FilterRecords(records []models.ExpenseRecord, filters models.Filters) []models.ExpenseRecord {
	if filters.Empty() {
		return records
	}

	var subset []models.ExpenseRecord
	for _, r := range records {
		if matchesFilters(r, filters) {
			subset = append(subset, r)
		}
	}

	if len(subset) == 0 {
		return records
	}
	return subset
}

func matchesFilters(r models.ExpenseRecord, f models.Filters) bool {
	if f.VendorContains != "" && !containsFold(r.Description, f.VendorContains) {
		return false
	}
	if f.ReferencePeriod != "" && !containsFold(r.Reference, f.ReferencePeriod) {
		return false
	}
	if f.Status != "" && !containsFold(r.Status, f.Status) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

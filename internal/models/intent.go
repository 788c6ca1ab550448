package models

// Operation is the closed set of query operations the engine understands.
// Anything the intent extractor returns is normalized into one of these
// values before reaching downstream logic.
type Operation string

// Known operations.
const (
	OperationSearch        Operation = "search"
	OperationList          Operation = "list"
	OperationTotal         Operation = "total"
	OperationTotalPago     Operation = "total_pago"
	OperationTotalPendente Operation = "total_pendente"
)

// IsKnown reports whether the operation is one of the five enum values.
func (op Operation) IsKnown() bool {
	switch op {
	case OperationSearch, OperationList, OperationTotal,
		OperationTotalPago, OperationTotalPendente:
		return true
	}
	return false
}

// OperationClass is the routing decision derived from an operation:
// deterministic operations go through the exact aggregator, semantic ones
// through similarity retrieval.
type OperationClass string

// Operation classes.
const (
	ClassDeterministic OperationClass = "deterministic"
	ClassSemantic      OperationClass = "semantic"
)

// Filters holds the optional structured filters extracted from a question.
// An empty string means the filter is absent.
type Filters struct {
	VendorContains  string `json:"vendor_contains,omitempty"`
	ReferencePeriod string `json:"reference_period,omitempty"`
	Status          string `json:"status,omitempty"`
	Category        string `json:"category,omitempty"`
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.VendorContains == "" && f.ReferencePeriod == "" &&
		f.Status == "" && f.Category == ""
}

// QueryIntent is the validated, normalized interpretation of one question.
// It is ephemeral: one instance per request, never persisted.
type QueryIntent struct {
	// Operation is always one of the five enum values.
	Operation Operation
	// RawOperation preserves the extractor's operation string before
	// normalization; operation-class routing looks at this, so aggregate
	// kinds the enum cannot express (count, media, ...) are still detected
	// and surfaced as a downgrade instead of silently becoming a search.
	RawOperation string
	Filters      Filters
}

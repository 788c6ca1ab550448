package engine

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// aggregateKeywords mark an operation string as deterministic. Composite
// forms like "total_pago" match through the substring check.
var aggregateKeywords = []string{"total", "sum", "count", "average", "media", "max", "min"}

// Classifier validates and normalizes the intent extractor's output. It
// never fails: broken or missing extractor output degrades to a plain
// search intent with no filters.
type Classifier struct {
	extractor IntentExtractor
	log       logging.Logger
}

// NewClassifier creates a Classifier around the given extractor.
func NewClassifier(extractor IntentExtractor, logger logging.Logger) *Classifier {
	return &Classifier{extractor: extractor, log: logger}
}

// rawIntent mirrors the JSON shape the extractor is asked to produce.
type rawIntent struct {
	Operation string `json:"operation"`
	Filters   struct {
		VendorContains  string `json:"vendor_contains"`
		ReferencePeriod string `json:"reference_period"`
		Status          string `json:"status"`
		Category        string `json:"category"`
	} `json:"filters"`
}

// Classify turns a question into a normalized QueryIntent. Extraction or
// parse failures are logged and recovered by defaulting the operation to
// search with no filters; they are never propagated to the caller.
func (c *Classifier) Classify(ctx context.Context, question string) models.QueryIntent {
	fallback := models.QueryIntent{Operation: models.OperationSearch}

	raw, err := c.extractor.Extract(ctx, question)
	if err != nil {
		c.log.WithError(err).Warn("Intent extraction failed, defaulting to search")
		return fallback
	}

	var parsed rawIntent
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &parsed); err != nil {
		c.log.WithError(err).WithField("raw", raw).Warn("Unparseable intent payload, defaulting to search")
		return fallback
	}

	intent := models.QueryIntent{
		Operation:    NormalizeOperation(parsed.Operation),
		RawOperation: strings.ToLower(strings.TrimSpace(parsed.Operation)),
		Filters: models.Filters{
			VendorContains:  strings.TrimSpace(parsed.Filters.VendorContains),
			ReferencePeriod: strings.TrimSpace(parsed.Filters.ReferencePeriod),
			Status:          strings.TrimSpace(parsed.Filters.Status),
			Category:        strings.TrimSpace(parsed.Filters.Category),
		},
	}

	c.log.Debug("Classified question",
		logging.F("operation", intent.Operation),
		logging.F("filters", intent.Filters))

	return intent
}

// NormalizeOperation coerces an arbitrary operation string into the closed
// enum. Exact enum values pass through; anything else goes through a keyword
// safety net (contains "total"/"sum" -> total, contains "list" -> list) and
// finally defaults to search.
func NormalizeOperation(operation string) models.Operation {
	op := models.Operation(strings.ToLower(strings.TrimSpace(operation)))
	if op.IsKnown() {
		return op
	}

	s := string(op)
	switch {
	case strings.Contains(s, "total"), strings.Contains(s, "sum"):
		return models.OperationTotal
	case strings.Contains(s, "list"):
		return models.OperationList
	default:
		return models.OperationSearch
	}
}

// ClassifyOperationClass decides the routing class for an operation string.
// It is pure: no collaborator round-trip, same input always gives the same
// output. An empty operation is semantic; any aggregate keyword makes it
// deterministic.
func ClassifyOperationClass(operation string) models.OperationClass {
	op := strings.ToLower(strings.TrimSpace(operation))
	if op == "" {
		return models.ClassSemantic
	}
	for _, keyword := range aggregateKeywords {
		if strings.Contains(op, keyword) {
			return models.ClassDeterministic
		}
	}
	return models.ClassSemantic
}

// extractJSONObject strips markdown code fences and surrounding prose from a
// model response, keeping the outermost {...} span. Returns the input
// unchanged when no braces are found so json.Unmarshal reports the failure.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

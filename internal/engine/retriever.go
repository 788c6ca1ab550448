package engine

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
	"github.com/alanrezendeee/retechfin-rag/internal/vectorindex"
)

// Retrieval policies mirror config values; "auto" picks threshold for
// unfiltered questions and dynamic-k for filtered ones.
const (
	PolicyAuto      = "auto"
	PolicyDynamicK  = "dynamic_k"
	PolicyThreshold = "threshold"
)

// RetrievalOptions are the tunables of the semantic path.
type RetrievalOptions struct {
	GlobalK   int     // recall window for the index query
	MinK      int     // dynamic-k floor
	MaxK      int     // dynamic-k ceiling
	Ratio     float64 // dynamic-k pool fraction
	Threshold float64 // distance cutoff for the threshold policy
	Policy    string  // auto, dynamic_k or threshold
}

// creditCardKeywords trigger the category guard: questions about card bills
// must never be answered with records from other categories, no matter how
// close the embedding distance is.
var creditCardKeywords = []string{"cartão", "cartao", "credito", "crédito"}

var errNoVector = errors.New("collaborator returned no vector")

// Retriever runs the semantic similarity path: embed the question, query the
// index over a generous global window, intersect with the structured-filter
// candidates by record id, guard categories and truncate per policy.
type Retriever struct {
	embedder Embedder
	index    *vectorindex.Index
	opts     RetrievalOptions
	log      logging.Logger
}

// NewRetriever wires a Retriever. The index must be fully built.
func NewRetriever(embedder Embedder, index *vectorindex.Index, opts RetrievalOptions, logger logging.Logger) *Retriever {
	return &Retriever{embedder: embedder, index: index, opts: opts, log: logger}
}

// Retrieve returns the selected records in ascending distance order.
// hasFilters tells the auto policy whether the question carried structured
// filters. A failed or empty embedding surfaces as EmbeddingError.
func (r *Retriever) Retrieve(ctx context.Context, question string, candidates []models.ExpenseRecord, hasFilters bool) ([]models.ExpenseRecord, error) {
	vectors, err := r.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, &ragerror.EmbeddingError{Text: question, Err: errNoVector}
	}

	globalK := r.opts.GlobalK
	if globalK > r.index.Len() {
		globalK = r.index.Len()
	}
	hits := r.index.Search(vectors[0], globalK)

	// Intersect with the candidate subset by stable record id, preserving
	// the index's distance order.
	candidateByID := make(map[int]models.ExpenseRecord, len(candidates))
	for _, c := range candidates {
		candidateByID[c.ID] = c
	}

	type scored struct {
		record   models.ExpenseRecord
		distance float32
	}
	var pool []scored
	for _, hit := range hits {
		record, ok := candidateByID[hit.Position]
		if !ok {
			continue
		}
		pool = append(pool, scored{record: record, distance: hit.Distance})
	}

	// Category guard before final selection.
	if IsCreditCardQuestion(question) {
		guarded := pool[:0]
		for _, s := range pool {
			if s.record.Category == models.CategoryCreditCard {
				guarded = append(guarded, s)
			}
		}
		pool = guarded
	}

	policy := r.opts.Policy
	if policy == PolicyAuto || policy == "" {
		if hasFilters {
			policy = PolicyDynamicK
		} else {
			policy = PolicyThreshold
		}
	}

	var selected []models.ExpenseRecord
	switch policy {
	case PolicyThreshold:
		for _, s := range pool {
			if float64(s.distance) <= r.opts.Threshold {
				selected = append(selected, s.record)
			}
		}
	default: // dynamic_k
		k := DynamicK(len(pool), r.opts.MinK, r.opts.MaxK, r.opts.Ratio)
		for _, s := range pool[:k] {
			selected = append(selected, s.record)
		}
	}

	r.log.Debug("Semantic retrieval finished",
		logging.F("policy", policy),
		logging.F("pool", len(pool)),
		logging.F("selected", len(selected)))

	return selected, nil
}

// DynamicK computes the pool-size-proportional cutoff: keep everything for
// small pools, otherwise round(n*ratio) clamped into [minK, maxK] and never
// above n. For fixed parameters k never decreases as n grows.
func DynamicK(n, minK, maxK int, ratio float64) int {
	if n <= minK {
		return n
	}
	k := int(math.Round(float64(n) * ratio))
	if k < minK {
		k = minK
	}
	if k > maxK {
		k = maxK
	}
	if k > n {
		k = n
	}
	return k
}

// IsCreditCardQuestion reports whether the question text is about credit
// card expenses.
func IsCreditCardQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, keyword := range creditCardKeywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}

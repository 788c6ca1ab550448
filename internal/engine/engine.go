package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/alanrezendeee/retechfin-rag/internal/ledger"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
	"github.com/alanrezendeee/retechfin-rag/internal/vectorindex"
)

// WarningUnknownAggregate flags a question whose operation looked numeric but
// matched none of the known aggregate kinds; the engine answered it through
// semantic retrieval instead of an exact sum.
const WarningUnknownAggregate = "operação agregada não reconhecida; a resposta usou busca semântica, não soma exata"

// Response is the result of one question. ContextRecords always carries the
// literal grounding context, never just the prose.
type Response struct {
	Question       string                `json:"question"`
	Operation      models.Operation      `json:"operation"`
	OperationClass models.OperationClass `json:"operation_class"`
	FiltersUsed    models.Filters        `json:"filters_used"`
	Answer         string                `json:"answer"`
	ContextRecords []string              `json:"context_records"`
	Total          *decimal.Decimal      `json:"total,omitempty"`
	Warning        string                `json:"warning,omitempty"`
}

// Stats describes the immutable state the engine serves from.
type Stats struct {
	Records   int `json:"records"`
	Skipped   int `json:"skipped_rows"`
	IndexSize int `json:"index_size"`
	Dim       int `json:"dim"`
}

// Engine routes each question through the deterministic or the semantic
// pipeline. It holds only immutable state (record store, similarity index)
// plus stateless collaborator wrappers, so Ask is safe for concurrent use.
type Engine struct {
	store      *ledger.Store
	index      *vectorindex.Index
	classifier *Classifier
	retriever  *Retriever
	assembler  *Assembler
	log        logging.Logger
}

// New wires an Engine from its already-built parts.
func New(store *ledger.Store, index *vectorindex.Index, classifier *Classifier, retriever *Retriever, assembler *Assembler, logger logging.Logger) *Engine {
	return &Engine{
		store:      store,
		index:      index,
		classifier: classifier,
		retriever:  retriever,
		assembler:  assembler,
		log:        logger,
	}
}

// Stats reports record and index counts for health reporting.
func (e *Engine) Stats() Stats {
	return Stats{
		Records:   e.store.Len(),
		Skipped:   e.store.Skipped(),
		IndexSize: e.index.Len(),
		Dim:       e.index.Dim(),
	}
}

// Ask answers one question. The flow is classifier -> structured filter ->
// branch on operation class -> aggregator or retriever -> assembler. Errors
// are request-scoped: the shared store and index are never affected.
func (e *Engine) Ask(ctx context.Context, question string) (*Response, error) {
	intent := e.classifier.Classify(ctx, question)
	candidates := FilterRecords(e.store.Records(), intent.Filters)

	response := &Response{
		Question:       question,
		Operation:      intent.Operation,
		OperationClass: ClassifyOperationClass(intent.RawOperation),
		FiltersUsed:    intent.Filters,
	}

	if response.OperationClass == models.ClassDeterministic {
		total, selected, known := Aggregate(candidates, intent.Operation)
		if known {
			answer, contextTexts, err := e.assembler.Assemble(ctx, question, selected, &total)
			if err != nil {
				return nil, err
			}
			response.Answer = answer
			response.ContextRecords = contextTexts
			response.Total = &total
			return response, nil
		}

		// Aggregate-class operation outside the known kinds: fall through to
		// the semantic path, but say so instead of silently reclassifying.
		e.log.Warn("Unknown aggregate operation, downgrading to semantic retrieval",
			logging.F("operation", intent.Operation))
		response.Warning = WarningUnknownAggregate
	}

	selected, err := e.retriever.Retrieve(ctx, question, candidates, !intent.Filters.Empty())
	if err != nil {
		return nil, err
	}

	answer, contextTexts, err := e.assembler.Assemble(ctx, question, selected, nil)
	if err != nil {
		return nil, err
	}

	response.Answer = answer
	response.ContextRecords = contextTexts
	return response, nil
}

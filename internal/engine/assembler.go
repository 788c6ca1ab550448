package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alanrezendeee/retechfin-rag/internal/ledger"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/models"
	"github.com/alanrezendeee/retechfin-rag/internal/ragerror"
)

// NoMatchesAnswer is returned instead of generated prose when the selected
// subset is empty. A zero total over zero records must read as "nothing
// found", never as a real zero-expense answer.
const NoMatchesAnswer = "Nenhuma despesa encontrada para os filtros informados."

var errEmptyAnswer = errors.New("generator returned empty text")

// Assembler grounds the generation collaborator: it hands over only the
// projected text of the selected records and, for deterministic operations,
// the already-computed exact total.
type Assembler struct {
	generator Generator
	log       logging.Logger
}

// NewAssembler creates an Assembler around the given generator.
func NewAssembler(generator Generator, logger logging.Logger) *Assembler {
	return &Assembler{generator: generator, log: logger}
}

// Assemble produces the final answer plus the literal context it was
// grounded on. The context is always returned to the caller for
// auditability. total is non-nil only on the deterministic path. An empty
// selection short-circuits to NoMatchesAnswer without calling the generator.
func (a *Assembler) Assemble(ctx context.Context, question string, selected []models.ExpenseRecord, total *decimal.Decimal) (string, []string, error) {
	contextTexts := ledger.ProjectAll(selected)

	if len(selected) == 0 {
		a.log.Debug("Empty selection, skipping generation")
		return NoMatchesAnswer, contextTexts, nil
	}

	prompt := buildPrompt(question, contextTexts, total)

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", contextTexts, &ragerror.GenerationError{Err: err}
	}
	if strings.TrimSpace(answer) == "" {
		return "", contextTexts, &ragerror.GenerationError{Err: errEmptyAnswer}
	}

	return strings.TrimSpace(answer), contextTexts, nil
}

func buildPrompt(question string, contextTexts []string, total *decimal.Decimal) string {
	var b strings.Builder

	b.WriteString("Use apenas as despesas abaixo para responder. Não invente valores nem despesas.\n\n")
	b.WriteString("Despesas encontradas:\n")
	for _, text := range contextTexts {
		b.WriteString("- ")
		b.WriteString(text)
		b.WriteString("\n")
	}

	if total != nil {
		fmt.Fprintf(&b, "\nO total exato já foi calculado: R$ %s. Use este valor na resposta, não o recalcule.\n", total.StringFixed(2))
	}

	b.WriteString("\nPergunta do usuário:\n")
	b.WriteString(question)
	b.WriteString("\n")

	return b.String()
}

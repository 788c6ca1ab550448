// Package ledger loads the expense ledger from disk and exposes it as an
// immutable in-memory record store, together with the canonical text
// projection used for embedding and answer grounding.
package ledger

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alanrezendeee/retechfin-rag/internal/models"
)

// CategoryRule maps a category name to the keywords that select it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoryRules is an ordered list of rules; the first matching rule wins.
type CategoryRules struct {
	Categories []CategoryRule `yaml:"categories"`
}

// DefaultCategoryRules returns the built-in inference rules used when no
// rules file is configured or the configured file cannot be read.
func DefaultCategoryRules() CategoryRules {
	return CategoryRules{
		Categories: []CategoryRule{
			{Name: models.CategoryCreditCard, Keywords: []string{"cartão", "cartao", "credito", "crédito"}},
			{Name: models.CategoryEnergy, Keywords: []string{"celesc", "luz", "energia"}},
		},
	}
}

// LoadCategoryRules reads category rules from a yaml file. An empty path
// returns the defaults.
func LoadCategoryRules(path string) (CategoryRules, error) {
	if path == "" {
		return DefaultCategoryRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return CategoryRules{}, fmt.Errorf("could not read category rules file: %w", err)
	}

	var rules CategoryRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return CategoryRules{}, fmt.Errorf("could not parse category rules file: %w", err)
	}
	if len(rules.Categories) == 0 {
		return CategoryRules{}, fmt.Errorf("category rules file %s defines no categories", path)
	}

	return rules, nil
}

// Infer returns the category for a description based on keyword matching.
// Matching is case-insensitive; descriptions matching no rule fall into the
// "outros" bucket.
func (r CategoryRules) Infer(description string) string {
	d := strings.ToLower(description)
	for _, rule := range r.Categories {
		for _, keyword := range rule.Keywords {
			if strings.Contains(d, strings.ToLower(keyword)) {
				return rule.Name
			}
		}
	}
	return models.CategoryOther
}

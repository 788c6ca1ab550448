// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"github.com/alanrezendeee/retechfin-rag/internal/config"
)

// CommonFlags represents the flags that are shared across commands.
// Non-empty values override the corresponding configuration keys.
type CommonFlags struct {
	LedgerDir  string
	Categories string
}

var (
	// SharedFlags are the common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "retechfin-rag",
		Short: "Answer natural language questions about a personal expense ledger.",
		Long: `retechfin-rag loads expense spreadsheets, indexes them with Gemini
embeddings and answers questions in natural language. Aggregate questions
(totals, paid, pending) are computed exactly over the ledger; everything else
goes through semantic retrieval and a generated answer.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Use 'serve' to start the HTTP service or 'ask' for a one-shot question.")
			_ = cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.LedgerDir, "ledger-dir", "d", "", "Directory containing the ledger CSV files (overrides config)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Categories, "categories", "c", "", "YAML file with category keyword rules (overrides config)")
}

// ApplyOverrides folds the command line flags into the loaded configuration.
func ApplyOverrides(cfg *config.Config) {
	if SharedFlags.LedgerDir != "" {
		cfg.Ledger.Directory = SharedFlags.LedgerDir
	}
	if SharedFlags.Categories != "" {
		cfg.Ledger.CategoriesFile = SharedFlags.Categories
	}
}

// Package ask answers a single question from the command line.
package ask

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/alanrezendeee/retechfin-rag/cmd/common"
	"github.com/alanrezendeee/retechfin-rag/cmd/root"
	"github.com/alanrezendeee/retechfin-rag/internal/config"
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question against the ledger and print the answer",
	Long: `Ask runs the full build phase once, answers the given question and
exits. Useful for scripting and for checking a ledger without starting the
HTTP service.

Example:
  retechfin-rag ask "quanto paguei em abril?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: askFunc,
}

var showContext bool

func init() {
	Cmd.Flags().BoolVar(&showContext, "show-context", false, "Print the records used to build the answer")
}

func askFunc(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	root.ApplyOverrides(cfg)
	config.ConfigureLogrus(cfg)
	log := config.NewLogger(cfg)

	ctx := cmd.Context()
	app, err := common.Bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close Gemini client")
		}
	}()

	question := strings.Join(args, " ")
	response, err := app.Engine.Ask(ctx, question)
	if err != nil {
		return err
	}

	if response.Warning != "" {
		cmd.Printf("Aviso: %s\n\n", response.Warning)
	}
	cmd.Println(response.Answer)
	if response.Total != nil {
		cmd.Printf("\nTotal: R$ %s\n", response.Total.StringFixed(2))
	}

	if showContext {
		cmd.Println("\nRegistros considerados:")
		for _, line := range response.ContextRecords {
			cmd.Printf("  %s\n", line)
		}
	}

	return nil
}

// Package serve starts the HTTP question answering service.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alanrezendeee/retechfin-rag/cmd/common"
	"github.com/alanrezendeee/retechfin-rag/cmd/root"
	"github.com/alanrezendeee/retechfin-rag/internal/config"
	"github.com/alanrezendeee/retechfin-rag/internal/logging"
	"github.com/alanrezendeee/retechfin-rag/internal/server"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the ledger, build the index and serve questions over HTTP",
	Long: `Serve loads every ledger CSV file, embeds the records through Gemini,
builds the in-memory similarity index and then answers POST /ask requests
until interrupted.

Example:
  retechfin-rag serve -d data/ledger`,
	RunE: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	root.ApplyOverrides(cfg)
	config.ConfigureLogrus(cfg)
	log := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := common.Bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close Gemini client")
		}
	}()

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	srv := server.New(app.Engine, timeout, log)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP service listening", logging.F("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

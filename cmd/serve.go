package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/StudyAssist/internal/backend"
	"github.com/Rorical/StudyAssist/internal/config"
	"github.com/Rorical/StudyAssist/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference text-processing backend",
	Long: `Serve POST /process using the active profile's OpenAI-compatible model.
The default address matches the default endpoint of the form.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger := logging.New(os.Stderr, logging.Level(verboseFlag))

		gen, err := backend.NewStudyGeneratorFromConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to configure backend: %v", err)
		}

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           backend.NewHandler(gen, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown failed", "error", err)
			}
		}()

		logger.Info("backend listening", "addr", serveAddr, "profile", cfg.ActiveProfile, "model", gen.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
		logger.Info("backend stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":5000", "listen address")
}

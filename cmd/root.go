package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/StudyAssist/internal/app"
	"github.com/Rorical/StudyAssist/internal/config"
	"github.com/Rorical/StudyAssist/internal/logging"
)

var (
	endpointFlag string
	verboseFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "studyassist",
	Short: "Turn your notes into summaries and quiz questions",
	Long: `StudyAssist sends your study notes to a text-processing service and shows
the summary and quiz questions it returns.

The service address comes from --endpoint, then $` + config.EndpointEnv + `, then the
config file, and defaults to ` + config.DefaultEndpoint + `.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logPath, err := config.GetLogPath()
		if err != nil {
			log.Fatalf("Failed to resolve log path: %v", err)
		}
		logger, logFile, err := logging.NewFile(logPath, logging.Level(verboseFlag))
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()

		application := app.NewApplication(cfg.ResolveEndpoint(endpointFlag), logger)
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "text-processing endpoint URL")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)
}

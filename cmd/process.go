package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/StudyAssist/internal/config"
	"github.com/Rorical/StudyAssist/internal/core"
	"github.com/Rorical/StudyAssist/internal/logging"
	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/internal/remote"
	"github.com/Rorical/StudyAssist/internal/utils"
)

const processWrapWidth = 80

var rawOutput bool

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process a file (or stdin) once and print the result",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		in := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatalf("Failed to open input: %v", err)
			}
			defer f.Close()
			in = f
		}

		level := slog.LevelError
		if verboseFlag {
			level = slog.LevelDebug
		}
		logger := logging.New(os.Stderr, level)

		client := remote.New(cfg.ResolveEndpoint(endpointFlag), remote.WithLogger(logger))
		if err := runProcess(cmd.Context(), in, os.Stdout, client, rawOutput, logger); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	},
}

// runProcess runs one submission cycle and writes the result to out. A
// failure comes back as an error carrying the user-facing message.
func runProcess(ctx context.Context, in io.Reader, out io.Writer, processor core.Processor, raw bool, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	workflow := core.NewWorkflow(processor, logger)
	workflow.SetInput(string(text))

	state, err := workflow.Submit(ctx)
	if err != nil {
		return err
	}

	switch s := state.(type) {
	case models.Result:
		output := s.Text
		if !raw {
			output = utils.NewMarkdownRenderer(utils.StyleAuto).Render(s.Text, processWrapWidth)
		}
		_, err := fmt.Fprintln(out, output)
		return err
	case models.Failure:
		return errors.New(s.Message)
	default:
		return fmt.Errorf("unexpected state %s", models.StateName(state))
	}
}

func init() {
	processCmd.Flags().BoolVar(&rawOutput, "raw", false, "print the result without markdown rendering")
}

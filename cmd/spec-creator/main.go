// Command spec-creator turns a guided interview with an Azure AI
// Foundry agent into a ready-to-build software specification file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cinience/spec-creator/internal/config"
	"github.com/cinience/spec-creator/internal/foundry"
	"github.com/cinience/spec-creator/internal/interview"
	"github.com/cinience/spec-creator/internal/session"
)

var (
	outputFile string
	modelName  string
	sessionDir string
)

var rootCmd = &cobra.Command{
	Use:   "spec-creator",
	Short: "Interview-driven software spec generator",
	Long: "spec-creator provisions a requirements-interview agent on an Azure AI\n" +
		"Foundry project, talks you through discovery, and writes the generated\n" +
		"specification to disk when the interview concludes.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInterview,
}

// errConfigIncomplete signals a startup failure whose details were
// already printed to the user.
var errConfigIncomplete = errors.New("configuration incomplete")

func init() {
	rootCmd.Flags().StringVar(&outputFile, "output", "",
		"Path for the generated spec (env: OUTPUT_FILE, default: "+config.DefaultOutputFile+")")
	rootCmd.Flags().StringVar(&modelName, "model", "",
		"Model deployment backing the agent (env: MODEL_NAME, default: "+config.DefaultModelName+")")
	rootCmd.Flags().StringVar(&sessionDir, "session-dir", "",
		"Directory for session snapshots (env: SESSION_DIR, default: "+config.DefaultSessionDir+")")

	rootCmd.AddCommand(newSessionsCmd())
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errConfigIncomplete) {
			fmt.Fprintf(os.Stderr, "spec-creator: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig builds the run configuration, letting command-line flags
// override their environment counterparts.
func loadConfig() *config.Config {
	cfg := config.Load()
	if outputFile != "" {
		cfg.OutputFile = outputFile
	}
	if modelName != "" {
		cfg.ModelName = modelName
	}
	if sessionDir != "" {
		cfg.SessionDir = sessionDir
	}
	return cfg
}

func runInterview(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Error: %v\n", err)
		fmt.Fprintln(errOut, "Please copy .env.sample to .env and fill in your project endpoint.")
		return errConfigIncomplete
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()
	logger = logger.With("session_id", uuid.NewString())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	colors := shouldUseColorAuto(out)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		logger.Info("received signal, shutting down", "signal", sig.String())
		fmt.Fprintln(out)
		fmt.Fprintln(out, colorize(colors, ansiYellow, "Shutting down gracefully..."))
		cancel()
	}()

	printBanner(out, colors)

	client := foundry.NewClient(cfg.ProjectEndpoint, cfg.APIKey, cfg.APIVersion, cfg.RequestTimeout)
	eng := interview.New(cfg, client, session.New(), logger)

	fmt.Fprintln(out, colorize(colors, ansiDim, "Creating agent..."))
	if err := eng.Bootstrap(ctx); err != nil {
		logger.Error("failed to create agent or thread", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n",
			colorize(colors, ansiBoldRed, "Error creating agent or thread:"), err)
		eng.Cleanup(context.Background())
		return nil
	}

	runLoop(ctx, eng, cmd.InOrStdin(), out, cmd.ErrOrStderr(), colors)

	// Teardown runs on a fresh context so a cancelled interview still
	// deletes the remote agent and saves the transcript.
	fmt.Fprintln(out, colorize(colors, ansiDim, "Deleting agent..."))
	eng.Cleanup(context.Background())
	return nil
}

// newLogger writes structured logs to the configured file and mirrors
// them to stderr so the conversation log stays visible in the terminal.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		logger.Warn("cannot open log file, logging to stderr only", "path", cfg.LogFile, "error", err)
		return logger, func() {}
	}

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(file, os.Stderr), opts))
	return logger, func() { _ = file.Close() }
}

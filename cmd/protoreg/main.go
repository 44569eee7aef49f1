package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chainregistry/protoreg"
)

var (
	// Global flags
	rootDir string
	verbose bool
)

// errValidationFailed signals a non-zero exit after the report has already
// been printed; main suppresses it so the summary line is the last output.
var errValidationFailed = errors.New("validation failed")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "protoreg",
	Short: "Validate and export a protocol metadata registry",
	Long: `protoreg checks a registry of protocol metadata records: one JSON/JSONC
file per protocol, each declaring a name, description, categories,
documentation links, and labeled contract addresses.

Structural checks run offline. Contract verification and link liveness
go out to the network and are opt-in (validate --probe, or the probe
subcommand).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newRunner(opts ...protoreg.Option) (*protoreg.Runner, error) {
	opts = append([]protoreg.Option{protoreg.WithLogger(newLogger())}, opts...)
	return protoreg.NewRunner(rootDir, opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "registry root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "list passing files and verified contracts too")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(probeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

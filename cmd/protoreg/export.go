package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chainregistry/protoreg/export"
)

var (
	exportNetwork string
	exportOut     string
	exportFormat  string
)

// exportCmd flattens schema-valid records into a table, one row per
// labeled contract.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the partition's protocols as CSV or JSON rows",
	Long: `Writes one row per labeled contract address, sorted by category type,
subtype, protocol name, and contract label. Records that fail schema
validation are skipped with a warning.

Use -o - to write to stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportNetwork, "network", "n", "testnet", "network partition to export")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default from config; - for stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv or json (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	runner, err := newRunner()
	if err != nil {
		return err
	}
	cfg := runner.Config()
	if !cfg.HasNetwork(exportNetwork) {
		return fmt.Errorf("unknown network %q (configured: %v)", exportNetwork, cfg.Networks)
	}

	name := exportFormat
	if name == "" {
		name = cfg.Export.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf(cfg.Export.Out, exportNetwork)
	}

	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := runner.Export(cmd.Context(), exportNetwork, w, format)
	if err != nil {
		return err
	}
	if out != "-" {
		fmt.Printf("Exported %d rows to %s\n", n, out)
	}
	return nil
}

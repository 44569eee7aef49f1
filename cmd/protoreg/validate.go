package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chainregistry/protoreg/report"
)

var (
	validateNetwork  string
	validateProtocol string
	validateProbe    bool
)

// validateCmd runs the offline checks, optionally followed by the network
// liveness pass.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check one network partition for schema and consistency violations",
	Long: `Parses every record in the partition and checks required fields, category
membership, address format, duplicate labels across files, and overlap
with the canonical contract set. Exits non-zero if any error-severity
violation is found.

With --probe, contract verification and link liveness results are folded
into the same report.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateNetwork, "network", "n", "testnet", "network partition to check")
	validateCmd.Flags().StringVarP(&validateProtocol, "protocol", "p", "", "check a single protocol instead of the whole corpus")
	validateCmd.Flags().BoolVar(&validateProbe, "probe", false, "also verify contracts and check link liveness")
}

func runValidate(cmd *cobra.Command, args []string) error {
	runner, err := newRunner()
	if err != nil {
		return err
	}
	if !runner.Config().HasNetwork(validateNetwork) {
		return fmt.Errorf("unknown network %q (configured: %v)", validateNetwork, runner.Config().Networks)
	}

	ctx := cmd.Context()
	result, err := runner.Validate(ctx, validateNetwork, validateProtocol)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(os.Stdout, verbose)

	if validateProbe {
		summary, err := runner.Probe(ctx, validateNetwork, validateProtocol)
		if err != nil {
			return err
		}
		result.Report.Add(summary.Violations()...)
		printer.PrintReport(result.Report, result.Files)
		fmt.Println()
		printer.PrintProbeSummary(summary)
	} else {
		printer.PrintReport(result.Report, result.Files)
	}

	if !result.Report.OK() {
		return errValidationFailed
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chainregistry/protoreg"
	"github.com/chainregistry/protoreg/report"
	"github.com/chainregistry/protoreg/violation"
)

var (
	probeNetwork  string
	probeProtocol string
	probeWorkers  int
)

// probeCmd runs just the network liveness pass, without the structural
// checks.
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Verify contract source and check documentation links",
	Long: `Queries the contract verification API for every labeled address and
issues a liveness check against every documentation link. Requires the
verification API key in the environment (see api_key_env in
protoreg.yaml; BLOCKVISION_API_KEY by default).

Unverified contracts are warnings; dead links fail the run.`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVarP(&probeNetwork, "network", "n", "testnet", "network partition to probe")
	probeCmd.Flags().StringVarP(&probeProtocol, "protocol", "p", "", "probe a single protocol instead of the whole corpus")
	probeCmd.Flags().IntVar(&probeWorkers, "workers", 0, "probe pool size (default from config)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	var opts []protoreg.Option
	if probeWorkers > 0 {
		opts = append(opts, protoreg.WithProbeWorkers(probeWorkers))
	}
	runner, err := newRunner(opts...)
	if err != nil {
		return err
	}
	cfg := runner.Config()
	if !cfg.HasNetwork(probeNetwork) {
		return fmt.Errorf("unknown network %q (configured: %v)", probeNetwork, cfg.Networks)
	}

	summary, err := runner.Probe(cmd.Context(), probeNetwork, probeProtocol)
	if err != nil {
		return err
	}

	report.NewPrinter(os.Stdout, verbose).PrintProbeSummary(summary)

	for _, v := range summary.Violations() {
		if v.Severity == violation.SeverityError {
			return errValidationFailed
		}
	}
	return nil
}

// Package protoreg validates and exports a registry of protocol metadata
// records: one JSON/JSONC file per on-chain protocol, each declaring a name,
// description, category tags, documentation links, and labeled contract
// addresses.
//
// # Validation model
//
// A validation run works in three stages:
//
//   - Single-file schema checks: required fields, category format and
//     membership, address format (package schema).
//   - Corpus-wide consistency checks: no address known under two different
//     labels, no protocol re-declaring a canonical contract (package corpus).
//   - An opt-in network liveness pass: contract verification against a
//     remote API and documentation-link reachability (package probe).
//
// Every problem found anywhere in a run is collected into one
// violation.Report rather than aborting at the first failure, so a single
// run surfaces everything there is to fix.
//
// # Usage
//
//	runner, err := protoreg.NewRunner("/path/to/registry",
//	    protoreg.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := runner.Validate(ctx, "mainnet", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Report.OK() {
//	    // render result.Report and exit non-zero
//	}
//
// The registry root holds one directory per network partition (testnet,
// mainnet), a categories.json with the allowed category tags, and inside
// each partition exactly one canonical-contracts file.
package protoreg

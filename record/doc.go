// Package record defines the protocol metadata record and its on-disk
// representation.
//
// A record is one JSON or JSONC file describing a named on-chain protocol:
// its description, category tags, documentation links, and labeled contract
// addresses. The package provides parsing (with comment-tolerant JSON via
// hujson), address canonicalization, and directory loading for a network
// partition (e.g. testnet or mainnet).
//
// Parsing is deliberately permissive: structural validity is the concern of
// the schema package, and corpus-wide consistency is the concern of the
// corpus package. A file that fails to parse at all is reported as a
// ParseFailure and does not abort loading of the rest of the partition.
package record

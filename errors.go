package protoreg

import "errors"

// Sentinel errors for run-level failures. Everything recoverable at the
// scope of one file, one address, or one probe is reported as a violation
// instead; these errors are the conditions a run cannot proceed past.
var (
	// ErrPartitionNotFound indicates the requested network partition
	// directory does not exist or is unreadable.
	ErrPartitionNotFound = errors.New("network partition not found")

	// ErrCanonicalNotFound indicates the partition has no readable
	// canonical-contracts file.
	ErrCanonicalNotFound = errors.New("canonical contracts file not found")

	// ErrProtocolNotFound indicates the protocol named on the command
	// line does not exist in the partition.
	ErrProtocolNotFound = errors.New("protocol not found")

	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingAPIKey indicates contract verification was requested but
	// no API key is available.
	ErrMissingAPIKey = errors.New("verification API key required")
)

package revshare

import "errors"

// ErrInvalidRevenueShareBps is the recoverable twin of the basis-point
// bound: TryRegisterOffering returns it where RegisterOffering aborts
// the whole invocation.
var ErrInvalidRevenueShareBps = errors.New("invalid revenue share: bps exceeds 10000")

// Fatal abort messages.
const (
	// ErrRevenueShareBps is thrown by RegisterOffering when the share
	// exceeds MaxRevenueShareBps.
	ErrRevenueShareBps = "revenue share bps exceeds 10000"
	// ErrEmptyMetadataURI is thrown when a metadata URI is empty.
	ErrEmptyMetadataURI = "Metadata URI cannot be empty"
	// ErrMetadataURITooLong is thrown when a metadata URI exceeds
	// MaxMetadataLen bytes.
	ErrMetadataURITooLong = "Metadata URI exceeds maximum length of 1024 bytes"
	// ErrNoMetadataFound is thrown by UpdateMetadata and DeleteMetadata
	// when no entry exists for the offering.
	ErrNoMetadataFound = "No metadata found for offering"
	// ErrAmountOutOfRange is thrown by ReportRevenue when the amount
	// does not fit a signed 128-bit integer.
	ErrAmountOutOfRange = "amount exceeds signed 128-bit range"
)

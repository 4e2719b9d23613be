package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConnectionError reports an RPC or aggregator endpoint that is unreachable
// or misconfigured.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AggregatorRejection reports an aggregator that refused a bundle. Payload is
// the response body exactly as received.
type AggregatorRejection struct {
	Failures []TransactionFailure
	Payload  string
}

func (e *AggregatorRejection) Error() string {
	return "aggregator rejected bundle: " + e.Payload
}

// InvalidInputError reports a malformed key, address, value or calldata.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsConnectionError reports whether err wraps a *ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsAggregatorRejection reports whether err wraps an *AggregatorRejection.
func IsAggregatorRejection(err error) bool {
	var ar *AggregatorRejection
	return errors.As(err, &ar)
}

// IsInvalidInput reports whether err wraps an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

package types

import "encoding/json"

// TransactionFailure is one failure reported by the aggregator for a bundle.
type TransactionFailure struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// AddBundleResponse is the decoded answer to a bundle submission. It is
// either BundleAccepted or BundleRejected.
type AddBundleResponse interface {
	isAddBundleResponse()
}

// BundleAccepted carries the hash the aggregator assigned to the bundle.
type BundleAccepted struct {
	Hash string
}

// BundleRejected carries every failure and the response body as received.
type BundleRejected struct {
	Failures []TransactionFailure
	Raw      json.RawMessage
}

func (BundleAccepted) isAddBundleResponse() {}
func (BundleRejected) isAddBundleResponse() {}

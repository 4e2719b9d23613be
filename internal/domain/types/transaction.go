package types

// TransactionResult is a bundle the aggregator accepted. It is pending: the
// aggregator submits it on chain later.
type TransactionResult struct {
	Network Network `json:"network"`
	Hash    string  `json:"hash"`
}

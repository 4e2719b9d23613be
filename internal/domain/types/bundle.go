package types

// SendTransactionParams is one call the account should execute. Value is a
// decimal wei amount and Data is hex calldata; both may be left empty.
type SendTransactionParams struct {
	To    string `json:"to"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data,omitempty"`
}

// Action is a single call inside an operation, in the aggregator's wire form.
type Action struct {
	EthValue        string `json:"ethValue"`
	ContractAddress string `json:"contractAddress"`
	EncodedFunction string `json:"encodedFunction"`
}

// Operation is the unit a wallet signs: a nonce plus the actions to run
// atomically.
type Operation struct {
	Nonce   string   `json:"nonce"`
	Actions []Action `json:"actions"`
}

// BLSPublicKey is a G2 point as four 32-byte hex words (x.im, x.re, y.im, y.re).
type BLSPublicKey [4]string

// BLSSignature is a G1 point as two 32-byte hex words (x, y).
type BLSSignature [2]string

// Bundle is one or more signed operations submitted to an aggregator. The
// i-th public key signed the i-th operation.
type Bundle struct {
	SenderPublicKeys []BLSPublicKey `json:"senderPublicKeys"`
	Operations       []Operation    `json:"operations"`
	Signature        BLSSignature   `json:"signature"`
}

package types

// PrivateKey is a hex-encoded BLS secret key. String and Format hide the
// value so keys do not leak through logs or %v.
type PrivateKey string

// String returns a redacted placeholder.
func (k PrivateKey) String() string { return "[REDACTED]" }

// GoString returns a redacted placeholder.
func (k PrivateKey) GoString() string { return "[REDACTED]" }

// Hex returns the raw hex form. Only call it to show the key to its owner.
func (k PrivateKey) Hex() string { return string(k) }

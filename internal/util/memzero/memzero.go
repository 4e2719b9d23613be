// Package memzero clears key material from memory.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	runtime.KeepAlive(b)
}

// Words zeroes a fixed-size limb array such as a field element.
func Words(w []uint64) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}

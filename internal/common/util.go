package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from crypto/rand. It returns nil
// when the system random source fails.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil
	}
	return b
}

// WipeByteArray overwrites the contents of b with zeros. It is used to drop
// plaintext passwords read from the terminal as soon as they are consumed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

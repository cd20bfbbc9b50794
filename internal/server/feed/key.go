package feed

import (
	"encoding/binary"
	"fmt"
)

// keySize is the exact on-disk key width: one big-endian signed 64-bit
// timestamp (seconds since epoch). Fixed-width big-endian encoding makes
// the engine's byte order equal to numeric order, so iterating keys is
// iterating timestamps.
const keySize = 8

// EncodeKey encodes a timestamp as an 8-byte big-endian key.
func EncodeKey(ts int64) []byte {
	key := make([]byte, keySize)
	binary.BigEndian.PutUint64(key, uint64(ts))
	return key
}

// DecodeKey decodes an 8-byte big-endian key back into a timestamp.
func DecodeKey(key []byte) (int64, error) {
	if len(key) != keySize {
		return 0, fmt.Errorf("key is %d bytes, want %d", len(key), keySize)
	}
	return int64(binary.BigEndian.Uint64(key)), nil
}

package feed

import "fmt"

// DecodeError reports a stored record whose bytes are not valid UTF-8 text
// or not a valid JSON field mapping. It aborts the whole page read: one
// corrupt record poisons the page instead of being silently dropped, so
// data loss stays visible.
type DecodeError struct {
	// Key is the record's timestamp key, or 0 when the key itself could
	// not be decoded.
	Key int64
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding record %d: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StoreError reports a failure of the underlying storage engine (open,
// iterator, read I/O). It is distinct from DecodeError: the engine failed,
// not the stored bytes.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("feed store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

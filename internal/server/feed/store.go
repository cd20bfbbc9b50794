// Package feed wraps the embedded ordered key-value engine that persists
// timestamped content records. Keys are 8-byte big-endian timestamps, so
// the engine's natural key order is chronological; values are UTF-8 JSON
// objects of string fields.
package feed

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/cockroachdb/pebble"
)

// Options are performance knobs for the engine. None of them is observable
// in query results; they trade CPU, memory and durability against
// throughput, nothing else.
type Options struct {
	// Compression selects the on-disk block compression: "snappy"
	// (default), "zstd" or "none". Logical content is unaffected.
	Compression string

	// CompactionParallelism bounds concurrent background compactions.
	// Zero keeps the engine default.
	CompactionParallelism int

	// PointLookupCacheBytes sizes the block cache used by single-key
	// lookups. The pagination workload never does point reads, but the
	// cache must not break iteration either way. Zero keeps the default.
	PointLookupCacheBytes int64

	// SyncBatchBytes is the number of written bytes buffered before a
	// forced flush to stable storage. Zero keeps the engine default.
	SyncBatchBytes int
}

func (o Options) pebbleOptions() (*pebble.Options, error) {
	var compression pebble.Compression
	switch o.Compression {
	case "", "snappy":
		compression = pebble.SnappyCompression
	case "zstd":
		compression = pebble.ZstdCompression
	case "none":
		compression = pebble.NoCompression
	default:
		return nil, fmt.Errorf("unknown compression %q", o.Compression)
	}

	opts := &pebble.Options{}
	opts.Levels = make([]pebble.LevelOptions, 7)
	for i := range opts.Levels {
		opts.Levels[i].Compression = compression
	}

	if o.CompactionParallelism > 0 {
		n := o.CompactionParallelism
		opts.MaxConcurrentCompactions = func() int { return n }
	}
	if o.SyncBatchBytes > 0 {
		opts.BytesPerSync = o.SyncBatchBytes
	}
	if o.PointLookupCacheBytes > 0 {
		opts.Cache = pebble.NewCache(o.PointLookupCacheBytes)
	}

	return opts, nil
}

// Store owns the engine handle for the process lifetime. Iteration state is
// call-local (each ReadLatest opens its own iterator), so concurrent reads
// are safe without exclusive access.
type Store struct {
	db *pebble.DB
}

// Open opens the store at path, creating it if absent.
func Open(path string, o Options) (*Store, error) {
	opts, err := o.pebbleOptions()
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	if opts.Cache != nil {
		// The DB takes its own reference; drop ours once Open returns.
		defer opts.Cache.Unref()
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	return &Store{db: db}, nil
}

// ReadLatest returns up to count records, newest first, after skipping the
// skip newest ones.
//
// The reverse iterator visits entries numbered 0, 1, 2, … from the largest
// key down. Entries before skip are discarded without decoding. The page
// boundary is exclusive: indices [skip, skip+count) are returned, so a page
// never holds more than count records.
//
// Any record in the page failing UTF-8 or JSON decoding aborts the whole
// call with a *DecodeError; no partial page is returned. Engine failures
// surface as *StoreError. Both are ordinary recoverable values. A skip at
// or past the end of the store yields an empty page and no error.
func (s *Store) ReadLatest(skip, count int) ([]map[string]string, error) {
	if skip < 0 {
		skip = 0
	}
	if count < 0 {
		count = 0
	}

	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, &StoreError{Op: "iterator", Err: err}
	}
	defer iter.Close()

	records := make([]map[string]string, 0, count)

	idx := 0
	for ok := iter.Last(); ok; ok = iter.Prev() {
		if idx >= skip {
			if len(records) == count {
				break
			}
			record, err := decodeRecord(iter.Key(), iter.Value())
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		idx++
	}

	if err := iter.Error(); err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}

	return records, nil
}

func decodeRecord(key, value []byte) (map[string]string, error) {
	ts, err := DecodeKey(key)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	// json.Unmarshal replaces invalid UTF-8 inside strings instead of
	// failing, so the text check has to happen first.
	if !utf8.Valid(value) {
		return nil, &DecodeError{Key: ts, Err: fmt.Errorf("value is not valid UTF-8")}
	}

	var fields map[string]string
	if err := json.Unmarshal(value, &fields); err != nil {
		return nil, &DecodeError{Key: ts, Err: err}
	}

	return fields, nil
}

// Close flushes and closes the engine handle. Call only at process
// shutdown; the handle is owned for the process lifetime.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return &StoreError{Op: "close", Err: err}
	}
	return nil
}

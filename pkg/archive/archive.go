// Package archive persists completed planning runs to an embedded KV
// store for offline comparison across scenario runs (spec.md §4.12,
// C14). It does not back the graph-search core's in-memory StateSpace:
// the core's "Persisted state: None" invariant (spec.md §6) is
// unaffected by anything in this package.
package archive

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/cockroachdb/pebble"

	"github.com/yugo1103/motion-primitive-library/pkg/gridenv"
)

// Record is one archived run: the trajectory plus its search statistics.
type Record struct {
	RunID      string
	ScenarioID string
	Primitives []gridenv.ActionRecord
	Cost       float64
	Expansions int
	WallNanos  int64
	Eps        float64
}

// Archive wraps a pebble KV store, compressing each Record with zstd
// before writing it — the teacher's own compress-then-store pattern
// (pkg/kv/kv_db.go, pkg/kv/zstd_compression.go), with encoding/gob
// substituting for the teacher's kelindar/binary encoder: that
// dependency is listed in the teacher's go.mod but never exercised in
// any retrieved teacher file (see DESIGN.md), so this repository doesn't
// introduce it.
type Archive struct {
	db *pebble.DB
}

// Open opens (creating if absent) a pebble database at dir.
func Open(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", dir, err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying pebble handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Put gob-encodes and zstd-compresses rec, then writes it under runID.
func (a *Archive) Put(runID string, rec Record) error {
	rec.RunID = runID

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return fmt.Errorf("archive: encode %s: %w", runID, err)
	}
	compressed, err := zstd.Compress(nil, buf.Bytes())
	if err != nil {
		return fmt.Errorf("archive: compress %s: %w", runID, err)
	}
	if err := a.db.Set([]byte(runID), compressed, pebble.Sync); err != nil {
		return fmt.Errorf("archive: write %s: %w", runID, err)
	}
	return nil
}

// Get decompresses and gob-decodes the record stored under runID.
func (a *Archive) Get(runID string) (Record, error) {
	val, closer, err := a.db.Get([]byte(runID))
	if err != nil {
		return Record{}, fmt.Errorf("archive: get %s: %w", runID, err)
	}
	defer closer.Close()

	raw, err := zstd.Decompress(nil, val)
	if err != nil {
		return Record{}, fmt.Errorf("archive: decompress %s: %w", runID, err)
	}
	var rec Record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("archive: decode %s: %w", runID, err)
	}
	return rec, nil
}

// List returns every run ID whose key starts with prefix.
func (a *Archive) List(prefix string) ([]string, error) {
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upperBound([]byte(prefix)),
	})
	if err != nil {
		return nil, fmt.Errorf("archive: list %s: %w", prefix, err)
	}
	defer iter.Close()

	var ids []string
	for iter.First(); iter.Valid(); iter.Next() {
		ids = append(ids, string(iter.Key()))
	}
	return ids, iter.Error()
}

// upperBound returns the smallest key strictly greater than every key
// with prefix p, the usual pebble idiom for a prefix-bounded iterator.
func upperBound(p []byte) []byte {
	end := make([]byte, len(p))
	copy(end, p)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

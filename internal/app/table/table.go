// Package table holds the embedding result table and the stores that persist
// it between runs.
package table

import (
	"github.com/samber/lo"

	"memo2vec/internal/app/model"
)

// Table is an append-only, ordered collection of chunk records indexed by
// chunk hash.
type Table struct {
	rows   []model.ChunkRecord
	hashes map[string]struct{}
}

// New returns a table holding rows in the given order.
func New(rows ...model.ChunkRecord) *Table {
	t := &Table{hashes: make(map[string]struct{}, len(rows))}
	t.Append(rows...)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the rows in insertion order. The slice must not be modified.
func (t *Table) Rows() []model.ChunkRecord {
	if t == nil {
		return nil
	}
	return t.rows
}

// Contains reports whether any row carries chunkHash, whatever its source.
func (t *Table) Contains(chunkHash string) bool {
	if t == nil {
		return false
	}
	_, ok := t.hashes[chunkHash]
	return ok
}

// Append adds rows at the end.
func (t *Table) Append(rows ...model.ChunkRecord) {
	for _, r := range rows {
		t.rows = append(t.rows, r)
		t.hashes[r.ChunkHash] = struct{}{}
	}
}

// Concat returns a new table with the rows of prior followed by the rows of
// added. Either side may be nil.
func Concat(prior, added *Table) *Table {
	out := New(prior.Rows()...)
	out.Append(added.Rows()...)
	return out
}

// Sources returns the distinct source names in first-seen order.
func (t *Table) Sources() []string {
	return lo.Uniq(lo.Map(t.Rows(), func(r model.ChunkRecord, _ int) string {
		return r.SourceName
	}))
}

// Package chunker splits transcript text into fixed-size windows that start
// every stride characters.
package chunker

import (
	"iter"

	"memo2vec/internal/app/errors"
)

// Validate reports whether size and stride can drive a chunk walk.
func Validate(size, stride int) error {
	if size <= 0 {
		return errors.InvalidField("chunk size", "must be positive")
	}
	if stride <= 0 {
		return errors.InvalidField("stride", "must be positive")
	}
	return nil
}

// Chunks lazily yields (offset, content[offset:offset+size]) for offsets
// 0, stride, 2*stride, ... while offset < len(content). Offsets and lengths
// count Unicode code points, so a chunk never splits a multi-byte character.
// The final chunk may be shorter than size. When stride > size the
// characters between windows are not covered.
//
// content must be non-empty; callers substitute a placeholder for empty
// transcripts. size and stride must be positive (see Validate).
func Chunks(content string, size, stride int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		runes := []rune(content)
		for offset := 0; offset < len(runes); offset += stride {
			end := min(offset+size, len(runes))
			if !yield(offset, string(runes[offset:end])) {
				return
			}
		}
	}
}

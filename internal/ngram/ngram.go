// Package ngram cuts lines into overlapping windows of N consecutive UTF-8 characters.
package ngram

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidN - Returned from New when N is less than one
var ErrInvalidN = errors.New("n-gram length must be at least 1")

// Splitter - Produces the n-grams of a line. The start offsets of the last N characters are kept in a ring,
// so each line is decoded once. A byte that does not start a valid UTF-8 sequence counts as one character.
type Splitter struct {
	n      int
	starts []int
}

// New - Returns a Splitter for windows of n characters
func New(n int) (splitter *Splitter, err error) {
	if n < 1 {
		err = ErrInvalidN
		return
	}

	splitter = &Splitter{n: n, starts: make([]int, n)}

	return
}

// N - Returns the window length in characters
func (S *Splitter) N() int {
	return S.n
}

// Each - Calls fn for every n-gram of line, left to right. Lines shorter than N bytes produce nothing.
// The slices passed to fn are sub-slices of line.
//   - line is the text to split, without line terminator
//   - fn is called once per n-gram, an error from fn stops the split and is returned
func (S *Splitter) Each(line []byte, fn func(gram []byte) error) (err error) {
	if len(line) < S.n {
		return
	}

	S.starts[0] = 0
	chars := 0
	for pos := 0; pos < len(line); {
		_, size := utf8.DecodeRune(line[pos:])
		pos += size
		chars++

		slot := chars % S.n
		if chars >= S.n {
			if err = fn(line[S.starts[slot]:pos]); err != nil {
				return
			}
		}
		S.starts[slot] = pos
	}

	return
}

// Split - Returns every n-gram of line, see Each
func (S *Splitter) Split(line []byte) (grams [][]byte) {
	_ = S.Each(line, func(gram []byte) error {
		grams = append(grams, gram)
		return nil
	})

	return
}

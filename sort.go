package countmap

import (
	"bytes"
	"cmp"
	"slices"
)

// SortKey - What to order records by
type SortKey int

const (
	// SortNone - Keep enumeration order
	SortNone SortKey = iota
	// SortByText - Order by lexicographic byte comparison of the text
	SortByText
	// SortByCount - Order by count, equal counts ordered by text ascending
	SortByCount
)

// SortOrder - Direction of the ordering
type SortOrder int

const (
	// Ascending - Smallest first
	Ascending SortOrder = iota
	// Descending - Largest first
	Descending
)

// Records - Returns all entries as a slice in enumeration order
func (F *CountMap) Records() (records []Record) {
	records = make([]Record, 0, F.used)
	for text, count := range F.All() {
		records = append(records, Record{Text: text, Count: count})
	}

	return
}

// Sorted - Returns all entries as a slice ordered by key in the given direction.
// Texts are distinct so ordering by text is total. When ordering by count, records with equal counts are
// ordered by text ascending in both directions, making the result independent of the hash algorithm.
//   - key is the sort key, SortNone gives enumeration order
//   - order is Ascending or Descending, ignored for SortNone
func (F *CountMap) Sorted(key SortKey, order SortOrder) (records []Record) {
	records = F.Records()
	SortRecords(records, key, order)

	return
}

// SortRecords - Sorts records in place, see Sorted for the ordering rules
func SortRecords(records []Record, key SortKey, order SortOrder) {
	var compare func(a, b Record) int

	switch key {
	case SortByText:
		compare = func(a, b Record) int {
			return direction(order) * bytes.Compare(a.Text, b.Text)
		}
	case SortByCount:
		compare = func(a, b Record) int {
			if c := cmp.Compare(a.Count, b.Count); c != 0 {
				return direction(order) * c
			}
			return bytes.Compare(a.Text, b.Text)
		}
	default:
		return
	}

	slices.SortFunc(records, compare)
}

// direction - Returns the multiplier turning an ascending comparison into one for order
func direction(order SortOrder) int {
	if order == Descending {
		return -1
	}
	return 1
}

package countmap

import (
	"iter"

	"github.com/gostonefire/countmap/internal/model"
	"github.com/gostonefire/countmap/internal/overflow"
)

// Record - One distinct string and its count.
// Text refers to memory owned by the count map, it must not be modified and is only valid until Release.
type Record struct {
	Text  []byte
	Count uint64
}

// EntryIterator - Is used to iterate over all entries of a count map one by one, in bucket order and, within a
// bucket, most recently added first. The order is otherwise unspecified; every entry is returned exactly once.
// The count map must not be modified while an iteration is in progress.
type EntryIterator struct {
	countMap *CountMap
	bucketNo int
	chain    *overflow.Records
}

// Entries - Returns a new EntryIterator positioned before the first entry
func (F *CountMap) Entries() *EntryIterator {
	return &EntryIterator{
		countMap: F,
		bucketNo: -1,
		chain:    overflow.NewRecords(F.getEntry, model.NoEntry),
	}
}

// HasNext - Returns true if there are more entries to be fetched from a call to Next.
func (E *EntryIterator) HasNext() bool {
	for !E.chain.HasNext() {
		E.bucketNo++
		if E.bucketNo >= len(E.countMap.buckets) {
			return false
		}
		E.chain = overflow.NewRecords(E.countMap.getEntry, E.countMap.buckets[E.bucketNo])
	}

	return true
}

// Next - Returns the next entry.
// It returns:
//   - record is the text and count of the next entry.
//   - err is of type NoRecordFound if there are no more entries when calling this function.
func (E *EntryIterator) Next() (record Record, err error) {
	if !E.HasNext() {
		err = NoRecordFound{}
		return
	}

	_, entry, err := E.chain.Next()
	if err != nil {
		return
	}

	record = Record{Text: entry.Text, Count: entry.Count}

	return
}

// All - Returns an iterator over every text and its count, in the same order as Entries
func (F *CountMap) All() iter.Seq2[[]byte, uint64] {
	return func(yield func([]byte, uint64) bool) {
		it := F.Entries()
		for it.HasNext() {
			record, err := it.Next()
			if err != nil {
				return
			}
			if !yield(record.Text, record.Count) {
				return
			}
		}
	}
}

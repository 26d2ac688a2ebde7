package countmap

import (
	"bytes"
	"math"

	"github.com/gostonefire/countmap/internal/conf"
	"github.com/gostonefire/countmap/internal/model"
	"github.com/gostonefire/countmap/internal/overflow"
	"github.com/gostonefire/countmap/internal/utils"
)

// Stat - Statistics on the overall usage and distribution over buckets
//   - Entries is the number of distinct strings stored
//   - Total is the sum of all counts
//   - Buckets is the number of buckets
//   - UsedBuckets is the number of buckets with at least one entry
//   - LongestChain is the number of entries in the longest bucket chain
//   - LoadFactor is Entries divided by Buckets
//   - Resizes is the number of times the bucket array has grown
//   - HashAlgorithm is the name of the hash algorithm in use
//   - ArenaBlocks, ArenaOversized, ArenaBytesReserved, ArenaBytesUsed and ArenaBytesAbandoned describe the text arena
//   - BucketDistribution is the number of entries in each bucket, nil unless asked for
type Stat struct {
	Entries             int
	Total               uint64
	Buckets             int
	UsedBuckets         int
	LongestChain        int
	LoadFactor          float64
	Resizes             int
	HashAlgorithm       string
	ArenaBlocks         int
	ArenaOversized      int
	ArenaBytesReserved  uint64
	ArenaBytesUsed      uint64
	ArenaBytesAbandoned uint64
	BucketDistribution  []int
}

// Add - Increments the count of text by one, adding text with a count of one if it is not already present.
// The bytes of text are copied, so the caller is free to reuse the buffer.
//   - text is the string to count, any byte sequence including the empty one is valid
//
// It returns:
//   - err is of type CountOverflow if the count of text is already at its maximum (the count is left unchanged),
//     of type AllocationFailure if memory for a new string could not be obtained, or of type TableSizeOverflow
//     if the table needed to grow but could not (text has then still been added).
func (F *CountMap) Add(text []byte) (err error) {
	digest := F.hashAlgorithm.Digest(text)
	bucketNo := F.bucketNo(digest)

	entry := F.find(bucketNo, digest, text)
	if entry != nil {
		if entry.Count == math.MaxUint64 {
			err = CountOverflow{Text: bytes.Clone(entry.Text), Limit: entry.Count}
			return
		}
		entry.Count++
		F.addTotal()
		return
	}

	index, err := F.entries.Append(digest, text, F.buckets[bucketNo])
	if err != nil {
		return
	}
	F.buckets[bucketNo] = index
	F.used++
	F.addTotal()

	if uint64(F.used)*conf.LoadFactorDenominator > uint64(F.size)*conf.LoadFactorNumerator {
		err = F.resize()
	}

	return
}

// AddString - Same as Add but for a string
func (F *CountMap) AddString(text string) (err error) {
	return F.Add([]byte(text))
}

// Count - Returns the count of text.
//   - text is the string to look up
//
// It returns:
//   - count is the number of times text has been added
//   - err is of type NoRecordFound if text has never been added
func (F *CountMap) Count(text []byte) (count uint64, err error) {
	digest := F.hashAlgorithm.Digest(text)

	entry := F.find(F.bucketNo(digest), digest, text)
	if entry == nil {
		err = NoRecordFound{}
		return
	}

	count = entry.Count

	return
}

// Stat - Walks through the entire set of buckets and produces a Stat struct with information.
//   - includeDistribution set to true will include a slice of length Buckets with the number of entries per bucket,
//     false will leave Stat.BucketDistribution nil.
func (F *CountMap) Stat(includeDistribution bool) (stat Stat) {
	arenaStats := F.entries.ArenaStats()

	stat = Stat{
		Entries:             int(F.used),
		Total:               F.total,
		Buckets:             int(F.size),
		LoadFactor:          float64(F.used) / float64(F.size),
		Resizes:             F.resizes,
		HashAlgorithm:       F.hashAlgorithm.Name(),
		ArenaBlocks:         arenaStats.Blocks,
		ArenaOversized:      arenaStats.Oversized,
		ArenaBytesReserved:  arenaStats.BytesReserved,
		ArenaBytesUsed:      arenaStats.BytesUsed,
		ArenaBytesAbandoned: arenaStats.BytesAbandoned,
	}

	if includeDistribution {
		stat.BucketDistribution = make([]int, F.size)
	}

	for i, head := range F.buckets {
		if head == model.NoEntry {
			continue
		}

		chainLength := 0
		iter := overflow.NewRecords(F.getEntry, head)
		for iter.HasNext() {
			_, _, _ = iter.Next()
			chainLength++
		}

		stat.UsedBuckets++
		if chainLength > stat.LongestChain {
			stat.LongestChain = chainLength
		}
		if includeDistribution {
			stat.BucketDistribution[i] = chainLength
		}
	}

	return
}

// BucketNo - Returns which bucket the given text currently maps to
//   - text is the string to locate
func (F *CountMap) BucketNo(text []byte) int {
	return int(F.bucketNo(F.hashAlgorithm.Digest(text)))
}

// addTotal - Increments the sum of all counts, which stops at math.MaxUint64
func (F *CountMap) addTotal() {
	if F.total < math.MaxUint64 {
		F.total++
	}
}

// bucketNo - Reduces a digest to a bucket number
func (F *CountMap) bucketNo(digest uint64) uint32 {
	return uint32(digest % uint64(F.size))
}

// find - Searches the chain of a bucket for text, comparing digests before bytes.
// It returns a pointer to the matching entry, or nil if there is none.
func (F *CountMap) find(bucketNo uint32, digest uint64, text []byte) (entry *model.Entry) {
	iter := overflow.NewRecords(F.getEntry, F.buckets[bucketNo])
	for iter.HasNext() {
		_, e, err := iter.Next()
		if err != nil {
			return
		}
		if e.Digest == digest && utils.IsEqual(e.Text, text) {
			entry = e
			return
		}
	}

	return
}

// resize - Grows the bucket array to the next prime above twice its current size and relinks every entry into
// the chain given by its stored digest. Texts are neither rehashed nor moved. The new bucket array replaces the
// old one only when every entry has been relinked.
//
// It returns:
//   - err is of type TableSizeOverflow if the new size would exceed the max table size, the table is then
//     left untouched.
func (F *CountMap) resize() (err error) {
	doubled := uint64(F.size) * conf.GrowthFactor
	if doubled > uint64(F.maxSize) {
		err = TableSizeOverflow{Size: uint64(F.size), Limit: uint64(F.maxSize)}
		return
	}

	newSize := utils.NextPrime(doubled)
	if newSize > uint64(F.maxSize) {
		err = TableSizeOverflow{Size: uint64(F.size), Limit: uint64(F.maxSize)}
		return
	}

	buckets := newBuckets(newSize)
	for _, head := range F.buckets {
		// Next has already moved past an entry when it is returned, so relinking it does not break the walk
		iter := overflow.NewRecords(F.getEntry, head)
		for iter.HasNext() {
			index, entry, _ := iter.Next()
			bucketNo := entry.Digest % newSize
			entry.Next = buckets[bucketNo]
			buckets[bucketNo] = index
		}
	}

	oldSize := F.size
	F.buckets = buckets
	F.size = uint32(newSize)
	F.resizes++

	if F.onResize != nil {
		F.onResize(int(oldSize), int(newSize))
	}

	return
}

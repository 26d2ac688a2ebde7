// Package countmap provides an in-memory exact frequency counter for byte strings.
//
// A CountMap deduplicates strings and keeps one count per distinct string. Strings are hashed once, stored
// in separate chaining buckets addressed by digest modulo a prime bucket count, and copied into an arena
// that is only released as a whole. When the load factor exceeds 0.75 the bucket array grows to the next
// prime above twice its size, relinking entries by their stored digests.
//
// A CountMap is not safe for concurrent use, and it must not be modified while it is being enumerated.
package countmap

import (
	"fmt"

	"github.com/gostonefire/countmap/hashfunc"
	"github.com/gostonefire/countmap/internal/arena"
	"github.com/gostonefire/countmap/internal/conf"
	"github.com/gostonefire/countmap/internal/hash"
	"github.com/gostonefire/countmap/internal/model"
	"github.com/gostonefire/countmap/internal/storage"
	"github.com/gostonefire/countmap/internal/utils"
)

// TableConf - Is a struct to be passed in the call to New and contains the count map configuration.
// Zero values select defaults.
//   - InitialSize is the number of buckets to start with, rounded up to the nearest prime (default 1031)
//   - MaxTableSize is the max number of buckets the table may grow to (default 2^31-1)
//   - HashAlgorithm is an optional custom digest function following the hashfunc.HashAlgorithm interface
//   - PoolSize is the size of each arena pool block (default 64 KiB)
//   - PooledThreshold is the longest string carved out of a pool block (default 64 bytes)
//   - MemoryLimit caps the number of bytes the arena may obtain, zero means no limit
//   - OnResize is an optional hook called after every resize with the old and new number of buckets
type TableConf struct {
	InitialSize     uint32
	MaxTableSize    uint32
	HashAlgorithm   hashfunc.HashAlgorithm
	PoolSize        int
	PooledThreshold int
	MemoryLimit     uint64
	OnResize        func(oldSize, newSize int)
}

// TableInfo - Information structure describing how the count map was set up
//   - InitialSize is the actual (prime) number of buckets the count map started with
//   - MaxTableSize is the max number of buckets the table may grow to
//   - MemoryLimit is the arena memory limit, zero if unlimited
//   - HashAlgorithm is the name of the hash algorithm in use
//   - InternalAlgorithm is true if the hash algorithm is the internal default rather than a supplied one
type TableInfo struct {
	InitialSize       int
	MaxTableSize      int
	MemoryLimit       uint64
	HashAlgorithm     string
	InternalAlgorithm bool
}

// CountMap - The main implementation struct
type CountMap struct {
	buckets       []int32
	size          uint32
	used          uint32
	maxSize       uint32
	total         uint64
	resizes       int
	entries       *storage.Entries
	getEntry      func(int32) *model.Entry
	hashAlgorithm hashfunc.HashAlgorithm
	info          TableInfo
	onResize      func(oldSize, newSize int)
}

// New - Returns a new, empty, count map.
//   - tableConf is the configuration, see TableConf for defaults
//
// It returns:
//   - countMap is a pointer to a CountMap struct
//   - err is a normal go Error which should be nil if everything went ok
func New(tableConf TableConf) (countMap *CountMap, err error) {
	initialSize := tableConf.InitialSize
	if initialSize == 0 {
		initialSize = conf.DefaultInitialSize
	}
	maxSize := tableConf.MaxTableSize
	if maxSize == 0 {
		maxSize = conf.DefaultMaxTableSize
	}
	if maxSize > conf.DefaultMaxTableSize {
		err = fmt.Errorf("max table size %d is above the supported maximum of %d", maxSize, conf.DefaultMaxTableSize)
		return
	}

	size := utils.NextPrime(uint64(initialSize))
	if size > uint64(maxSize) {
		err = fmt.Errorf("initial size %d (rounded up to prime %d) exceeds max table size %d", initialSize, size, maxSize)
		return
	}

	// If no HashAlgorithm was given then use the default internal
	hashAlgorithm := tableConf.HashAlgorithm
	internalAlg := false
	if hashAlgorithm == nil {
		hashAlgorithm = hash.NewDefaultHashAlgorithm()
		internalAlg = true
	}

	entries, err := storage.NewEntries(arena.Conf{
		PoolSize:        tableConf.PoolSize,
		PooledThreshold: tableConf.PooledThreshold,
		MemoryLimit:     tableConf.MemoryLimit,
	})
	if err != nil {
		err = fmt.Errorf("error while creating entry storage: %w", err)
		return
	}

	countMap = &CountMap{
		buckets:       newBuckets(size),
		size:          uint32(size),
		maxSize:       maxSize,
		entries:       entries,
		getEntry:      entries.Get,
		hashAlgorithm: hashAlgorithm,
		onResize:      tableConf.OnResize,
		info: TableInfo{
			InitialSize:       int(size),
			MaxTableSize:      int(maxSize),
			MemoryLimit:       tableConf.MemoryLimit,
			HashAlgorithm:     hashAlgorithm.Name(),
			InternalAlgorithm: internalAlg,
		},
	}

	return
}

// Info - Returns information about how the count map was set up
func (F *CountMap) Info() TableInfo {
	return F.info
}

// Len - Returns the number of distinct strings in the count map
func (F *CountMap) Len() int {
	return int(F.used)
}

// Total - Returns the sum of all counts, which equals the number of successful calls to Add.
// The sum saturates at math.MaxUint64 rather than wrapping around.
func (F *CountMap) Total() uint64 {
	return F.total
}

// Size - Returns the current number of buckets
func (F *CountMap) Size() int {
	return int(F.size)
}

// Resizes - Returns the number of times the bucket array has grown
func (F *CountMap) Resizes() int {
	return F.resizes
}

// Release - Drops every entry and all memory held by the count map. The count map is empty afterwards and can
// be reused, starting over at its initial size.
func (F *CountMap) Release() {
	F.entries.Release()
	F.buckets = newBuckets(uint64(F.info.InitialSize))
	F.size = uint32(F.info.InitialSize)
	F.used = 0
	F.total = 0
	F.resizes = 0
}

// newBuckets - Returns a bucket array of the given size with every chain empty
func newBuckets(size uint64) (buckets []int32) {
	buckets = make([]int32, size)
	for i := range buckets {
		buckets[i] = model.NoEntry
	}

	return
}

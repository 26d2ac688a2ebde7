// Package arena implements the monotonic allocator that holds the text of every count map entry.
//
// Small strings are carved out of large pool blocks with a bump pointer, larger strings get an allocation of
// their own. Nothing handed out is ever moved or freed individually; the whole arena is dropped at once.
package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/gostonefire/countmap/internal/conf"
	"github.com/gostonefire/countmap/internal/utils"
)

// Alignment - Pooled allocations start on pointer width boundaries
const Alignment = int(unsafe.Sizeof(uintptr(0)))

// ErrLimitExceeded - Returned when an allocation would take the arena above its memory limit
var ErrLimitExceeded = errors.New("arena memory limit exceeded")

// ErrInvalidConf - Returned from New when the configuration is inconsistent
var ErrInvalidConf = errors.New("invalid arena configuration")

// Conf - Configuration of an Arena
//   - PoolSize is the size of each pool block, zero means conf.DefaultPoolSize
//   - PooledThreshold is the largest request served from a pool block, zero means conf.DefaultPooledThreshold
//   - MemoryLimit caps the total number of bytes the arena may obtain, zero means no limit
type Conf struct {
	PoolSize        int
	PooledThreshold int
	MemoryLimit     uint64
}

// Stats - Allocation statistics of an Arena
//   - Blocks is the number of pool blocks started
//   - Oversized is the number of requests that got an allocation of their own
//   - Allocations is the number of non-empty requests served
//   - BytesReserved is the number of bytes obtained for blocks and oversized requests
//   - BytesUsed is the number of bytes handed out
//   - BytesAbandoned is the number of bytes left unused at the tail of retired blocks
type Stats struct {
	Blocks         int
	Oversized      int
	Allocations    int
	BytesReserved  uint64
	BytesUsed      uint64
	BytesAbandoned uint64
}

// Arena - Bump allocator for same-lifetime byte strings
type Arena struct {
	poolSize        int
	pooledThreshold int
	memoryLimit     uint64
	block           []byte
	offset          int
	stats           Stats
}

// New - Returns a pointer to a new Arena. No memory is obtained until the first allocation.
func New(arenaConf Conf) (arena *Arena, err error) {
	if arenaConf.PoolSize < 0 || arenaConf.PooledThreshold < 0 {
		err = fmt.Errorf("%w: sizes can not be negative", ErrInvalidConf)
		return
	}

	if arenaConf.PoolSize == 0 {
		arenaConf.PoolSize = conf.DefaultPoolSize
	}
	if arenaConf.PooledThreshold == 0 {
		arenaConf.PooledThreshold = conf.DefaultPooledThreshold
	}

	if arenaConf.PooledThreshold > arenaConf.PoolSize {
		err = fmt.Errorf("%w: pooled threshold %d is larger than pool size %d",
			ErrInvalidConf, arenaConf.PooledThreshold, arenaConf.PoolSize)
		return
	}

	arena = &Arena{
		poolSize:        arenaConf.PoolSize,
		pooledThreshold: arenaConf.PooledThreshold,
		memoryLimit:     arenaConf.MemoryLimit,
	}

	return
}

// Alloc - Returns a writable slice of n bytes that stays valid for the lifetime of the arena.
// The slice is capacity limited to n, so appending to it never overwrites a neighbouring allocation.
//   - n is the number of bytes requested
//
// It returns:
//   - buf is the allocated region
//   - err wraps ErrLimitExceeded if the memory limit would be exceeded
func (A *Arena) Alloc(n int) (buf []byte, err error) {
	if n < 0 {
		err = fmt.Errorf("negative allocation size %d", n)
		return
	}
	if n == 0 {
		buf = []byte{}
		return
	}

	if n > A.pooledThreshold {
		err = A.reserve(uint64(n))
		if err != nil {
			return
		}
		buf = make([]byte, n)
		A.stats.Oversized++
	} else {
		start := utils.AlignUp(A.offset, Alignment)
		if A.block == nil || start+n > len(A.block) {
			err = A.reserve(uint64(A.poolSize))
			if err != nil {
				return
			}
			if A.block != nil {
				A.stats.BytesAbandoned += uint64(len(A.block) - A.offset)
			}
			A.block = make([]byte, A.poolSize)
			A.stats.Blocks++
			start = 0
		}
		buf = A.block[start : start+n : start+n]
		A.offset = start + n
	}

	A.stats.Allocations++
	A.stats.BytesUsed += uint64(n)

	return
}

// Copy - Allocates len(src) bytes and copies src into them
func (A *Arena) Copy(src []byte) (buf []byte, err error) {
	buf, err = A.Alloc(len(src))
	if err != nil {
		return
	}
	_ = copy(buf, src)

	return
}

// Stats - Returns the current allocation statistics
func (A *Arena) Stats() Stats {
	return A.stats
}

// Release - Drops the current block and resets statistics. Slices handed out earlier stay valid for as long
// as the caller references them, but the arena no longer does.
func (A *Arena) Release() {
	A.block = nil
	A.offset = 0
	A.stats = Stats{}
}

// reserve - Accounts for n more bytes obtained from the runtime, failing if that breaks the memory limit
func (A *Arena) reserve(n uint64) (err error) {
	if A.memoryLimit > 0 && A.stats.BytesReserved+n > A.memoryLimit {
		err = fmt.Errorf("%w: %d more bytes requested with %d of %d bytes already reserved",
			ErrLimitExceeded, n, A.stats.BytesReserved, A.memoryLimit)
		return
	}
	A.stats.BytesReserved += n

	return
}

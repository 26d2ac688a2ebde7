package storage

import (
	"fmt"
	"math"

	"github.com/gostonefire/countmap/crt"
	"github.com/gostonefire/countmap/internal/arena"
	"github.com/gostonefire/countmap/internal/model"
)

// Entries - Owns every entry of a count map. Entry headers live in one slice addressed by index, the entry
// texts live in an arena. Entries are never removed one by one, only all together by Release.
type Entries struct {
	entries     []model.Entry
	arena       *arena.Arena
	memoryLimit uint64
}

// NewEntries - Returns a pointer to a new, empty, entry store
//   - arenaConf is the configuration of the arena holding entry texts
func NewEntries(arenaConf arena.Conf) (entries *Entries, err error) {
	a, err := arena.New(arenaConf)
	if err != nil {
		return
	}

	entries = &Entries{arena: a, memoryLimit: arenaConf.MemoryLimit}

	return
}

// Append - Copies text into the arena and adds a new entry with count 1.
//   - digest is the digest of text
//   - text is the string of the new entry, it is copied so the caller may reuse its buffer
//   - next is the index of the entry that follows the new one in its bucket chain
//
// It returns:
//   - index is the index of the new entry
//   - err is of type crt.AllocationFailure if memory could not be obtained
func (S *Entries) Append(digest uint64, text []byte, next int32) (index int32, err error) {
	if len(S.entries) >= math.MaxInt32 {
		err = crt.NewAllocationFailure(uint64(len(text)), S.memoryLimit, fmt.Errorf("entry index space exhausted"))
		return
	}

	stored, err := S.arena.Copy(text)
	if err != nil {
		err = crt.NewAllocationFailure(uint64(len(text)), S.memoryLimit, err)
		return
	}

	index = int32(len(S.entries))
	S.entries = append(S.entries, model.Entry{
		Digest: digest,
		Count:  1,
		Text:   stored,
		Next:   next,
	})

	return
}

// Get - Returns a pointer to the entry with the given index. The pointer is valid until the next Append.
func (S *Entries) Get(index int32) *model.Entry {
	return &S.entries[index]
}

// Len - Returns the number of entries
func (S *Entries) Len() int {
	return len(S.entries)
}

// ArenaStats - Returns the allocation statistics of the text arena
func (S *Entries) ArenaStats() arena.Stats {
	return S.arena.Stats()
}

// Release - Drops all entries and the arena holding their texts
func (S *Entries) Release() {
	S.entries = nil
	S.arena.Release()
}

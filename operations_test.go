//go:build integration

package countmap

import (
	"errors"
	"fmt"
	"github.com/gostonefire/countmap/hashfunc"
	"github.com/gostonefire/countmap/internal/hash"
	"github.com/gostonefire/countmap/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"math/rand"
	"testing"
)

type TestCaseOperations struct {
	algName string
	hFunc   hashfunc.HashAlgorithm
}

func testCases() []TestCaseOperations {
	tests := []TestCaseOperations{
		{algName: "Default", hFunc: nil},
		{algName: "Constant", hFunc: constantHashAlgorithm{}},
		{algName: "FirstByte", hFunc: firstByteHashAlgorithm{}},
	}
	for _, name := range hash.Names() {
		h, _ := hash.ByName(name)
		tests = append(tests, TestCaseOperations{algName: name, hFunc: h})
	}

	return tests
}

// snapshot - Returns the content of a count map as a Go map
func snapshot(t *testing.T, cm *CountMap) map[string]uint64 {
	content := make(map[string]uint64)
	for text, count := range cm.All() {
		_, seen := content[string(text)]
		assert.False(t, seen, "%q enumerated once", text)
		content[string(text)] = count
	}

	return content
}

// randomLines - Returns n lines drawn from a vocabulary of distinct lines, so most lines repeat
func randomLines(rnd *rand.Rand, n, distinct int) (lines []string) {
	lines = make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", rnd.Intn(distinct))
	}

	return
}

func TestCountMap_Add(t *testing.T) {
	t.Run("add tests for all hash algorithms", func(t *testing.T) {
		for _, test := range testCases() {
			t.Run(fmt.Sprintf("counts occurrences for %s", test.algName), func(t *testing.T) {
				// Prepare
				cm, err := New(TableConf{HashAlgorithm: test.hFunc})
				require.NoError(t, err, "create count map")

				// Execute
				for _, s := range []string{"a", "b", "a", "c", "a", "b"} {
					err = cm.AddString(s)
					require.NoError(t, err, "add %s", s)
				}

				// Check
				assert.Equal(t, 3, cm.Len(), "distinct strings")
				assert.Equal(t, uint64(6), cm.Total(), "total")
				assert.Equal(t, map[string]uint64{"a": 3, "b": 2, "c": 1}, snapshot(t, cm), "counts")
			})

			t.Run(fmt.Sprintf("matches a reference map for %s", test.algName), func(t *testing.T) {
				// Prepare
				cm, err := New(TableConf{InitialSize: 7, HashAlgorithm: test.hFunc})
				require.NoError(t, err, "create count map")
				rnd := rand.New(rand.NewSource(1))
				lines := randomLines(rnd, 3000, 500)
				reference := make(map[string]uint64)

				// Execute
				for _, line := range lines {
					err = cm.AddString(line)
					require.NoError(t, err, "add %s", line)
					reference[line]++
				}

				// Check
				content := snapshot(t, cm)
				assert.Equal(t, reference, content, "same content as reference")
				assert.Equal(t, len(reference), cm.Len(), "distinct count")

				var sum uint64
				for _, count := range content {
					sum += count
				}
				assert.Equal(t, uint64(len(lines)), sum, "sum of counts equals number of adds")
				assert.Equal(t, uint64(len(lines)), cm.Total(), "total equals number of adds")
				assert.LessOrEqual(t, uint64(cm.Len())*4, uint64(cm.Size())*3, "load factor at most 0.75")
				assert.True(t, utils.IsPrime(uint64(cm.Size())), "size is prime")
			})
		}
	})

	t.Run("empty string is a valid key", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")

		// Execute
		require.NoError(t, cm.Add(nil), "add nil")
		require.NoError(t, cm.Add([]byte{}), "add empty")

		// Check
		count, err := cm.Count([]byte(""))
		require.NoError(t, err, "count empty string")
		assert.Equal(t, uint64(2), count, "nil and empty are the same key")
		assert.Equal(t, 1, cm.Len(), "one distinct string")
	})

	t.Run("caller may reuse its buffer", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")
		buf := []byte("first")

		// Execute
		require.NoError(t, cm.Add(buf), "add")
		copy(buf, "other")

		// Check
		count, err := cm.Count([]byte("first"))
		require.NoError(t, err, "original text still present")
		assert.Equal(t, uint64(1), count, "count")
		_, err = cm.Count([]byte("other"))
		assert.True(t, errors.Is(err, NoRecordFound{}), "buffer change not visible")
	})

	t.Run("binary strings and strings sharing a digest are kept apart", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{HashAlgorithm: firstByteHashAlgorithm{}})
		require.NoError(t, err, "create count map")
		keys := [][]byte{{'x', 0}, {'x', 0, 0}, {'x'}, {'x', 1}, {0}, {}}

		// Execute
		for i, key := range keys {
			for j := 0; j <= i; j++ {
				require.NoError(t, cm.Add(key), "add %v", key)
			}
		}

		// Check
		for i, key := range keys {
			count, err := cm.Count(key)
			require.NoError(t, err, "count %v", key)
			assert.Equal(t, uint64(i+1), count, "count of %v", key)
		}
	})

	t.Run("fails with count overflow at the max count", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")
		require.NoError(t, cm.AddString("hot"), "add")
		cm.entries.Get(0).Count = math.MaxUint64

		// Execute
		err = cm.AddString("hot")

		// Check
		assert.True(t, errors.Is(err, CountOverflow{}), "count overflow")
		var overflowErr CountOverflow
		require.True(t, errors.As(err, &overflowErr), "error carries details")
		assert.Equal(t, "hot", string(overflowErr.Text), "offending string")
		assert.Equal(t, uint64(math.MaxUint64), overflowErr.Limit, "count limit")
		assert.Contains(t, err.Error(), "hot", "diagnostic names the string")

		count, err := cm.Count([]byte("hot"))
		require.NoError(t, err, "still present")
		assert.Equal(t, uint64(math.MaxUint64), count, "count not wrapped")
		assert.NoError(t, cm.AddString("cold"), "other strings unaffected")
	})

	t.Run("total saturates at the max count", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")
		require.NoError(t, cm.AddString("hot"), "add")
		cm.entries.Get(0).Count = math.MaxUint64 - 1
		cm.total = math.MaxUint64 - 1

		// Execute
		require.NoError(t, cm.AddString("hot"), "reach the max count")
		require.NoError(t, cm.AddString("cold"), "add another string")

		// Check
		assert.Equal(t, uint64(math.MaxUint64), cm.Total(), "total not wrapped")
		count, err := cm.Count([]byte("cold"))
		require.NoError(t, err, "other string counted")
		assert.Equal(t, uint64(1), count, "count of other string")
	})

	t.Run("fails with allocation failure when the memory limit is reached", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{PoolSize: 64, PooledThreshold: 64, MemoryLimit: 64})
		require.NoError(t, err, "create count map")
		for i := 0; i < 8; i++ {
			require.NoError(t, cm.AddString(fmt.Sprintf("str%05d", i)), "eight aligned 8 byte strings fit one block")
		}

		// Execute
		err = cm.AddString("str99999")

		// Check
		assert.True(t, errors.Is(err, AllocationFailure{}), "allocation failure")
		assert.Equal(t, 8, cm.Len(), "failed string not added")
		assert.Equal(t, uint64(8), cm.Total(), "failed string not counted")
		assert.NoError(t, cm.AddString("str00000"), "existing strings still count")
	})
}

func TestCountMap_Resize(t *testing.T) {
	t.Run("resizes exactly once when the load factor passes 0.75", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")
		oldSize := cm.Size()
		threshold := oldSize*3/4 + 1

		for i := 0; i < threshold-1; i++ {
			require.NoError(t, cm.AddString(fmt.Sprintf("key-%d", i)), "add")
		}
		require.Zero(t, cm.Resizes(), "no resize below the threshold")
		before := snapshot(t, cm)

		// Execute
		err = cm.AddString("the one that tips it")

		// Check
		require.NoError(t, err, "add")
		assert.Equal(t, 1, cm.Resizes(), "exactly one resize")
		assert.Equal(t, int(utils.NextPrime(uint64(2*oldSize))), cm.Size(), "grown to next prime above double")

		before["the one that tips it"] = 1
		assert.Equal(t, before, snapshot(t, cm), "same entries after resize")
	})

	t.Run("repeated resizes preserve every text and count", func(t *testing.T) {
		for _, test := range testCases() {
			t.Run(test.algName, func(t *testing.T) {
				// Prepare
				var sizes [][2]int
				cm, err := New(TableConf{
					InitialSize:   2,
					HashAlgorithm: test.hFunc,
					OnResize:      func(oldSize, newSize int) { sizes = append(sizes, [2]int{oldSize, newSize}) },
				})
				require.NoError(t, err, "create count map")
				reference := make(map[string]uint64)

				// Execute
				for i := 0; i < 2000; i++ {
					key := fmt.Sprintf("%x", i%700)
					require.NoError(t, cm.AddString(key), "add")
					reference[key]++
				}

				// Check
				assert.Equal(t, reference, snapshot(t, cm), "content preserved")
				assert.Equal(t, cm.Resizes(), len(sizes), "hook called on every resize")
				for _, s := range sizes {
					assert.Equal(t, int(utils.NextPrime(uint64(2*s[0]))), s[1], "growth step %d -> %d", s[0], s[1])
				}
			})
		}
	})

	t.Run("fails with table size overflow at the max table size", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{InitialSize: 11, MaxTableSize: 20})
		require.NoError(t, err, "create count map")
		for i := 0; i < 8; i++ {
			require.NoError(t, cm.AddString(fmt.Sprintf("k%d", i)), "add")
		}

		// Execute
		err = cm.AddString("k8")

		// Check
		assert.True(t, errors.Is(err, TableSizeOverflow{}), "table size overflow")
		assert.Contains(t, err.Error(), "20", "diagnostic names the limit")
		assert.Equal(t, 11, cm.Size(), "table left at old size")
		assert.Equal(t, 9, cm.Len(), "string was still added")
		count, err := cm.Count([]byte("k8"))
		require.NoError(t, err, "string findable")
		assert.Equal(t, uint64(1), count, "counted once")
	})

	t.Run("grows up to a prime max table size", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{InitialSize: 11, MaxTableSize: 23})
		require.NoError(t, err, "create count map")

		// Execute
		for i := 0; i < 9; i++ {
			require.NoError(t, cm.AddString(fmt.Sprintf("k%d", i)), "add")
		}

		// Check
		assert.Equal(t, 23, cm.Size(), "grown to the limit")
	})
}

func TestCountMap_InsertionOrder(t *testing.T) {
	t.Run("final state does not depend on insertion order", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(7))
		lines := randomLines(rnd, 5000, 1500)
		shuffled := append([]string(nil), lines...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		first, err := New(TableConf{InitialSize: 5})
		require.NoError(t, err, "create first count map")
		second, err := New(TableConf{InitialSize: 5})
		require.NoError(t, err, "create second count map")

		// Execute
		for i := range lines {
			require.NoError(t, first.AddString(lines[i]), "add to first")
			require.NoError(t, second.AddString(shuffled[i]), "add to second")
		}

		// Check
		assert.Equal(t, snapshot(t, first), snapshot(t, second), "same final content")
		assert.Equal(t, first.Sorted(SortByCount, Descending), second.Sorted(SortByCount, Descending), "same sorted output")
	})
}

func TestCountMap_Count(t *testing.T) {
	t.Run("returns no record found for unknown strings", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")
		require.NoError(t, cm.AddString("known"), "add")

		// Execute
		count, err := cm.Count([]byte("unknown"))

		// Check
		assert.True(t, errors.Is(err, NoRecordFound{}), "no record found")
		assert.Zero(t, count, "zero count")
		assert.EqualError(t, err, "no record found", "default message")
	})
}

func TestCountMap_Entries(t *testing.T) {
	t.Run("iterates every entry exactly once", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{HashAlgorithm: constantHashAlgorithm{}})
		require.NoError(t, err, "create count map")
		for _, s := range []string{"x", "y", "z", "y"} {
			require.NoError(t, cm.AddString(s), "add")
		}

		// Execute
		var records []Record
		iter := cm.Entries()
		for iter.HasNext() {
			record, err := iter.Next()
			require.NoError(t, err, "next")
			records = append(records, record)
		}

		// Check
		assert.Equal(t, []Record{
			{Text: []byte("z"), Count: 1},
			{Text: []byte("y"), Count: 2},
			{Text: []byte("x"), Count: 1},
		}, records, "most recently added first within a chain")

		_, err = iter.Next()
		assert.True(t, errors.Is(err, NoRecordFound{}), "exhausted iterator")
	})

	t.Run("empty count map has nothing to iterate", func(t *testing.T) {
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")

		assert.False(t, cm.Entries().HasNext(), "no entries")
		assert.Empty(t, cm.Records(), "no records")
	})

	t.Run("range over All stops when asked", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")
		for i := 0; i < 10; i++ {
			require.NoError(t, cm.AddString(fmt.Sprint(i)), "add")
		}

		// Execute
		visited := 0
		for range cm.All() {
			visited++
			if visited == 3 {
				break
			}
		}

		// Check
		assert.Equal(t, 3, visited, "stopped early")
	})
}

func TestCountMap_Stat(t *testing.T) {
	t.Run("reports chain statistics", func(t *testing.T) {
		// Prepare
		cm, err := New(TableConf{HashAlgorithm: constantHashAlgorithm{}})
		require.NoError(t, err, "create count map")
		for _, s := range []string{"a", "b", "c", "a"} {
			require.NoError(t, cm.AddString(s), "add")
		}

		// Execute
		stat := cm.Stat(true)

		// Check
		assert.Equal(t, 3, stat.Entries, "entries")
		assert.Equal(t, uint64(4), stat.Total, "total")
		assert.Equal(t, 1031, stat.Buckets, "buckets")
		assert.Equal(t, 1, stat.UsedBuckets, "single bucket in use")
		assert.Equal(t, 3, stat.LongestChain, "all in one chain")
		assert.InDelta(t, 3.0/1031.0, stat.LoadFactor, 1e-9, "load factor")
		assert.Equal(t, "constant", stat.HashAlgorithm, "hash algorithm")
		assert.Equal(t, 1, stat.ArenaBlocks, "one arena block")
		assert.Equal(t, uint64(3), stat.ArenaBytesUsed, "three one byte strings")
		require.Len(t, stat.BucketDistribution, 1031, "distribution per bucket")
		assert.Equal(t, 3, stat.BucketDistribution[42%1031], "chain in bucket of the constant digest")
	})

	t.Run("omits distribution unless asked", func(t *testing.T) {
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")

		assert.Nil(t, cm.Stat(false).BucketDistribution, "no distribution")
	})
}

func TestCountMap_BucketNo(t *testing.T) {
	t.Run("bucket number is within the table", func(t *testing.T) {
		cm, err := New(TableConf{})
		require.NoError(t, err, "create count map")

		for i := 0; i < 100; i++ {
			b := cm.BucketNo([]byte(fmt.Sprint(i)))
			assert.GreaterOrEqual(t, b, 0, "lower bound")
			assert.Less(t, b, cm.Size(), "upper bound")
		}
	})
}

//go:build integration

package countmap

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strconv"
	"testing"
)

// newCounted - Returns a count map holding the given counts, strings added in the given order
func newCounted(t *testing.T, order []string, counts map[string]int) *CountMap {
	cm, err := New(TableConf{HashAlgorithm: constantHashAlgorithm{}})
	require.NoError(t, err, "create count map")

	for _, text := range order {
		for i := 0; i < counts[text]; i++ {
			require.NoError(t, cm.AddString(text), "add %s", text)
		}
	}

	return cm
}

// asPairs - Flattens records to text:count strings for readable comparisons
func asPairs(records []Record) (pairs []string) {
	for _, record := range records {
		pairs = append(pairs, string(record.Text)+":"+strconv.FormatUint(record.Count, 10))
	}
	return
}

func TestSortRecords(t *testing.T) {
	type testCase struct {
		name     string
		key      SortKey
		order    SortOrder
		expected []string
	}

	t.Run("sorts by every key and direction", func(t *testing.T) {
		tests := []testCase{
			{name: "text ascending", key: SortByText, order: Ascending, expected: []string{"a:3", "b:2", "c:1"}},
			{name: "text descending", key: SortByText, order: Descending, expected: []string{"c:1", "b:2", "a:3"}},
			{name: "count ascending", key: SortByCount, order: Ascending, expected: []string{"c:1", "b:2", "a:3"}},
			{name: "count descending", key: SortByCount, order: Descending, expected: []string{"a:3", "b:2", "c:1"}},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				// Prepare
				cm := newCounted(t, []string{"b", "a", "c"}, map[string]int{"b": 2, "a": 3, "c": 1})

				// Execute
				records := cm.Sorted(test.key, test.order)

				// Check
				assert.Equal(t, test.expected, asPairs(records), "sorted records")
			})
		}
	})

	t.Run("orders equal counts by text ascending in both directions", func(t *testing.T) {
		tests := []testCase{
			{name: "count ascending", key: SortByCount, order: Ascending, expected: []string{"a:1", "x:1", "m:2"}},
			{name: "count descending", key: SortByCount, order: Descending, expected: []string{"m:2", "a:1", "x:1"}},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				// Prepare
				cm := newCounted(t, []string{"x", "a", "m"}, map[string]int{"x": 1, "a": 1, "m": 2})

				// Execute
				records := cm.Sorted(test.key, test.order)

				// Check
				assert.Equal(t, test.expected, asPairs(records), "sorted records")
			})
		}
	})

	t.Run("sort none keeps enumeration order", func(t *testing.T) {
		// Prepare
		cm := newCounted(t, []string{"b", "a", "c"}, map[string]int{"b": 2, "a": 3, "c": 1})
		enumerated := cm.Records()

		// Execute
		ascending := cm.Sorted(SortNone, Ascending)
		descending := cm.Sorted(SortNone, Descending)

		// Check
		assert.Equal(t, []string{"c:1", "a:3", "b:2"}, asPairs(enumerated), "most recently added first in one chain")
		assert.Equal(t, enumerated, ascending, "ascending ignored")
		assert.Equal(t, enumerated, descending, "descending ignored")
	})

	t.Run("sorts a plain slice in place", func(t *testing.T) {
		// Prepare
		records := []Record{
			{Text: []byte("b"), Count: 2},
			{Text: []byte("a"), Count: 2},
			{Text: []byte("c"), Count: 5},
		}

		// Execute
		SortRecords(records, SortByCount, Descending)

		// Check
		assert.Equal(t, []string{"c:5", "a:2", "b:2"}, asPairs(records), "sorted in place")
	})

	t.Run("empty input", func(t *testing.T) {
		cm := newCounted(t, nil, nil)

		assert.Empty(t, cm.Sorted(SortByCount, Descending), "nothing to sort")
	})
}

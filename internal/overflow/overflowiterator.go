package overflow

import (
	"github.com/gostonefire/countmap/crt"
	"github.com/gostonefire/countmap/internal/model"
)

// Records - Is used to iterate over the entries of one bucket chain one by one.
type Records struct {
	getEntryFunc func(int32) *model.Entry
	index        int32
}

// NewRecords - Returns a pointer to a new Records struct
//   - getEntryFunc resolves an entry index to the entry
//   - head is the index of the first entry in the chain, model.NoEntry for an empty chain
func NewRecords(getEntryFunc func(int32) *model.Entry, head int32) *Records {

	return &Records{
		getEntryFunc: getEntryFunc,
		index:        head,
	}
}

// HasNext - Returns true if there are more entries to be fetched from a call to Next.
func (O *Records) HasNext() bool {
	return O.index != model.NoEntry
}

// Next - Returns the next entry in the chain.
// It returns:
//   - index is the index of the entry
//   - entry is a pointer to the entry itself, the count may be updated through it
//   - err is of type crt.NoRecordFound if there are no more entries when calling this function.
func (O *Records) Next() (index int32, entry *model.Entry, err error) {
	if O.index == model.NoEntry {
		err = crt.NoRecordFound{}
		return
	}

	index = O.index
	entry = O.getEntryFunc(index)
	O.index = entry.Next

	return
}

package crt

import "fmt"

// NoRecordFound - Custom error to inform that no record was found
type NoRecordFound struct{}

// Error - Used to notify that no record was found
func (E NoRecordFound) Error() string {
	return "no record found"
}

// Is - Matches any NoRecordFound
func (E NoRecordFound) Is(target error) bool {
	_, ok := target.(NoRecordFound)
	return ok
}

// CountOverflow - Custom error to inform that incrementing the count of a string would wrap around
//   - Text is the string whose count is saturated
//   - Limit is the largest representable count, which the string has already reached
type CountOverflow struct {
	Text  []byte
	Limit uint64
}

// Error - Used to notify that a count can't be incremented
func (C CountOverflow) Error() string {
	if C.Limit == 0 {
		return "count overflow"
	}
	return fmt.Sprintf("count overflow: %q already counted %d times, the maximum count", abbreviate(C.Text), C.Limit)
}

// Is - Matches any CountOverflow regardless of payload
func (C CountOverflow) Is(target error) bool {
	_, ok := target.(CountOverflow)
	return ok
}

// TableSizeOverflow - Custom error to inform that the bucket array can't grow any further
//   - Size is the current number of buckets
//   - Limit is the max number of buckets permitted
type TableSizeOverflow struct {
	Size  uint64
	Limit uint64
}

// Error - Used to notify that the table can't be resized
func (T TableSizeOverflow) Error() string {
	if T.Limit == 0 {
		return "table size overflow"
	}
	return fmt.Sprintf("table size overflow: can not grow %d buckets beyond the limit of %d", T.Size, T.Limit)
}

// Is - Matches any TableSizeOverflow regardless of payload
func (T TableSizeOverflow) Is(target error) bool {
	_, ok := target.(TableSizeOverflow)
	return ok
}

// AllocationFailure - Custom error to inform that memory for a new entry could not be obtained
//   - Requested is the number of bytes that was asked for
//   - Limit is the configured memory limit of the arena
type AllocationFailure struct {
	Requested uint64
	Limit     uint64
	cause     error
}

// NewAllocationFailure - Returns an AllocationFailure caused by err
func NewAllocationFailure(requested, limit uint64, err error) AllocationFailure {
	return AllocationFailure{Requested: requested, Limit: limit, cause: err}
}

// Error - Used to notify that memory could not be obtained
func (A AllocationFailure) Error() string {
	if A.cause == nil {
		return "allocation failure"
	}
	return fmt.Sprintf("allocation failure: %d bytes requested: %s", A.Requested, A.cause)
}

// Unwrap - Returns the underlying allocator error
func (A AllocationFailure) Unwrap() error {
	return A.cause
}

// Is - Matches any AllocationFailure regardless of payload
func (A AllocationFailure) Is(target error) bool {
	_, ok := target.(AllocationFailure)
	return ok
}

// maxQuoted - Number of bytes of an offending string that is included in an error message
const maxQuoted = 64

// abbreviate - Cuts text down to maxQuoted bytes for use in error messages
func abbreviate(text []byte) []byte {
	if len(text) <= maxQuoted {
		return text
	}
	return text[:maxQuoted]
}

package countmap

import "github.com/gostonefire/countmap/crt"

// NoRecordFound - Custom error to inform that no record was found
type NoRecordFound = crt.NoRecordFound

// CountOverflow - Custom error to inform that a count would wrap past its maximum. The count is left unchanged.
type CountOverflow = crt.CountOverflow

// TableSizeOverflow - Custom error to inform that the number of distinct strings has outgrown the largest
// permitted bucket array
type TableSizeOverflow = crt.TableSizeOverflow

// AllocationFailure - Custom error to inform that the arena could not provide memory for a new string
type AllocationFailure = crt.AllocationFailure

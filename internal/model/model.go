package model

// NoEntry - Index value terminating a chain or marking an empty bucket
const NoEntry int32 = -1

// Entry - Represents one distinct string stored in the count map
//   - Digest is the hash of Text, computed once when the entry is created and reused on every resize
//   - Count is the number of times Text has been added
//   - Text is an arena backed copy of the string, never modified after creation
//   - Next is the index of the next entry in the same bucket chain, or NoEntry
type Entry struct {
	Digest uint64
	Count  uint64
	Text   []byte
	Next   int32
}

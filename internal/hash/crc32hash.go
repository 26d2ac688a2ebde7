package hash

import "hash/crc32"

// CRC32HashAlgorithm - Digest computed with crc32.ChecksumIEEE over the text
type CRC32HashAlgorithm struct{}

// NewCRC32HashAlgorithm - Returns a pointer to a new CRC32HashAlgorithm instance
func NewCRC32HashAlgorithm() *CRC32HashAlgorithm {
	return &CRC32HashAlgorithm{}
}

// Digest - Returns the IEEE CRC32 of text, zero extended
func (C *CRC32HashAlgorithm) Digest(text []byte) uint64 {
	return uint64(crc32.ChecksumIEEE(text))
}

// Name - Returns the algorithm name
func (C *CRC32HashAlgorithm) Name() string {
	return "crc32"
}

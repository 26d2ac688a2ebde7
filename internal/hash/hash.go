package hash

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gostonefire/countmap/hashfunc"
	"github.com/gostonefire/countmap/internal/conf"
)

// constructors - Internal hash algorithms by name
var constructors = map[string]func() hashfunc.HashAlgorithm{
	"fnv32":    func() hashfunc.HashAlgorithm { return NewFNV32HashAlgorithm() },
	"fnv64":    func() hashfunc.HashAlgorithm { return NewFNV64HashAlgorithm() },
	"fnv1a64":  func() hashfunc.HashAlgorithm { return NewFNV1a64HashAlgorithm() },
	"crc32":    func() hashfunc.HashAlgorithm { return NewCRC32HashAlgorithm() },
	"xxhash64": func() hashfunc.HashAlgorithm { return NewXXHash64HashAlgorithm() },
}

// NewDefaultHashAlgorithm - Returns the hash algorithm used when a count map is created without one
func NewDefaultHashAlgorithm() hashfunc.HashAlgorithm {
	return constructors[conf.DefaultHashAlgorithm]()
}

// ByName - Returns a new instance of the internal hash algorithm with the given name.
// An empty name gives the default algorithm.
func ByName(name string) (hashAlgorithm hashfunc.HashAlgorithm, err error) {
	if name == "" {
		name = conf.DefaultHashAlgorithm
	}

	constructor, ok := constructors[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown hash algorithm %q, valid names are %s", name, strings.Join(Names(), ", "))
		return
	}

	hashAlgorithm = constructor()

	return
}

// Names - Returns the names of all internal hash algorithms in alphabetical order
func Names() (names []string) {
	names = make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)

	return
}

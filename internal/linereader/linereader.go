// Package linereader splits input files into lines for counting.
//
// Files named "-" are read from standard input. Files ending in ".lz4" are decompressed on the fly, and input
// in a legacy encoding can be transcoded to UTF-8 before it is split. Line terminators are not part of a line.
package linereader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Stdin - The file name standing for standard input
const Stdin = "-"

// lz4Suffix - Files with this suffix are lz4 frame compressed
const lz4Suffix = ".lz4"

// bufferSize - Size of the read buffer, lines longer than this are still returned whole
const bufferSize = 64 * 1024

// Conf - Reader configuration
//   - Encoding is the name of the input encoding as known to the WHATWG encoding index (for example
//     "windows-1252" or "shift_jis"), empty means the input is passed through as raw bytes
type Conf struct {
	Encoding string
}

// Reader - Line reader over one input
type Reader struct {
	name   string
	r      *bufio.Reader
	closer io.Closer
	line   []byte
	lines  int
}

// Open - Opens the named file for reading lines, "-" reads standard input
func Open(name string, conf Conf) (reader *Reader, err error) {
	if name == Stdin {
		return New(os.Stdin, name, conf)
	}

	f, err := os.Open(name)
	if err != nil {
		return
	}

	var r io.Reader = f
	if strings.HasSuffix(name, lz4Suffix) {
		r = lz4.NewReader(f)
	}

	reader, err = New(r, name, conf)
	if err != nil {
		_ = f.Close()
		return
	}
	reader.closer = f

	return
}

// New - Returns a Reader splitting r into lines. The caller keeps ownership of r.
//   - r is the input
//   - name is used in error messages
//   - conf is the reader configuration
func New(r io.Reader, name string, conf Conf) (reader *Reader, err error) {
	if conf.Encoding != "" {
		enc, encErr := htmlindex.Get(conf.Encoding)
		if encErr != nil {
			err = fmt.Errorf("unknown input encoding %q: %w", conf.Encoding, encErr)
			return
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	reader = &Reader{name: name, r: bufio.NewReaderSize(r, bufferSize)}

	return
}

// Name - Returns the name the reader was opened with
func (R *Reader) Name() string {
	return R.name
}

// Lines - Returns the number of lines read so far
func (R *Reader) Lines() int {
	return R.lines
}

// ReadLine - Returns the next line with any trailing '\r' and '\n' bytes removed.
// The returned slice is only valid until the next call. A final line without terminator is returned like any
// other.
//
// It returns:
//   - line is the next line
//   - err is io.EOF when there are no more lines, or the error of the underlying reader
func (R *Reader) ReadLine() (line []byte, err error) {
	R.line = R.line[:0]

	for {
		chunk, readErr := R.r.ReadSlice('\n')
		R.line = append(R.line, chunk...)

		if readErr == nil {
			break
		}
		if errors.Is(readErr, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(readErr, io.EOF) && len(R.line) > 0 {
			break
		}
		if !errors.Is(readErr, io.EOF) {
			readErr = fmt.Errorf("error while reading %s: %w", R.name, readErr)
		}
		err = readErr
		return
	}

	R.lines++
	line = bytes.TrimRight(R.line, "\r\n")

	return
}

// Read - Reads raw bytes from the input, after decompression and transcoding, bypassing line splitting
func (R *Reader) Read(p []byte) (int, error) {
	return R.r.Read(p)
}

// Each - Calls fn for every remaining line, stopping at the first error fn returns
func (R *Reader) Each(fn func(line []byte) error) (err error) {
	for {
		line, readErr := R.ReadLine()
		if errors.Is(readErr, io.EOF) {
			return
		}
		if readErr != nil {
			err = readErr
			return
		}
		if err = fn(line); err != nil {
			return
		}
	}
}

// Close - Closes the underlying file, standard input and readers passed to New are left open
func (R *Reader) Close() error {
	if R.closer == nil {
		return nil
	}
	return R.closer.Close()
}

// Package charstat builds character histograms of an input, either per byte or per UTF-8 code point.
package charstat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

const (
	gridRows    = 32
	gridColumns = 8
	planeSize   = 0x10000
	planes      = 17
	readSize    = 64 * 1024
)

// ByteStats - Number of occurrences of every byte value
type ByteStats [256]uint64

// CountBytes - Reads r to the end and returns its byte histogram
func CountBytes(r io.Reader) (stats *ByteStats, err error) {
	stats = &ByteStats{}
	buf := make([]byte, readSize)

	for {
		n, readErr := r.Read(buf)
		stats.Add(buf[:n])
		if errors.Is(readErr, io.EOF) {
			return
		}
		if readErr != nil {
			err = readErr
			return
		}
	}
}

// Add - Counts every byte of p
func (B *ByteStats) Add(p []byte) {
	for _, c := range p {
		B[c]++
	}
}

// Total - Returns the number of bytes counted
func (B *ByteStats) Total() (total uint64) {
	for _, n := range B {
		total += n
	}
	return
}

// WriteGrid - Writes the histogram as 32 rows by 8 columns, byte value column*32+row in each cell.
// A cell is the byte itself if printable ASCII, a space for 0x7f and two hex digits otherwise, followed by a
// colon and the count left aligned to the widest count of its column. Columns without any hits are left out.
func (B *ByteStats) WriteGrid(w io.Writer) (err error) {
	var widths [gridColumns]int
	for col := range widths {
		for row := 0; row < gridRows; row++ {
			widths[col] = max(widths[col], digits(B[col*gridRows+row]))
		}
	}

	bw := bufio.NewWriter(w)
	for row := 0; row < gridRows; row++ {
		for col, width := range widths {
			if width == 0 {
				continue
			}

			c := col*gridRows + row
			switch {
			case c >= ' ' && c <= '~':
				_ = bw.WriteByte(byte(c))
			case c == 0x7f:
				_ = bw.WriteByte(' ')
			default:
				_, _ = fmt.Fprintf(bw, "%02x", c)
			}

			if B[c] == 0 {
				_, _ = fmt.Fprintf(bw, ":%*s", width+1, "")
			} else {
				_, _ = fmt.Fprintf(bw, ":%-*d ", width, B[c])
			}
		}
		_ = bw.WriteByte('\n')
	}
	err = bw.Flush()

	return
}

// RuneStats - Number of occurrences of every code point of the basic multilingual plane, and of each of the
// supplementary planes as a whole
//   - BMP is indexed by code point
//   - Planes is indexed by plane number, index 0 is unused since plane 0 is counted in BMP
//   - Invalid is the number of bytes that were not part of a valid UTF-8 sequence
type RuneStats struct {
	BMP     [planeSize]uint64
	Planes  [planes]uint64
	Invalid uint64
}

// CountRunes - Reads r to the end, decoding UTF-8, and returns its code point histogram.
// Bytes that do not decode are skipped one at a time and counted as invalid.
func CountRunes(r io.Reader) (stats *RuneStats, err error) {
	stats = &RuneStats{}
	br := bufio.NewReaderSize(r, readSize)

	for {
		cp, size, readErr := br.ReadRune()
		if errors.Is(readErr, io.EOF) {
			return
		}
		if readErr != nil {
			err = readErr
			return
		}
		stats.add(cp, size)
	}
}

// Add - Decodes p and counts its code points. A sequence split over two calls is counted as invalid bytes,
// use CountRunes for streamed input.
func (R *RuneStats) Add(p []byte) {
	for len(p) > 0 {
		cp, size := utf8.DecodeRune(p)
		R.add(cp, size)
		p = p[size:]
	}
}

// add - Counts one decoded rune
func (R *RuneStats) add(cp rune, size int) {
	switch {
	case cp == utf8.RuneError && size == 1:
		R.Invalid++
	case cp < planeSize:
		R.BMP[cp]++
	default:
		R.Planes[cp/planeSize]++
	}
}

// WriteList - Writes one line per code point of the basic multilingual plane that was seen, as code point,
// character and count separated by tabs. Control characters, space and 0x7f are shown as '.'. Then one line
// per supplementary plane that was seen, as "plane N" and count.
func (R *RuneStats) WriteList(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	var line []byte

	for cp, n := range &R.BMP {
		if n == 0 {
			continue
		}

		line = strconv.AppendInt(line[:0], int64(cp), 10)
		line = append(line, '\t')
		if cp <= ' ' || cp == 0x7f {
			line = append(line, '.')
		} else {
			line = utf8.AppendRune(line, rune(cp))
		}
		line = append(line, '\t')
		line = strconv.AppendUint(line, n, 10)
		line = append(line, '\n')
		_, _ = bw.Write(line)
	}

	for plane := 1; plane < planes; plane++ {
		if R.Planes[plane] > 0 {
			_, _ = fmt.Fprintf(bw, "plane %d\t%d\n", plane, R.Planes[plane])
		}
	}
	err = bw.Flush()

	return
}

// digits - Returns the number of decimal digits of n, zero for zero
func digits(n uint64) (d int) {
	for ; n > 0; n /= 10 {
		d++
	}
	return
}

// Package printer renders counted strings one per line in the formats of the tally commands.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Order - Which fields are printed, and in what order
type Order int

const (
	// CountText - Count, delimiter, text
	CountText Order = iota
	// TextCount - Text, delimiter, count
	TextCount
	// TextOnly - Text only
	TextOnly
	// CountOnly - Count only
	CountOnly
)

// DefaultDelimiter - Separates count and text unless configured otherwise
const DefaultDelimiter byte = '\t'

// DefaultWidth - Minimum number of digits of a printed count
const DefaultWidth = 1

var orderNames = map[string]Order{
	"count-text": CountText,
	"text-count": TextCount,
	"text":       TextOnly,
	"count":      CountOnly,
}

// ParseOrder - Resolves an order name, one of count-text, text-count, text or count
func ParseOrder(name string) (order Order, err error) {
	order, ok := orderNames[strings.ToLower(name)]
	if !ok {
		err = fmt.Errorf("unknown output order %q, valid orders are count-text, text-count, text and count", name)
	}

	return
}

// String - Returns the name of the order as accepted by ParseOrder
func (O Order) String() string {
	for name, order := range orderNames {
		if order == O {
			return name
		}
	}
	return "unknown"
}

// Conf - Printer configuration
//   - Order selects the fields to print
//   - Width is the minimum number of digits of a count, shorter counts are zero padded; negative means 0
//   - Delimiter is written between count and text
type Conf struct {
	Order     Order
	Width     int
	Delimiter byte
}

// Printer - Buffered line writer for counted strings. Flush must be called when done.
type Printer struct {
	w     *bufio.Writer
	conf  Conf
	digit []byte
}

// New - Returns a Printer writing to w
func New(w io.Writer, conf Conf) *Printer {
	if conf.Width < 0 {
		conf.Width = 0
	}

	return &Printer{w: bufio.NewWriter(w), conf: conf}
}

// Print - Writes one line for text and its count
func (P *Printer) Print(text []byte, count uint64) (err error) {
	switch P.conf.Order {
	case CountText:
		P.writeCount(count)
		_ = P.w.WriteByte(P.conf.Delimiter)
		_, _ = P.w.Write(text)
	case TextCount:
		_, _ = P.w.Write(text)
		_ = P.w.WriteByte(P.conf.Delimiter)
		P.writeCount(count)
	case TextOnly:
		_, _ = P.w.Write(text)
	case CountOnly:
		P.writeCount(count)
	default:
		return fmt.Errorf("unknown output order %d", P.conf.Order)
	}

	// bufio.Writer keeps the first write error and returns it from every later call
	err = P.w.WriteByte('\n')

	return
}

// Flush - Writes any buffered output to the underlying writer
func (P *Printer) Flush() error {
	return P.w.Flush()
}

// writeCount - Writes count zero padded to the configured width
func (P *Printer) writeCount(count uint64) {
	P.digit = strconv.AppendUint(P.digit[:0], count, 10)
	for i := len(P.digit); i < P.conf.Width; i++ {
		_ = P.w.WriteByte('0')
	}
	_, _ = P.w.Write(P.digit)
}

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/gostonefire/countmap"
	"github.com/gostonefire/countmap/internal/config"
	"github.com/gostonefire/countmap/internal/printer"
)

// outputOptions holds the flags selecting how counted strings are sorted and printed.
type outputOptions struct {
	byCount    bool
	byText     bool
	descending bool
	textFirst  bool
	textOnly   bool
	countOnly  bool
	width      int
	delimiter  string
	stats      bool
	hash       string
	initial    uint32
	memLimit   string
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.byCount, "by-count", "c", false, "sort by count")
	flags.BoolVarP(&o.byText, "by-text", "t", false, "sort by text")
	flags.BoolVarP(&o.descending, "descending", "d", false, "sort in descending order")
	flags.BoolVarP(&o.textFirst, "text-first", "r", false, "print text, then count")
	flags.BoolVarP(&o.textOnly, "text-only", "u", false, "print text only")
	flags.BoolVarP(&o.countOnly, "count-only", "n", false, "print count only")
	flags.IntVarP(&o.width, "width", "w", config.DefaultOutputWidth, "zero pad counts to this many digits")
	flags.StringVarP(&o.delimiter, "delimiter", "f", config.DefaultOutputDelimiter, "use the first character as the delimiter")
	flags.BoolVar(&o.stats, "stats", false, "print hash table statistics to stderr")
	flags.StringVar(&o.hash, "hash", "", "hash algorithm: "+hashNames())
	flags.Uint32Var(&o.initial, "initial-size", 0, "initial number of buckets, rounded up to a prime")
	flags.StringVar(&o.memLimit, "memory-limit", "", "cap on string storage, such as 512MiB")

	cmd.MarkFlagsMutuallyExclusive("by-count", "by-text")
	cmd.MarkFlagsMutuallyExclusive("text-first", "text-only", "count-only")
}

// apply overrides configuration values with the flags that were set explicitly.
func (o *outputOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	switch {
	case o.byCount:
		cfg.Sort.By = "count"
	case o.byText:
		cfg.Sort.By = "text"
	}
	if flags.Changed("descending") {
		cfg.Sort.Descending = o.descending
	}

	switch {
	case o.textFirst:
		cfg.Output.Order = printer.TextCount.String()
	case o.textOnly:
		cfg.Output.Order = printer.TextOnly.String()
	case o.countOnly:
		cfg.Output.Order = printer.CountOnly.String()
	}
	if flags.Changed("width") {
		cfg.Output.Width = o.width
	}
	if flags.Changed("delimiter") {
		cfg.Output.Delimiter = o.delimiter
	}

	if flags.Changed("hash") {
		cfg.Table.Hash = o.hash
	}
	if flags.Changed("initial-size") {
		cfg.Table.InitialSize = o.initial
	}
	if flags.Changed("memory-limit") {
		cfg.Arena.MemoryLimit = o.memLimit
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

// newCountMap creates a count map from the configuration, logging every resize at debug level.
func (r *runtime) newCountMap() (*countmap.CountMap, error) {
	tableConf, err := r.cfg.TableConf()
	if err != nil {
		return nil, err
	}

	tableConf.OnResize = func(oldSize, newSize int) {
		r.logger.Debug("resized table", "old_buckets", oldSize, "new_buckets", newSize)
	}

	return countmap.New(tableConf)
}

// printCounts writes every record of cm to stdout, sorted as configured.
func (r *runtime) printCounts(cm *countmap.CountMap) error {
	key, order, err := r.cfg.SortKey()
	if err != nil {
		return err
	}

	printerConf, err := r.cfg.PrinterConf()
	if err != nil {
		return err
	}

	p := printer.New(r.stdout, printerConf)
	for _, record := range cm.Sorted(key, order) {
		err = p.Print(record.Text, record.Count)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return p.Flush()
}

// renderStats writes a summary of the hash table to w.
func renderStats(w io.Writer, cm *countmap.CountMap) {
	stat := cm.Stat(false)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(color.New(color.Bold).Sprint("hash table"))
	tbl.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})

	tbl.AppendRows([]table.Row{
		{"distinct strings", humanize.Comma(int64(stat.Entries))},
		{"total count", humanize.Comma(int64(min(stat.Total, uint64(1<<63-1))))},
		{"buckets", humanize.Comma(int64(stat.Buckets))},
		{"used buckets", humanize.Comma(int64(stat.UsedBuckets))},
		{"longest chain", strconv.Itoa(stat.LongestChain)},
		{"load factor", strconv.FormatFloat(stat.LoadFactor, 'f', 3, 64)},
		{"resizes", strconv.Itoa(stat.Resizes)},
		{"hash algorithm", stat.HashAlgorithm},
	})
	tbl.AppendSeparator()
	tbl.AppendRows([]table.Row{
		{"arena blocks", strconv.Itoa(stat.ArenaBlocks)},
		{"oversized strings", strconv.Itoa(stat.ArenaOversized)},
		{"bytes reserved", humanize.IBytes(stat.ArenaBytesReserved)},
		{"bytes used", humanize.IBytes(stat.ArenaBytesUsed)},
		{"bytes abandoned", humanize.IBytes(stat.ArenaBytesAbandoned)},
	})

	tbl.Render()
}

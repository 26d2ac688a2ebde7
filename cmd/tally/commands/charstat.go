package commands

import (
	"github.com/spf13/cobra"

	"github.com/gostonefire/countmap/internal/charstat"
	"github.com/gostonefire/countmap/internal/linereader"
)

func newCharstatCommand(opts *globalOptions) *cobra.Command {
	var utf8Mode bool

	cmd := &cobra.Command{
		Use:   "charstat [file]",
		Short: "Byte or code point histogram",
		Long: `Count the bytes of the input and print them as a grid of 32 rows by 8 columns, each cell showing
a byte value and its count. Columns without any hits are left out.

With -u the input is decoded as UTF-8 and every code point of the basic multilingual plane that occurs is
listed with its count, followed by the totals of the supplementary planes.

Examples:
  tally charstat dump.bin
  tally charstat -u < text.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharstat(cmd, args, utf8Mode, opts)
		},
	}

	cmd.Flags().BoolVarP(&utf8Mode, "utf8", "u", false, "decode UTF-8 and count code points")

	return cmd
}

func runCharstat(cmd *cobra.Command, args []string, utf8Mode bool, opts *globalOptions) error {
	r, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	name := linereader.Stdin
	if len(args) == 1 {
		name = args[0]
	}

	reader, err := r.open(name)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if !utf8Mode {
		stats, err := charstat.CountBytes(reader)
		if err != nil {
			return err
		}

		return stats.WriteGrid(r.stdout)
	}

	stats, err := charstat.CountRunes(reader)
	if err != nil {
		return err
	}

	if stats.Invalid > 0 {
		r.logger.Warn("skipped bytes that are not valid UTF-8", "file", name, "bytes", stats.Invalid)
	}

	return stats.WriteList(r.stdout)
}

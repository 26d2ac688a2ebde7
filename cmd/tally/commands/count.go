package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gostonefire/countmap/internal/hash"
)

func newCountCommand(opts *globalOptions) *cobra.Command {
	output := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "count [files...]",
		Short: "Count distinct lines",
		Long: `Count how many times each distinct line occurs in the input files.

With no files, or when a file is "-", standard input is read. Files ending in .lz4 are decompressed.
Trailing carriage returns and line feeds are not part of a line.

Examples:
  tally count access.log
  tally count -c -d -w 6 a.txt b.txt
  cut -f1 data.tsv | tally count -r -f ,`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, opts, output)
		},
	}

	output.bind(cmd)

	return cmd
}

func runCount(cmd *cobra.Command, args []string, opts *globalOptions, output *outputOptions) error {
	r, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	err = output.apply(cmd, r.cfg)
	if err != nil {
		return err
	}

	cm, err := r.newCountMap()
	if err != nil {
		return err
	}
	defer cm.Release()

	readErr := r.eachLine(inputs(args), cm.Add)
	if readErr != nil && !errors.Is(readErr, errInputsSkipped) {
		return readErr
	}

	err = r.printCounts(cm)
	if err != nil {
		return err
	}

	r.logger.Debug("counted lines", "distinct", cm.Len(), "total", cm.Total(), "buckets", cm.Size())

	if output.stats {
		renderStats(r.stderr, cm)
	}

	return readErr
}

// hashNames lists the hash algorithms accepted by --hash.
func hashNames() string {
	return strings.Join(hash.Names(), ", ")
}

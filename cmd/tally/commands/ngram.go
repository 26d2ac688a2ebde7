package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gostonefire/countmap/internal/ngram"
)

func newNgramCommand(opts *globalOptions) *cobra.Command {
	output := &outputOptions{}

	var count bool

	cmd := &cobra.Command{
		Use:   "ngram N [files...]",
		Short: "Split lines into character n-grams",
		Long: `Print every window of N consecutive UTF-8 characters of every input line, one per line.
Lines shorter than N bytes produce nothing. Bytes that are not valid UTF-8 count as one character each.

With --count the n-grams are counted instead, and printed like the count command prints lines.

Examples:
  tally ngram 3 corpus.txt
  tally ngram 2 --count -c -d corpus.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("n-gram length %q is not a number", args[0])
			}

			return runNgram(cmd, n, args[1:], count, opts, output)
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "count the n-grams instead of printing them")
	output.bind(cmd)

	return cmd
}

func runNgram(cmd *cobra.Command, n int, args []string, count bool, opts *globalOptions, output *outputOptions) error {
	splitter, err := ngram.New(n)
	if err != nil {
		return err
	}

	r, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	if !count {
		w := bufio.NewWriter(r.stdout)
		readErr := r.eachLine(inputs(args), func(line []byte) error {
			return splitter.Each(line, func(gram []byte) error {
				_, _ = w.Write(gram)
				return w.WriteByte('\n')
			})
		})

		flushErr := w.Flush()
		if readErr != nil {
			return readErr
		}

		return flushErr
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

	readErr := r.eachLine(inputs(args), func(line []byte) error {
		return splitter.Each(line, cm.Add)
	})
	if readErr != nil && !errors.Is(readErr, errInputsSkipped) {
		return readErr
	}

	err = r.printCounts(cm)
	if err != nil {
		return err
	}

	if output.stats {
		renderStats(r.stderr, cm)
	}

	return readErr
}

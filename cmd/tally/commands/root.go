// Package commands implements the tally CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gostonefire/countmap/internal/config"
	"github.com/gostonefire/countmap/internal/linereader"
	"github.com/gostonefire/countmap/internal/logging"
)

// Version is the tally release, set at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

// errInputsSkipped reports that some inputs could not be opened while the others were processed.
var errInputsSkipped = errors.New("inputs could not be opened")

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

// runtime is what a command needs once configuration and logging are set up.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// NewRootCommand builds the tally command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally - Exact frequency counting of lines and characters",
		Long: `Tally counts how often each distinct line, n-gram or character occurs in its input.

Commands:
  count     Count distinct lines
  ngram     Split lines into character n-grams, optionally counting them
  charstat  Byte or code point histogram`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default .tally.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newCountCommand(opts))
	rootCmd.AddCommand(newNgramCommand(opts))
	rootCmd.AddCommand(newCharstatCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tally %s\n", Version)
		},
	}
}

// setup loads the configuration, applies the persistent flags and builds the logger.
func setup(cmd *cobra.Command, opts *globalOptions) (*runtime, error) {
	if opts.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}

	logger, err := logging.New(logging.Conf{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		logger: logger,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		stdin:  cmd.InOrStdin(),
	}, nil
}

// inputs returns the input names, standard input when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{linereader.Stdin}
	}

	return args
}

// open opens one input, reading "-" from the command's standard input.
func (r *runtime) open(name string) (*linereader.Reader, error) {
	readerConf := linereader.Conf{Encoding: r.cfg.Input.Encoding}

	if name == linereader.Stdin {
		return linereader.New(r.stdin, name, readerConf)
	}

	return linereader.Open(name, readerConf)
}

// eachLine calls fn for every line of every input. Inputs that can not be opened are logged and skipped;
// if any were skipped errInputsSkipped is returned after the others have been processed.
func (r *runtime) eachLine(names []string, fn func(line []byte) error) error {
	skipped := 0

	for _, name := range names {
		reader, err := r.open(name)
		if err != nil {
			r.logger.Error("skipping input", "file", name, "error", err)
			skipped++

			continue
		}

		r.logger.Debug("reading input", "file", name)

		err = reader.Each(fn)
		closeErr := reader.Close()

		if err != nil {
			return fmt.Errorf("%s line %d: %w", name, reader.Lines(), err)
		}
		if closeErr != nil {
			return fmt.Errorf("close %s: %w", name, closeErr)
		}

		r.logger.Debug("finished input", "file", name, "lines", reader.Lines())
	}

	if skipped > 0 {
		return fmt.Errorf("%d of %d %w", skipped, len(names), errInputsSkipped)
	}

	return nil
}

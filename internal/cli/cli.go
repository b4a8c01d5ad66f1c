// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/retroenv/moodump/internal/config"
	"github.com/retroenv/moodump/internal/moo"
	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/moodump/internal/writer"
)

var errNotCount = errors.New("value must be a non-negative integer")

// ParseFlags parses the command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message and the usage information to stderr.
func (e *UsageError) ShowUsage() {
	out := os.Stderr
	if e.msg != "" {
		_, _ = fmt.Fprintf(out, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(out, "usage: moodump [options] <file to decode>\n\n")
	e.flags.SetOutput(out)
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(out)
}

func parseArgs(name string, args []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	opts := options.New()
	readOptionFlags(flags, &opts)

	// flags are allowed before and after the file name
	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return opts, &UsageError{flags: flags}
			}
			return opts, &UsageError{flags: flags, msg: err.Error()}
		}
		if flags.NArg() == 0 {
			break
		}
		positional = append(positional, flags.Arg(0))
		args = flags.Args()[1:]
	}

	if err := validateArgs(flags, &opts, positional); err != nil {
		return opts, err
	}

	explicit := map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	if opts.Config != "" {
		file, err := config.Load(opts.Config)
		if err != nil {
			return opts, err
		}
		file.Apply(&opts, explicit)
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// validateArgs checks that exactly one file or a batch pattern is given.
func validateArgs(flags *flag.FlagSet, opts *options.Program, positional []string) error {
	switch {
	case opts.Batch != "" && len(positional) > 0:
		return &UsageError{flags: flags, msg: fmt.Sprintf("Unexpected argument: %s, a file can not be combined with -batch", positional[0])}
	case opts.Batch != "":
		return nil
	case len(positional) == 0:
		return &UsageError{flags: flags}
	case len(positional) > 1:
		return &UsageError{flags: flags, msg: fmt.Sprintf("Unexpected argument: %s", positional[1])}
	}
	opts.Input = positional[0]
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Format != "" {
		format, err := writer.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		opts.Format = string(format)
	}
	if opts.MaxMemoryEntries < 0 || opts.MaxQueueBytes < 0 {
		return errors.New("display limits must not be negative")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.Var(newCountFlag(&opts.Limit), "limit", "stop after decoding N tests")
	flags.Var(newCountFlag(&opts.Index), "index", "only decode the test at 0-based position N")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Format, "format", "", "output format: text, json, cbor (default: detected from -o, else text)")
	flags.StringVar(&opts.Config, "config", "", "TOML file with option defaults")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the reports, for example *.MOO")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the file consistency after decoding")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.IntVar(&opts.MaxMemoryEntries, "max-ram", opts.MaxMemoryEntries, "maximum RAM entries listed per state in text output, 0 for all")
	flags.IntVar(&opts.MaxQueueBytes, "max-queue", opts.MaxQueueBytes, "maximum queue bytes listed per state in text output, 0 for all")
}

// countFlag is a non-negative integer flag that can only be given once.
type countFlag struct {
	value *int
	set   bool
}

func newCountFlag(value *int) *countFlag {
	return &countFlag{value: value}
}

func (f *countFlag) String() string {
	if f.value == nil || *f.value == moo.NoFilter {
		return ""
	}
	return strconv.Itoa(*f.value)
}

func (f *countFlag) Set(s string) error {
	if f.set {
		return errors.New("duplicate argument")
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return errNotCount
	}
	*f.value = v
	f.set = true
	return nil
}

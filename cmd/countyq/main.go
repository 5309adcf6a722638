package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/countyq/config"
	"github.com/vegasq/countyq/internal/logging"
	"github.com/vegasq/countyq/output"
	"github.com/vegasq/countyq/query"
	"github.com/vegasq/countyq/reader"
	"github.com/vegasq/countyq/schema"
)

// options holds the parsed command line.
type options struct {
	configPath  string
	format      string
	maxRecords  int
	compat      bool
	warnNumeric bool
	encoding    string
	logLevel    string
	fields      bool
}

func newFlagSet(stderr io.Writer, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("countyq", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.format, "f", "text", "Output format: "+strings.Join(output.Formats, ", "))
	fs.IntVar(&opts.maxRecords, "max-records", 0, "Stop loading after N records (0 = unlimited)")
	fs.BoolVar(&opts.compat, "compat", false, "Legacy loader: split lines on every comma, skip the first data row and cap at 1000 records")
	fs.BoolVar(&opts.warnNumeric, "warn-numeric", false, "Log every numeric cell that did not convert completely")
	fs.StringVar(&opts.encoding, "encoding", "utf8", "Input encoding: utf8, latin1, windows-1252")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.fields, "fields", false, "List the queryable fields and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: countyq [options] <data_file> <op1> [<op2> ...]\n\n")
		fmt.Fprintf(stderr, "Query a county demographics dataset.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE the data file.\n\n")
		fmt.Fprintf(stderr, "Operations:\n")
		fmt.Fprintf(stderr, "  display                        print every record of the working set\n")
		fmt.Fprintf(stderr, "  filter-state:<ABBR>            keep records of one state\n")
		fmt.Fprintf(stderr, "  filter:<field>:<ge|le>:<value> keep records whose field passes the threshold\n")
		fmt.Fprintf(stderr, "  population-total               sum the 2014 population\n")
		fmt.Fprintf(stderr, "  population:<field>             population described by a percentage field\n")
		fmt.Fprintf(stderr, "  percent:<field>                that population as a share of the total\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  countyq county_demographics.csv filter-state:CA population-total\n")
		fmt.Fprintf(stderr, "  countyq -f table counties.parquet filter:Education_Bachelors_Degree_or_Higher:ge:40 display\n")
		fmt.Fprintf(stderr, "  countyq -fields\n")
	}
	return fs
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(stderr, &opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.fields {
		if err := printFields(stdout, schema.Default); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return 1
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Writer = stderr
	logger := logging.New(logCfg)

	formatter, err := output.New(cfg.Format, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	formatter.SetErrorOutput(stderr)

	path := fs.Arg(0)
	records, err := load(path, cfg, logger, formatter, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	exec := query.NewExecutor(records, formatter, query.WithLogger(logger))
	if err := exec.Run(ctx, fs.Args()[1:]); err != nil {
		logger.ErrorContext(ctx, "pipeline aborted", "error", err, "fatal", query.IsFatal(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the optional config file and applies every flag that was
// set explicitly on top of it.
func loadConfig(fs *flag.FlagSet, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f":
			cfg.Format = opts.format
		case "max-records":
			cfg.MaxRecords = opts.maxRecords
		case "compat":
			cfg.Compat = opts.compat
		case "warn-numeric":
			cfg.WarnNumeric = opts.warnNumeric
		case "encoding":
			cfg.Encoding = opts.encoding
		case "log-level":
			cfg.LogLevel = opts.logLevel
		}
	})
	return cfg, cfg.Validate()
}

// load ingests path. An unreadable file is reported and yields an empty
// dataset so that the operations still run.
func load(path string, cfg config.Config, logger *slog.Logger, formatter output.Formatter, stderr io.Writer) (schema.WorkingSet, error) {
	ropts := cfg.ReaderOptions()
	ropts.Logger = logger

	ds, err := reader.ReadFile(path, ropts)
	if err != nil {
		logger.Error("failed to load dataset", "path", path, "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, nil
	}

	if ds.Truncated {
		fmt.Fprintf(stderr, "Error: Maximum county limit reached (%d counties)\n", ropts.MaxRecords)
	}
	logger.Info("dataset loaded",
		"path", path,
		"records", len(ds.Records),
		"skipped", ds.Skipped,
		"coerced", ds.Coerced,
		"truncated", ds.Truncated,
		"fingerprint", reader.FormatFingerprint(reader.Fingerprint(ds.Records)),
	)

	if err := formatter.Loaded(len(ds.Records)); err != nil {
		return nil, err
	}
	return ds.Records, nil
}

// printFields writes the field registry as a table.
func printFields(w io.Writer, reg *schema.Registry) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Kind", "Valid range", "Filter", "Aggregate"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, d := range reg.Fields() {
		table.Append([]string{
			d.Name,
			d.Kind.String(),
			d.Domain.String(),
			yesNo(d.Filterable()),
			yesNo(d.Aggregatable()),
		})
	}
	table.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

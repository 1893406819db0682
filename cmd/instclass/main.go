// Command instclass classifies the instructions of LLVM IR functions into
// categories and prints a report per function.
//
// Usage:
//
//	instclass [-config f] [-format plain|pass|json] [-summary] [-table]
//	          [-profile out.pb.gz] [-func name]... [-j N] file...
//
// Files ending in .yaml or .yml are read as YAML programs; everything else
// is read as textual LLVM assembly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/instclass/classify"
	"github.com/sarchlab/instclass/config"
	"github.com/sarchlab/instclass/driver"
	"github.com/sarchlab/instclass/ir"
	"github.com/sarchlab/instclass/report"
)

type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// options holds the command-line flags.
type options struct {
	configPath  string
	format      string
	summary     bool
	table       bool
	profileOut  string
	parallelism int
	functions   stringList
}

func newFlagSet(name string, opts *options, handling flag.ErrorHandling) *flag.FlagSet {
	fs := flag.NewFlagSet(name, handling)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	fs.StringVar(&opts.format, "format", "", "report format: plain, pass or json")
	fs.BoolVar(&opts.summary, "summary", false, "print category totals over all functions")
	fs.BoolVar(&opts.table, "table", false, "print a per-function table")
	fs.StringVar(&opts.profileOut, "profile", "", "write a pprof profile of the totals")
	fs.IntVar(&opts.parallelism, "j", 0, "classify on N goroutines; 0 uses the serial engine")
	fs.Var(&opts.functions, "func", "only classify this function (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] file...\n", name)
		fs.PrintDefaults()
	}
	return fs
}

func main() {
	opts := &options{}
	fs := newFlagSet(os.Args[0], opts, flag.ExitOnError)
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		atexit.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	if err := applyFlags(fs, opts, cfg); err != nil {
		atexit.Fatalf("%v", err)
	}

	closer, err := config.SetupLogging(cfg, os.Stderr)
	if err != nil {
		atexit.Fatalf("%v", err)
	}
	atexit.Register(func() { closer.Close() })

	summ := report.Summarize()
	for _, path := range fs.Args() {
		results, err := classifyFile(cfg, path)
		if err != nil {
			atexit.Fatalf("%v", err)
		}

		if err := report.WriteResults(os.Stdout, results, cfg.ReportFormat()); err != nil {
			atexit.Fatalf("%v", err)
		}

		for _, res := range results {
			summ.Add(res)
		}
	}

	if err := writeSummary(cfg, summ); err != nil {
		atexit.Fatalf("%v", err)
	}

	atexit.Exit(0)
}

// applyFlags overrides configuration fields with the flags set on the
// command line. Flags left unset keep the configured value.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) error {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = opts.format
		case "summary":
			cfg.Summary = opts.summary
		case "table":
			cfg.Table = opts.table
		case "profile":
			cfg.ProfileOut = opts.profileOut
		case "j":
			cfg.Parallelism = opts.parallelism
		case "func":
			cfg.Functions = opts.functions
		}
	})

	return cfg.Validate()
}

func classifyFile(cfg *config.Config, path string) ([]*classify.Result, error) {
	mod, err := ir.LoadModule(path)
	if err != nil {
		return nil, err
	}

	fns := mod.Filter(cfg.Functions)
	slog.Info("Loaded module",
		"Module", mod.Name,
		"Functions", len(mod.Functions),
		"Selected", len(fns),
	)

	sink := driver.NewMemorySink()

	if cfg.Parallelism > 0 {
		err = driver.ClassifyParallel(
			context.Background(), fns, cfg.Parallelism, sink)
	} else {
		d := driver.NewBuilder().
			WithBatchSize(cfg.BatchSize).
			WithSink(sink).
			Build("Driver")
		d.Enqueue(fns...)
		err = d.Run()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to classify %s: %w", path, err)
	}

	return sink.Results(), nil
}

func writeSummary(cfg *config.Config, summ *report.Summary) error {
	if cfg.Summary {
		fmt.Println("== total")
		if err := summ.WriteTotals(os.Stdout); err != nil {
			return err
		}
	}

	if cfg.Table {
		if err := summ.WriteTable(os.Stdout); err != nil {
			return err
		}
	}

	if cfg.ProfileOut != "" {
		if err := summ.SaveProfileToFile(cfg.ProfileOut); err != nil {
			return err
		}
		slog.Info("Wrote profile", "Path", cfg.ProfileOut)
	}

	return nil
}

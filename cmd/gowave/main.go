// Command gowave reads OHLCV bars from CSV, appends the wavelet indicator
// columns and writes the result as CSV or JSON records.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	json "github.com/goccy/go-json"

	"github.com/evdnx/gowave/config"
	"github.com/evdnx/gowave/frame"
	"github.com/evdnx/gowave/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gowave: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	in         string
	out        string
	format     string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("gowave", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "Path to strategy YAML (defaults when empty)")
	fs.StringVar(&o.in, "in", "-", "Input CSV with a Close column, - for stdin")
	fs.StringVar(&o.out, "out", "-", "Output file, - for stdout")
	fs.StringVar(&o.format, "format", "csv", "Output format: csv or json")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.format != "csv" && o.format != "json" {
		return o, fmt.Errorf("unknown format %q", o.format)
	}
	return o, nil
}

func loadConfig(path string) (config.StrategyConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	log, err := logger.NewZapLogger(cfg.Log.Options())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync(log)

	in := stdin
	if opts.in != "-" {
		f, err := os.Open(opts.in)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	df := dataframe.ReadCSV(in)
	if df.Err != nil {
		return fmt.Errorf("read csv: %w", df.Err)
	}

	out, err := frame.Populate(df, cfg)
	if err != nil {
		log.Error("populate_failed", logger.String("input", opts.in), logger.Err(err))
		return err
	}
	log.Info("populated",
		logger.String("input", opts.in),
		logger.Int("rows", out.Nrow()),
		logger.Int("window", cfg.Window),
		logger.String("wavelet", cfg.Wavelet),
	)

	w := stdout
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if opts.format == "json" {
		return writeJSON(w, out)
	}
	return out.WriteCSV(w)
}

// writeJSON encodes one object per row; NaN and Inf become null.
func writeJSON(w io.Writer, df dataframe.DataFrame) error {
	rows := df.Maps()
	for _, row := range rows {
		for k, v := range row {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				row[k] = nil
			}
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

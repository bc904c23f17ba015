// Command prepkit runs a preprocessing pipeline described by a YAML file
// over a CSV dataset.
//
//	prepkit --config pipeline.yaml --input data.csv --output prepared.csv
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/dishcision/prepkit/internal/config"
	"github.com/dishcision/prepkit/internal/dataset"
	"github.com/dishcision/prepkit/internal/pipeline"
	"github.com/dishcision/prepkit/pkg/errors"
	"github.com/dishcision/prepkit/pkg/log"
)

func main() {
	fs := pflag.NewFlagSet("prepkit", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "pipeline YAML file")
	fs.StringP("input", "i", "", "input CSV, - for stdin")
	fs.StringP("output", "o", "", "output CSV, - for stdout")
	fs.String("log-level", "", "debug, info, warn or error")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configPath, fs); err != nil {
		log.GetLoggerWithName("prepkit").Error("run failed", log.ErrAttrKey, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, fs *pflag.FlagSet) error {
	cfg, err := config.Load(configPath, fs)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	log.GetLoggerWithName("prepkit").Debug("config loaded", log.ConfigFileKey, configPath)

	in, closeIn, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	frame, err := dataset.ReadCSV(in, dataset.ReadOptions{Categorical: cfg.Categorical})
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	res, err := p.Run(ctx, frame)
	if err != nil {
		return err
	}
	return pipeline.Export(res, cfg, os.Stdout)
}

// setupLogging installs the configured backend. Logs go to stderr so the
// transformed CSV can be piped from stdout.
func setupLogging(cfg *config.Config) error {
	if cfg.LogFormat != "zerolog" {
		return log.SetupLogger(os.Stderr, cfg.LogLevel)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	provider := log.NewZerologProvider(zl)
	provider.SetLevel(log.Level(level))
	log.SetProvider(provider)
	log.RouteWarningsToZerolog(zl)
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

// Command campaignetl runs the marketing campaign pipeline: it optionally
// ingests an uploaded CSV into the staging table, then cleans the staged
// rows and derives the campaign KPI fact table. It loads the pipeline config
// JSON, applies environment overrides, optionally initializes a metrics
// backend, and executes one synchronous run.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"campaignetl/internal/config"
	"campaignetl/internal/metrics"
	"campaignetl/internal/metrics/prompush"
	csvparser "campaignetl/internal/parser/csv"
	"campaignetl/internal/pipeline"
	"campaignetl/internal/storage"
	"campaignetl/internal/table"

	// register all backends with the storage factory.
	_ "campaignetl/internal/storage/all"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run owns the whole lifecycle so deferred cleanup (metrics flush, storage
// close) fires on every exit path, including failed runs.
func run() error {
	var (
		cfgPath    string
		csvPath    string
		validate   bool
		previewLen int
	)

	flag.StringVar(&cfgPath, "config", "configs/pipeline.json", "pipeline config JSON path")
	flag.StringVar(&csvPath, "csv", "", "campaign CSV to ingest into staging before the run")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.IntVar(&previewLen, "preview", 0, "print the first N rows of the raw and fact tables")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	level := zerolog.InfoLevel
	if lvl, perr := zerolog.ParseLevel(env.LogLevel); perr == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "campaignetl").Logger().Level(level)

	p, err := loadPipeline(cfgPath)
	if err != nil {
		return err
	}
	env.Apply(&p)

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		return fmt.Errorf("configuration is invalid: %s", cfgPath)
	}
	if validate {
		log.Info().Str("config", cfgPath).Msg("configuration is valid")
		return nil
	}

	initMetrics(log, p)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Warn().Err(err).Msg("metrics flush failed")
		}
	}()

	ctx := context.Background()
	start := time.Now()

	repo, err := storage.New(ctx, storage.Config{Kind: p.Storage.Kind, DSN: p.Storage.DB.DSN})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	runner := pipeline.NewRunner(repo, log, p.Job)
	if err := runner.Bootstrap(ctx); err != nil {
		return err
	}

	if csvPath != "" {
		if err := ingest(ctx, log, runner, csvPath, p.Ingest.Options); err != nil {
			return err
		}
	}

	raw, fact, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if previewLen > 0 {
		printPreview(os.Stdout, "raw", raw, previewLen)
		printPreview(os.Stdout, "fact", fact, previewLen)
	}

	log.Debug().Dur("elapsed", time.Since(start).Truncate(time.Millisecond)).Msg("done")
	return nil
}

// loadPipeline decodes the pipeline config JSON at path.
func loadPipeline(path string) (config.Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return config.Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var p config.Pipeline
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return config.Pipeline{}, fmt.Errorf("decode config: %w", err)
	}
	return p, nil
}

// ingest stages the upload at path into the staging table.
func ingest(ctx context.Context, log zerolog.Logger, runner *pipeline.Runner, path string, o config.Options) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	n, err := runner.IngestCSV(ctx, src, csvOptions(o))
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	log.Debug().Int("rows", n).Str("file", path).Msg("upload staged")
	return nil
}

// csvOptions maps the free-form ingest options onto parser options.
func csvOptions(o config.Options) csvparser.Options {
	return csvparser.Options{
		Comma:     o.Rune("comma", ','),
		TrimSpace: o.Bool("trim_space", true),
		HeaderMap: o.StringMap("header_map"),
		Encoding:  o.String("encoding", ""),
	}
}

// initMetrics installs the configured metrics backend; the no-op backend
// stays in place when metrics are disabled or misconfigured.
func initMetrics(log zerolog.Logger, p config.Pipeline) {
	switch p.Metrics.Backend {
	case "pushgateway":
		gwURL := p.Metrics.PushgatewayURL
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		jobName := p.Job
		if jobName == "" {
			jobName = "campaign_pipeline"
		}
		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Warn().Err(err).Msg("metrics backend init failed; using nop")
			return
		}
		log.Debug().Str("url", gwURL).Str("job", jobName).Msg("metrics enabled")
		metrics.SetBackend(b)
	case "", "none":
		// metrics disabled; nop backend remains
	default:
		log.Warn().Str("backend", p.Metrics.Backend).Msg("unknown metrics backend; metrics disabled")
	}
}

// printPreview writes the first n rows of t as tab-separated text.
func printPreview(w *os.File, name string, t *table.Table, n int) {
	fmt.Fprintf(w, "== %s (%d rows) ==\n", name, t.Len())
	for i, c := range t.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
	for i, r := range t.Rows {
		if i >= n {
			break
		}
		for j, c := range t.Columns {
			if j > 0 {
				fmt.Fprint(w, "\t")
			}
			if v := r[c]; v != nil {
				fmt.Fprint(w, v)
			}
		}
		fmt.Fprintln(w)
	}
}

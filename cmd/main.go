package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/AlperenUlu/gigmatch/internal/adapters/cli"
	app "github.com/AlperenUlu/gigmatch/internal/app"
	"github.com/AlperenUlu/gigmatch/internal/config"
	"github.com/AlperenUlu/gigmatch/pkg/logger"
	"github.com/AlperenUlu/gigmatch/pkg/metrics"
)

// Metrics endpoint server timeouts.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		os.Stderr.WriteString("Usage: gigmatch <input_file> <output_file>\n")
		return 1
	}
	inputFile, outputFile := args[0], args[1]

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional metrics endpoint for long batch runs.
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		server := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn(ctx, "metrics server stopped", logger.Error(err))
			}
		}()
		log.Info(ctx, "metrics endpoint listening", logger.String("addr", cfg.MetricsAddr))
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithUserTableCapacity(cfg.UserTableCapacity),
		app.WithPositionTableCapacity(cfg.PositionTableCapacity),
		app.WithBlacklistCapacity(cfg.BlacklistCapacity),
		app.WithHeapCapacity(cfg.HeapCapacity),
	)
	runner := cli.NewRunner(svc, cli.WithLogger(log))

	in, err := os.Open(inputFile)
	if err != nil {
		os.Stderr.WriteString("failed to open input: " + err.Error() + "\n")
		return 1
	}
	defer in.Close()

	out, err := os.Create(outputFile)
	if err != nil {
		os.Stderr.WriteString("failed to create output: " + err.Error() + "\n")
		return 1
	}
	defer out.Close()

	runID := uuid.New().String()
	start := time.Now()
	log.Info(ctx, "run starting",
		logger.String("run_id", runID),
		logger.String("input", inputFile),
		logger.String("output", outputFile),
	)

	if err := runner.Run(ctx, in, out); err != nil {
		log.Error(ctx, "run failed", logger.String("run_id", runID), logger.Error(err))
		return 1
	}

	log.Info(ctx, "run complete",
		logger.String("run_id", runID),
		logger.Int("customers", svc.CustomerCount()),
		logger.Int("freelancers", svc.FreelancerCount()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return 0
}

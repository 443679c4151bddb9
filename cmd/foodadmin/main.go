package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wilhg/foodadmin/internal/config"
	"github.com/wilhg/foodadmin/internal/httpapi"
	"github.com/wilhg/foodadmin/internal/logging"
	"github.com/wilhg/foodadmin/internal/metrics"
	"github.com/wilhg/foodadmin/pkg/api"
	"github.com/wilhg/foodadmin/pkg/foodcategory"
	"github.com/wilhg/foodadmin/pkg/journal"
	"github.com/wilhg/foodadmin/pkg/journal/entjournal"
	"github.com/wilhg/foodadmin/pkg/journal/memjournal"
	"github.com/wilhg/foodadmin/pkg/otel"
	"github.com/wilhg/foodadmin/pkg/replay"
	"github.com/wilhg/foodadmin/pkg/store"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "foodadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("foodadmin", flag.ContinueOnError)
	var (
		showVersion bool
		addr        string
		replayFile  string
		export      bool
	)
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.StringVar(&addr, "addr", "", "http listen address (overrides FOODADMIN_ADDR)")
	fs.StringVar(&replayFile, "replay", "", "replay a captured action stream from `file` and print the final state")
	fs.BoolVar(&export, "export", false, "print the journaled action stream as a capture and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVersion {
		fmt.Fprintf(stdout, "foodadmin %s (commit=%s, date=%s)\n", version, commit, date)
		return nil
	}
	if replayFile != "" {
		return replayCapture(ctx, replayFile, stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("configuration loaded", "config", cfg.String())

	shutdownTracing, err := otel.Init(ctx, otel.Config{ServiceVersion: version, UseStdout: cfg.Tracing.Stdout})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	j, err := openJournal(ctx, cfg.Journal)
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	if export {
		c, err := replay.Export(ctx, j, cfg.Journal.Stream)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	st, err := store.Open(ctx,
		store.WithJournal(j, cfg.Journal.Stream),
		store.WithSnapshotEvery(cfg.Journal.SnapshotEvery),
		store.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	m := metrics.New()
	defer st.Subscribe(m.Observe)()

	client, err := api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))
	if err != nil {
		return err
	}
	mw := api.NewMiddleware(m.Instrument(client), logger)

	if res, err := mw.Run(ctx, st, foodcategory.LoadFoodCategories()); err != nil {
		return fmt.Errorf("initial load: %w", err)
	} else if !res.OK() {
		logger.Warn("initial category load failed; serving cached state", "code", res.Err.Code, "error", res.Err.Message)
	}

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: httpapi.NewServer(st, mw, httpapi.WithMetrics(m.Handler())).Handler()}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// openJournal picks the SQL journal when a database URL is configured and
// an in-memory one otherwise.
func openJournal(ctx context.Context, cfg config.JournalConfig) (journal.Journal, error) {
	if cfg.URL == "" {
		return memjournal.New(), nil
	}
	j, err := entjournal.Open(ctx, cfg.URL, entjournal.WithMaxConns(cfg.MaxConns))
	if err != nil {
		return nil, err
	}
	if err := j.Migrate(ctx); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

func replayCapture(ctx context.Context, path string, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	c, err := replay.Decode(f)
	if err != nil {
		return err
	}
	final, err := replay.Run(ctx, c, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(final)
}

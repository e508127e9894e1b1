package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inferd/internal/common/fsutil"
	"inferd/internal/config"
	"inferd/internal/engine"
	"inferd/internal/httpapi"
	"inferd/internal/recommend"
	"inferd/internal/service"
)

// newRootCmd wires flags onto the resolved config. Precedence:
// defaults < config file < environment < explicitly set flags.
func newRootCmd() *cobra.Command {
	cfg := config.Default()
	var cfgFile string

	root := &cobra.Command{
		Use:           "inferd",
		Short:         "Single-model inference front door",
		Long:          "inferd loads one model artifact at startup and serves bounded concurrent text generation over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagCfg := cfg // flag values were parsed into cfg
			resolved := config.Default()
			if cfgFile != "" {
				if err := config.Load(cfgFile, &resolved); err != nil {
					return fmt.Errorf("config file: %w", err)
				}
			}
			resolved.FromEnv()
			applyChangedFlags(cmd, &resolved, flagCfg)
			if err := resolved.Finalize(); err != nil {
				return err
			}
			return run(cmd.Context(), resolved)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgFile, "config", "", "Optional config file (yaml/json/toml)")
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address, e.g. :8000")
	f.StringVar(&cfg.ModelPath, "model-path", cfg.ModelPath, "Path to the model artifact (MODEL_PATH)")
	f.StringVar(&cfg.Engine, "engine", cfg.Engine, "Inference backend: ollama|llama")
	f.StringVar(&cfg.OllamaHost, "ollama-host", cfg.OllamaHost, "Base URL of the ollama server")
	f.StringVar(&cfg.Model, "model", cfg.Model, "Served model name (defaults to the artifact basename)")
	f.IntVar(&cfg.CtxSize, "ctx-size", cfg.CtxSize, "Model context window")
	f.IntVar(&cfg.Threads, "threads", cfg.Threads, "Inference threads for the in-process backend (0=auto)")
	f.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrent generation calls allowed against the model")
	f.IntVar(&cfg.QueueDepth, "queue-depth", cfg.QueueDepth, "Maximum requests waiting for a generation slot")
	f.StringVar(&cfg.Overflow, "overflow", cfg.Overflow, "Overload policy: queue|reject")
	f.IntVar(&cfg.QueueWaitMS, "queue-wait-ms", cfg.QueueWaitMS, "Maximum admission wait in milliseconds")
	f.IntVar(&cfg.RequestTimeoutS, "request-timeout-s", cfg.RequestTimeoutS, "Per-request generation timeout in seconds (0 disables)")
	f.IntVar(&cfg.MaxPromptChars, "max-prompt-chars", cfg.MaxPromptChars, "Maximum accepted prompt length in characters")
	f.IntVar(&cfg.DrainTimeoutS, "drain-timeout-s", cfg.DrainTimeoutS, "Shutdown grace period in seconds")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	f.BoolVar(&cfg.CORSEnabled, "cors", cfg.CORSEnabled, "Enable CORS")
	f.StringSliceVar(&cfg.CORSOrigins, "cors-origins", cfg.CORSOrigins, "Allowed CORS origins")

	return root
}

// applyChangedFlags copies only explicitly set flag values from src into dst,
// so flags win over the file and environment without clobbering them with
// flag defaults.
func applyChangedFlags(cmd *cobra.Command, dst *config.Config, src config.Config) {
	set := map[string]func(){
		"addr":              func() { dst.Addr = src.Addr },
		"model-path":        func() { dst.ModelPath = src.ModelPath },
		"engine":            func() { dst.Engine = src.Engine },
		"ollama-host":       func() { dst.OllamaHost = src.OllamaHost },
		"model":             func() { dst.Model = src.Model },
		"ctx-size":          func() { dst.CtxSize = src.CtxSize },
		"threads":           func() { dst.Threads = src.Threads },
		"concurrency":       func() { dst.Concurrency = src.Concurrency },
		"queue-depth":       func() { dst.QueueDepth = src.QueueDepth },
		"overflow":          func() { dst.Overflow = src.Overflow },
		"queue-wait-ms":     func() { dst.QueueWaitMS = src.QueueWaitMS },
		"request-timeout-s": func() { dst.RequestTimeoutS = src.RequestTimeoutS },
		"max-prompt-chars":  func() { dst.MaxPromptChars = src.MaxPromptChars },
		"drain-timeout-s":   func() { dst.DrainTimeoutS = src.DrainTimeoutS },
		"log-level":         func() { dst.LogLevel = src.LogLevel },
		"cors":              func() { dst.CORSEnabled = src.CORSEnabled },
		"cors-origins":      func() { dst.CORSOrigins = src.CORSOrigins },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)

	var eng engine.Engine
	switch cfg.Engine {
	case config.EngineLlama:
		p, err := fsutil.CheckArtifact(cfg.ModelPath)
		if err != nil {
			return err
		}
		cfg.ModelPath = p
		eng = engine.NewLlama()
	default:
		eng = engine.NewOllama(cfg.OllamaHost)
	}

	// SIGINT/SIGTERM during the (possibly long) model load aborts startup.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := service.New(sigCtx, eng, engine.ModelSpec{
		Path:    cfg.ModelPath,
		Name:    cfg.Model,
		CtxSize: cfg.CtxSize,
		Threads: cfg.Threads,
	}, service.Config{
		Concurrency:    cfg.Concurrency,
		QueueDepth:     cfg.QueueDepth,
		QueueWait:      cfg.QueueWait(),
		RequestTimeout: cfg.RequestTimeout(),
		MaxPromptChars: cfg.MaxPromptChars,
		DrainTimeout:   cfg.DrainTimeout(),
	}, logger)
	if err != nil {
		// Fatal before the port is bound: no partial-serving state.
		return err
	}

	// Base context canceled only after the grace period, so in-flight
	// generations get a chance to drain before being forced off.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins)
	httpapi.SetBaseContext(baseCtx)
	mux := httpapi.NewMux(svc, recommend.New(svc))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("engine", cfg.Engine).Str("model", cfg.Model).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = svc.Close()
		return err
	case <-sigCtx.Done():
	}
	stop() // a second signal kills the process the default way

	logger.Info().Dur("grace", cfg.DrainTimeout()).Msg("shutting down")
	svc.BeginDrain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.DrainTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown incomplete")
	}
	cancelBase()
	if err := svc.Close(); err != nil {
		logger.Warn().Err(err).Msg("model release failed")
	}
	logger.Info().Msg("stopped")
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

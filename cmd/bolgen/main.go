package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/bolgen/internal/bol"
	"git.home.luguber.info/inful/bolgen/internal/config"
	derrors "git.home.luguber.info/inful/bolgen/internal/errors"
	"git.home.luguber.info/inful/bolgen/internal/logfields"
	"git.home.luguber.info/inful/bolgen/internal/metrics"
	"git.home.luguber.info/inful/bolgen/internal/render"
	"git.home.luguber.info/inful/bolgen/internal/server/httpserver"
	"git.home.luguber.info/inful/bolgen/internal/shipment"
	"git.home.luguber.info/inful/bolgen/internal/version"
)

const shutdownTimeout = 30 * time.Second

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
		Metrics bool `help:"Expose Prometheus metrics at /metrics" default:"true"`
	} `cmd:"" help:"Start the Bill of Lading render service"`

	Render struct {
		Input  string `short:"i" help:"Shipment JSON file (use - for stdin)" default:"-"`
		Output string `short:"o" help:"PDF output file (use - for stdout)" default:"-"`
	} `cmd:"" help:"Render a single shipment confirmation PDF and exit"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.File(CLI.Config), logfields.Error(err))
		os.Exit(1)
	}

	// A LevelVar so the config watcher can adjust the level without replacing
	// handlers already captured by the server.
	level := new(slog.LevelVar)
	level.Set(cfg.Logging.SlogLevel())
	if CLI.Verbose {
		level.Set(slog.LevelDebug)
	}
	logger := cfg.Logging.NewLeveledLogger(level)
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "serve":
		if err := runServe(cfg, logger, level); err != nil {
			slog.Error("Serve failed", logfields.Error(err))
			os.Exit(1)
		}
	case "render":
		if err := runRender(cfg, CLI.Render.Input, CLI.Render.Output); err != nil {
			slog.Error("Render failed", logfields.Error(err))
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", logfields.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Configuration file created: %s\n", CLI.Config)
	case "version":
		fmt.Printf("bolgen %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

func runServe(cfg *config.Config, logger *slog.Logger, level *slog.LevelVar) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := httpserver.Options{Logger: logger}
	if CLI.Serve.Metrics {
		recorder := metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		opts.Recorder = recorder
		opts.MetricsHandler = recorder.HTTPHandler()
	}

	srv := httpserver.New(cfg, opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	// Watch the config file so operators can flip the log level on a running
	// service. Listener and render options require a restart.
	watcher, err := config.NewWatcher(CLI.Config, func(fresh *config.Config) {
		if CLI.Verbose {
			return
		}
		level.Set(fresh.Logging.SlogLevel())
	})
	if err != nil {
		logger.Warn("Config watcher unavailable", logfields.Error(err))
	} else {
		go func() {
			_ = watcher.Run(ctx)
		}()
	}

	logger.Info("bolgen ready",
		slog.String("version", version.Version),
		slog.String("addr", cfg.Addr()))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func runRender(cfg *config.Config, input, output string) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	raw, err := shipment.ParseObject(data)
	if err != nil {
		return err
	}
	sh, err := shipment.Decode(shipment.UnwrapEnvelope(raw))
	if err != nil {
		return err
	}

	opts := bol.Options{
		Title:                  cfg.PDF.Title,
		IncludeServicesLine:    cfg.Render.IncludeServices(),
		ReferenceExclusions:    cfg.Render.ReferenceExclusions,
		IncludeSignatureBlocks: cfg.Render.IncludeSignatures(),
	}
	pdf, err := render.PDF(bol.Build(sh, opts))
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = os.Stdout.Write(pdf)
		return err
	}
	if err := os.WriteFile(output, pdf, 0644); err != nil {
		return derrors.FileWriteError(output, err)
	}
	slog.Info("PDF written", logfields.File(output), logfields.Bytes(len(pdf)))
	return nil
}

func readInput(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}

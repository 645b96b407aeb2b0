package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdinclude/internal/build"
	"git.home.luguber.info/inful/mdinclude/internal/config"
	"git.home.luguber.info/inful/mdinclude/internal/metrics"
)

var cli struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Output directory for processed pages (overrides config)"`
	} `cmd:"" help:"Process every Markdown page under the docs directory"`

	Render struct {
		File    string `arg:"" help:"Markdown file to process"`
		DocsDir string `help:"Docs root for bare include paths (defaults to the file's directory)"`
	} `cmd:"" help:"Process a single file and print the result to stdout"`

	Serve struct {
		Port int `short:"p" help:"HTTP port (overrides config)"`
	} `cmd:"" help:"Serve the processed output and rebuild on changes"`
}

func main() {
	kctx := kong.Parse(&cli)

	cfg, err := loadConfig(kctx.Command())
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdinclude: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "build":
		err = runBuild(ctx, cfg, logger)
	case "render <file>":
		err = runRender(ctx, cfg, logger)
	case "serve":
		err = runServe(ctx, cfg, logger)
	default:
		err = fmt.Errorf("unknown command: %s", kctx.Command())
	}
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file. The render command works without
// one, falling back to built-in defaults anchored at the target file.
func loadConfig(command string) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && command == "render <file>" {
			cfg = &config.Config{}
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cli.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func runBuild(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cli.Build.Output != "" {
		cfg.Output.Directory = cli.Build.Output
	}
	builder, err := build.NewBuilder(cfg, logger, nil)
	if err != nil {
		return err
	}
	return builder.BuildAll(ctx)
}

func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	docsDir := cli.Render.DocsDir
	if docsDir == "" {
		docsDir = filepath.Dir(cli.Render.File)
	}
	cfg.Docs.Directory = docsDir

	builder, err := build.NewBuilder(cfg, logger, nil)
	if err != nil {
		return err
	}
	processed, err := builder.ProcessFile(ctx, cli.Render.File)
	if err != nil {
		return err
	}
	fmt.Print(processed)
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cli.Serve.Port != 0 {
		cfg.Serve.Port = cli.Serve.Port
	}

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	builder, err := build.NewBuilder(cfg, logger, recorder)
	if err != nil {
		return err
	}
	return build.NewServer(builder, cfg, logger, registry, recorder).Run(ctx)
}

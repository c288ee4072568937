// Package main is the entry point for the VideoLighter desktop host.
// It loads configuration, wires the platform file operations into the command
// registry, and either serves the desktop shell over native messaging or runs
// a single command from the command line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/videolighter/desktop-host/internal/commands"
	"github.com/videolighter/desktop-host/internal/config"
	"github.com/videolighter/desktop-host/internal/host"
	"github.com/videolighter/desktop-host/internal/messaging"
	"github.com/videolighter/desktop-host/internal/platform"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = flag.String("config", "", "Path to configuration file (default: search standard locations)")
	logLevel    = flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	showVersion = flag.Bool("version", false, "Show version and exit")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [flags] [command]

Commands:
  serve             serve the desktop shell over stdin/stdout (default)
  trash <path>      move path to the trash
  reveal <path>     show path in the file manager
  machine-id        print the machine identifier
  info              print platform information
  write-config <p>  write the effective configuration to p as YAML

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("vl-host %s\n", version)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "write-config" {
		if err := writeEffectiveConfig(cfg, args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	ops := platform.New(cfg, logger)
	registry := commands.NewRegistry(logger)
	commands.RegisterDefaults(registry, ops)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if len(args) == 0 || args[0] == "serve" {
		logger.Info("Starting VideoLighter host",
			zap.String("version", version),
			zap.String("reveal_strategy", ops.Name()))
		if err := host.New(registry, cfg, logger).Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
			logger.Error("Host stopped with error", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Host stopped")
		return
	}

	req, err := requestFromArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	resp := registry.Dispatch(ctx, req)
	if !resp.Success {
		fmt.Fprintln(os.Stderr, resp.Message)
		os.Exit(1)
	}
	if err := printResult(resp.Result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies flag overrides on top of the layered configuration and validates it.
func loadConfig() (*config.Config, error) {
	cli := config.CLIOverrides{LogLevel: *logLevel}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadLayered(cli, embeddedConfig, *configPath)
	} else {
		cfg, err = config.LoadLayered(cli, embeddedConfig)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// writeEffectiveConfig saves the merged configuration to the path in args,
// giving users a complete file to edit.
func writeEffectiveConfig(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("write-config requires exactly one path argument")
	}
	if err := config.WriteConfig(cfg, args[1]); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration written to %s\n", args[1])
	return nil
}

// requestFromArgs maps a one-shot CLI invocation onto a registry request.
func requestFromArgs(args []string) (*messaging.Request, error) {
	withPath := func(command string) (*messaging.Request, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s requires exactly one path argument", args[0])
		}
		return &messaging.Request{Command: command, Path: args[1]}, nil
	}

	switch args[0] {
	case "trash":
		return withPath("move-to-trash")
	case "reveal":
		return withPath("show-in-folder")
	case "machine-id":
		return &messaging.Request{Command: "get-machine-id"}, nil
	case "info":
		return &messaging.Request{Command: "get-platform-info"}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", args[0])
	}
}

// printResult writes a command result to stdout: strings verbatim, other
// values as indented JSON, nothing for empty results.
func printResult(result interface{}) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Println(v)
		return err
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// initLogger creates a zap logger based on the configuration.
// Console output goes to stderr because stdout carries protocol frames;
// an optional JSON log file is added when configured.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}

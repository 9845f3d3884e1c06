package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/wpconfig/internal/application"
	"github.com/eugenenazirov/wpconfig/internal/config"
	"github.com/eugenenazirov/wpconfig/internal/logging"
	"github.com/eugenenazirov/wpconfig/internal/render"
	"github.com/eugenenazirov/wpconfig/internal/resolver"
)

var signalNotify = signal.Notify

func main() {
	if err := run(os.Args[1:], os.Stdout, resolver.OSEnvironment{}); err != nil {
		fmt.Fprintf(os.Stderr, "wpconfig: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, env resolver.Environment) error {
	kingpinApp := kingpin.New("wpconfig", "Resolve WordPress configuration from WORDPRESS_* environment variables")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	format := kingpinApp.Flag("format", "Output format: php, env, json or yaml").Short('f').String()
	absPath := kingpinApp.Flag("abspath", "Pin ABSPATH in php output instead of using __DIR__").String()
	var redactSet bool
	redact := kingpinApp.Flag("redact", "Replace passwords, keys and salts with a placeholder").IsSetByUser(&redactSet).Bool()

	renderCmd := kingpinApp.Command("render", "Print the resolved configuration (default)").Default()
	varsCmd := kingpinApp.Command("vars", "List the environment variables read and their defaults")
	serveCmd := kingpinApp.Command("serve", "Serve the resolved configuration over a read-only HTTP API")
	port := serveCmd.Flag("port", "HTTP port exposed by the inspection server").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return fmt.Errorf("parse arguments: %w", err)
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		Format:     format,
		AbsPath:    absPath,
		LogLevel:   logLevel,
		Port:       port,
	}
	if redactSet {
		overrides.Redact = redact
	}
	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}
	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	wp := resolver.Resolve(env)
	logging.LogResolved(logger, wp)

	switch command {
	case varsCmd.FullCommand():
		return printVariables(stdout)
	case serveCmd.FullCommand():
		return serve(cfg, wp, logger)
	case renderCmd.FullCommand():
		return render.Render(stdout, wp, cfg.Format, render.Options{
			AbsPath: cfg.AbsPath,
			Redact:  cfg.Redact,
		})
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printVariables(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tDEFAULT\tSETS")
	for _, v := range resolver.Variables() {
		def := v.Default
		if def == "" {
			def = `""`
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, def, v.Key)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write variables: %w", err)
	}
	return nil
}

func serve(cfg config.Config, wp resolver.Config, logger *zap.Logger) error {
	app, err := application.New(cfg, wp, logger)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	if err := app.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}

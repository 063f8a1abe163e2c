package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/actions"
	"github.com/merganser/merganser/internal/cfg"
	"github.com/merganser/merganser/internal/githubclt"
	"github.com/merganser/merganser/internal/httpapi"
	"github.com/merganser/merganser/internal/logfields"
	"github.com/merganser/merganser/internal/webhook"
)

const appName = "merganser"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught, terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

type arguments struct {
	Verbose     *bool
	ConfigFile  *string
	ShowVersion *bool
}

var args arguments

const defConfigFile = "/etc/merganser/config.toml"

func mustParseCommandlineParams() {
	args = arguments{
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		ConfigFile: pflag.StringP(
			"cfg-file",
			"c",
			defConfigFile,
			"path to the merganser configuration file",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]\nReceive GitHub webhook events and run pull request actions.\n", appName)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
}

func mustParseCfg() *cfg.Config {
	// we use exitOnErr in this function instead of logger.Fatal() because
	// the logger is not initialized yet

	config := &cfg.Config{}

	file, err := os.Open(*args.ConfigFile)
	if err == nil {
		defer file.Close()

		config, err = cfg.Load(file)
		exitOnErr(fmt.Sprintf("could not load configuration file: %s", *args.ConfigFile), err)
	} else if pflag.CommandLine.Changed("cfg-file") || !errors.Is(err, os.ErrNotExist) {
		// a missing file at the default path is fine, the daemon can run
		// from environment variables alone
		exitOnErr("could not open configuration file", err)
	}

	config.ApplyEnvFallbacks()
	config.ApplyDefaults()

	exitOnErr("invalid configuration", config.Validate())

	return config
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stdout,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := cfg.Build()
	exitOnErr("could not initialize logger", err)

	return logger
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s\n", config.LogLevel, err)
			os.Exit(2)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(2)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func startHTTPServer(listenAddr string, handler http.Handler) {
	httpServer := http.Server{
		Addr:    listenAddr,
		Handler: handler,
	}

	goodbye.Register(func(context.Context, os.Signal) {
		const shutdownTimeout = 30 * time.Second
		ctx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		logger.Debug(
			"terminating http server",
			logfields.Event("http_server_terminating"),
			zap.Duration("shutdown_timeout", shutdownTimeout),
		)

		err := httpServer.Shutdown(ctx)
		if err != nil {
			logger.Warn(
				"shutting down http server failed",
				logfields.Event("http_server_termination_failed"),
				zap.Error(err),
			)
		}
	})

	go func() {
		defer panicHandler()

		logger.Info(
			"http server started",
			logfields.Event("http_server_started"),
			zap.String("listen_addr", listenAddr),
		)

		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			logger.Info("http server terminated", logfields.Event("http_server_terminated"))
			return
		}

		logger.Fatal(
			"http server terminated unexpectedly",
			logfields.Event("http_server_terminated_unexpectedly"),
			zap.Error(err),
		)
	}()
}

func startPurgeTicker(queue *actionqueue.Queue, retention time.Duration) {
	ticker := time.NewTicker(time.Hour)
	done := make(chan struct{})

	goodbye.Register(func(context.Context, os.Signal) {
		ticker.Stop()
		close(done)
	})

	go func() {
		defer panicHandler()

		for {
			select {
			case <-ticker.C:
				queue.PurgeTerminal(retention)
			case <-done:
				return
			}
		}
	}()
}

func main() {
	defer panicHandler()

	defer goodbye.Exit(context.Background(), 1)
	goodbye.Notify(context.Background())

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	// optional, environment variables win over .env entries
	_ = godotenv.Load()

	config := mustParseCfg()

	mustInitLogger(config)

	logger.Info(
		"loaded configuration",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", *args.ConfigFile),
		zap.String("http_server_listen_addr", config.HTTPListenAddr),
		zap.String("github_webhook_endpoint", config.GithubWebhookEndpoint),
		zap.String("github_webhook_secret", hide(config.GithubWebhookSecret)),
		zap.String("github_api_token", hide(config.GithubAPIToken)),
		zap.String("log_format", config.LogFormat),
		zap.String("log_level", config.LogLevel),
		zap.Bool("dry_run", config.DryRun),
		zap.Int("queue_workers", config.Queue.Workers),
		zap.Int("queue_max_attempts", config.Queue.MaxAttempts),
		zap.Int("queue_repo_dequeues_per_minute", config.Queue.RepoDequeuesPerMinute),
		zap.Strings("merge_queue_trigger_labels", config.MergeQueueTriggerLabels),
		zap.Int("rules", len(config.Rules)),
	)

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
	})

	githubClient := githubclt.New(config.GithubAPIToken)

	var apiClient actions.GithubClient = githubClient
	if config.DryRun {
		logger.Info(
			"dry-run mode enabled, github write operations are simulated",
			logfields.Event("dry_run_enabled"),
		)
		apiClient = actions.NewDryClient(githubClient)
	}

	registry := actions.NewRegistry(apiClient)

	queue := actionqueue.New(config.Queue.MaxAttempts, config.Queue.RepoDequeuesPerMinute)
	pool := actionqueue.NewPool(
		queue,
		registry,
		config.Queue.Workers,
		time.Duration(config.Queue.RetryDelaySeconds)*time.Second,
	)

	pool.Start()
	goodbye.Register(func(context.Context, os.Signal) {
		logger.Debug("stopping worker pool", logfields.Event("pool_stopping"))
		pool.Stop()
	})

	retention := time.Duration(config.Queue.RetentionHours) * time.Hour
	startPurgeTicker(queue, retention)

	rules, err := webhook.RulesFromCfg(config)
	exitOnErr(fmt.Sprintf("could not parse rules from configuration file: %s", *args.ConfigFile), err)

	provider := webhook.New(
		queue,
		webhook.WithPayloadSecret(config.GithubWebhookSecret),
		webhook.WithMergeQueueTriggerLabels(config.MergeQueueTriggerLabels),
		webhook.WithRules(rules),
	)

	api := httpapi.New(
		queue,
		pool,
		httpapi.WithRateLimitState(githubClient.RateLimitState),
		httpapi.WithPurgeRetention(retention),
	)

	router := api.Router(normalizeEndpoint(config.GithubWebhookEndpoint), provider.Handler)

	logger.Info(
		"registered github webhook event http endpoint",
		logfields.Event("github_http_handler_registered"),
		zap.String("endpoint", config.GithubWebhookEndpoint),
	)

	startHTTPServer(config.HTTPListenAddr, router)

	select {}
}

func normalizeEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "/") {
		return endpoint
	}

	return "/" + endpoint
}

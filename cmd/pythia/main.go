package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/Pythia/adapters/theoddsapi"
	"github.com/XavierBriggs/Pythia/internal/config"
	"github.com/XavierBriggs/Pythia/internal/logging"
	"github.com/XavierBriggs/Pythia/internal/pipeline"
	"github.com/XavierBriggs/Pythia/internal/publisher"
	"github.com/XavierBriggs/Pythia/internal/registry"
	"github.com/XavierBriggs/Pythia/internal/report"
	"github.com/XavierBriggs/Pythia/internal/server"
	"github.com/XavierBriggs/Pythia/pkg/contracts"
	"github.com/XavierBriggs/Pythia/sports/americanfootball_nfl"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `usage: pythia [flags] [run|serve]

  run    fetch odds and write the weekly spread report (default)
  serve  serve the report artifacts over HTTP

flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("pythia", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (default $PYTHIA_CONFIG)")
	envFile := fs.String("env-file", ".env", "path to a .env file, skipped when missing")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	command := "run"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}
	if command != "run" && command != "serve" {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(config.Options{ConfigPath: *configPath, EnvFile: *envFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ failed to load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ invalid config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, "pythia")
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		err = serve(ctx, cfg, logger)
	default:
		err = generate(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("pythia failed", zap.String("command", command), zap.Error(err))
		return 1
	}
	return 0
}

// generate runs the report pipeline once
func generate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	sport, err := lookupSport(cfg.SportKey)
	if err != nil {
		return err
	}

	apiKey, source, err := cfg.ResolveAPIKey()
	if err != nil {
		return err
	}
	if source == config.KeySourceSecret {
		logger.Info("API key not found in env, using secret file", zap.String("path", cfg.SecretFile))
	}

	adapter := theoddsapi.NewClient(theoddsapi.Config{
		APIKey:  apiKey,
		BaseURL: cfg.OddsAPIBaseURL,
		Timeout: cfg.HTTPTimeout,
	})

	presenter, err := report.NewPresenter(sport, cfg.DisplayTimezone)
	if err != nil {
		return err
	}

	var pub publisher.Publisher = publisher.Nop{}
	if cfg.Redis.Enabled() {
		redisClient := newRedisClient(cfg.Redis)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, publishing disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			pub = publisher.NewRedisPublisher(redisClient, cfg.Redis.ReportTTL, cfg.Redis.StreamLen)
		}
	}

	runID := uuid.NewString()
	now := time.Now().UTC()

	logger.Info("starting run",
		zap.String("run_id", runID),
		zap.String("sport", sport.GetDisplayName()),
		zap.Time("now", now),
		zap.Time("week_end", sport.WeekEnd(now)),
	)

	runner := pipeline.NewRunner(adapter, sport, presenter, pub, cfg.OutputDir, logger)
	result, err := runner.Run(ctx, runID, now)
	if err != nil {
		return err
	}

	if result.Report.NoGames {
		logger.Info(report.NoGamesMessage, zap.String("run_id", runID))
	}
	return nil
}

// serve serves the output directory until interrupted
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	opts := server.Options{
		OutputDir:      cfg.OutputDir,
		AllowedOrigins: cfg.Serve.AllowedOrigins,
		Logger:         logger,
	}

	if cfg.Redis.Enabled() {
		redisClient := newRedisClient(cfg.Redis)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, reports API disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			opts.Latest = publisher.NewRedisPublisher(redisClient, cfg.Redis.ReportTTL, cfg.Redis.StreamLen)
		}
	}

	return server.New(opts).ListenAndServe(ctx, cfg.Serve.Addr)
}

// lookupSport registers the available sport modules and returns the configured one
func lookupSport(sportKey string) (contracts.SportModule, error) {
	sportRegistry := registry.NewSportRegistry()
	if err := sportRegistry.Register(americanfootball_nfl.NewModule()); err != nil {
		return nil, fmt.Errorf("register NFL module: %w", err)
	}

	sport, ok := sportRegistry.Get(sportKey)
	if !ok {
		return nil, fmt.Errorf("sport %q not registered (available: %v)", sportKey, sportRegistry.Keys())
	}
	return sport, nil
}

func newRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"coursehub/internal/config"
	"coursehub/internal/integrity"
	"coursehub/internal/logger"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"
	"coursehub/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	// Parse flags
	mode := flag.String("mode", "audit", "Integrity mode: audit|repair")
	interval := flag.Duration("interval", 0, "Repeat the check at this interval until interrupted")
	flag.Parse()

	// Load environment variables
	envErr := godotenv.Load()
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	switch integrity.Mode(*mode) {
	case integrity.ModeAudit, integrity.ModeRepair:
	default:
		logger.Fatal().Msgf("Invalid mode: %s", *mode)
	}

	// Set up context with graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.UsesSecretManager() {
		secrets, err := service.NewSecretManagerService(ctx, cfg)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
		}
		err = service.ResolveSecrets(ctx, cfg, secrets)
		secrets.Close()
		if err != nil {
			logger.Fatal().Msgf("Failed to resolve secrets: %v", err)
		}
	}

	stores, closeStores, err := repository.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to open document backend: %v", err)
	}
	defer closeStores()

	var publisher pubsub.Publisher = pubsub.NoopPublisher{}
	if cfg.PubSubTopic != "" {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	}
	notifier := pubsub.NewNotifier(publisher, cfg.PubSubTopic)

	svc := service.NewIntegrityService(stores.Courses, stores.Modules, stores.Lessons, notifier, logger)

	if *interval > 0 {
		if err := integrity.Watch(ctx, logger, svc, integrity.Mode(*mode), *interval); err != nil {
			logger.Fatal().Msgf("%s watcher failed: %v", *mode, err)
		}
		return
	}

	report, err := integrity.Check(ctx, logger, svc, integrity.Mode(*mode))
	if err != nil {
		logger.Error().Msgf("%s failed: %v", *mode, err)
		exitCode = 1
		return
	}
	// A dirty audit exits non-zero so schedulers can alert on it.
	if !report.Clean() && integrity.Mode(*mode) == integrity.ModeAudit {
		exitCode = 2
	}
}

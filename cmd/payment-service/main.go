package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmontoya-dev/eventos-payment-service/internal/config"
	"github.com/dmontoya-dev/eventos-payment-service/internal/delivery/http/handlers"
	"github.com/dmontoya-dev/eventos-payment-service/internal/delivery/http/router"
	"github.com/dmontoya-dev/eventos-payment-service/internal/domain"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/kafka"
	auditlog "github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/logger"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/mailer"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/metrics"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/migrate"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/postgres/repository"
	"github.com/dmontoya-dev/eventos-payment-service/internal/infrastructure/wompi"
	"github.com/dmontoya-dev/eventos-payment-service/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	logger := newLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)

	if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}
	logger.Info().Msg("migrations applied")

	// Init repositories
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	registrationRepo := repository.NewDefaultRegistrationRepository(db)

	// Init processor client
	wompiClient := wompi.NewClient(cfg.Wompi)

	paymentMetrics := metrics.NewPaymentMetrics()

	// Optional collaborators
	var publisher domain.PaymentEventPublisher
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		kafkaPublisher := kafka.NewPaymentEventPublisher(brokers, cfg.KafkaService.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	var approvalMailer usecase.ApprovalMailer
	if cfg.SMTP.Enabled {
		approvalMailer = mailer.New(cfg.SMTP, logger)
	}

	// Init usecases
	paymentUsecase := usecase.NewDefaultPaymentUsecase(
		transactionRepo,
		registrationRepo,
		wompiClient,
		paymentMetrics,
		logger,
	)
	webhookUsecase := usecase.NewDefaultWebhookUsecase(
		transactionRepo,
		registrationRepo,
		publisher,
		approvalMailer,
		auditlog.NewPGCallbackLogger(db),
		cfg.Wompi.EventsSecret,
		paymentMetrics,
		logger,
	)

	app := router.NewRouter(&router.Routers{
		Payment: handlers.NewPaymentHandler(paymentUsecase, logger),
		Webhook: handlers.NewWebhookHandler(webhookUsecase, logger),
		DB:      db,
		Log:     logger,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: app,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErrChan:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down server cleanly")
	}

	logger.Info().Msg("shutdown complete")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	writer := os.Stdout
	if cfg.LogOutput == "stderr" {
		writer = os.Stderr
	}
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if cfg.LogFormat == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: writer})
	}
	return logger
}

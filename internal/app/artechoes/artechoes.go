// Package artechoes собирает основное HTTP-приложение маркетплейса:
// хранилище, кеш, брокер сообщений, платёжный шлюз и все сервисы.
package artechoes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/artechoes/artechoes/internal/cache"
	"github.com/artechoes/artechoes/internal/config"
	"github.com/artechoes/artechoes/internal/lib/jwt"
	"github.com/artechoes/artechoes/internal/migrations"
	"github.com/artechoes/artechoes/internal/rabbitmq"
	"github.com/artechoes/artechoes/internal/razorpay"
	artworkservice "github.com/artechoes/artechoes/internal/services/artwork"
	authservice "github.com/artechoes/artechoes/internal/services/auth"
	"github.com/artechoes/artechoes/internal/services/classifier"
	"github.com/artechoes/artechoes/internal/services/janitor"
	paymentservice "github.com/artechoes/artechoes/internal/services/payment"
	profileservice "github.com/artechoes/artechoes/internal/services/profile"
	styleservice "github.com/artechoes/artechoes/internal/services/styletransfer"
	suggestionservice "github.com/artechoes/artechoes/internal/services/suggestion"
	"github.com/artechoes/artechoes/internal/storage/repository"
)

// App хранит серверы и соединения основного приложения.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	amqp    *amqp.Connection
	janitor *janitor.Janitor
}

// New инициализирует зависимости и собирает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetMailQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}
	mailPublisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL, cfg.ResetTokenTTL)
	gateway := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayAPIURL)

	classifierRunner := classifier.New(logger, cfg.PythonBin, cfg.ClassifierScript, cfg.ClassifierTimeout)
	cleaner := janitor.New(logger)

	authService := authservice.New(db, jwtMaker, mailPublisher, cfg.FrontendURL)
	artworkService := artworkservice.New(logger, db, cacheRedis, classifierRunner, cfg.UploadsDir)
	styleService := styleservice.New(logger, cleaner, cfg.PythonBin, cfg.StyleTransferScript,
		cfg.ScratchDir, cfg.StyleTransferTimeout, cfg.CleanupDelay)
	paymentService := paymentservice.New(gateway, db, cfg.RazorpayKeySecret)
	profileService := profileservice.New(logger, db, cfg.ProfilePicsDir)
	suggestionService := suggestionservice.New(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg,
		authService, artworkService, styleService,
		paymentService, profileService, suggestionService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		db:      db,
		amqp:    conn,
		janitor: cleaner,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		// уборщик сразу удаляет все отложенные временные файлы
		a.janitor.Shutdown()
		if closeErr := a.amqp.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/farhanms/playfield/common/cache"
	"github.com/farhanms/playfield/common/config"
	"github.com/farhanms/playfield/common/database"
	apperrors "github.com/farhanms/playfield/common/errors"
	commonevents "github.com/farhanms/playfield/common/events"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/common/natsjetstream"
	localcache "github.com/farhanms/playfield/services/booking-service/internal/cache"
	"github.com/farhanms/playfield/services/booking-service/internal/events"
	publisher "github.com/farhanms/playfield/services/booking-service/internal/events/publisher"
	"github.com/farhanms/playfield/services/booking-service/internal/handler"
	"github.com/farhanms/playfield/services/booking-service/internal/media"
	"github.com/farhanms/playfield/services/booking-service/internal/repository"
	"github.com/farhanms/playfield/services/booking-service/internal/scheduler"
	"github.com/farhanms/playfield/services/booking-service/internal/service"
)

type App struct {
	cfg               *config.Config
	httpServer        *http.Server
	db                *database.DynamoDBClient
	redisClient       *cache.RedisClient
	natsClient        *natsjetstream.Client
	logger            *logger.Logger
	availabilityCache *localcache.AvailabilityCache
	bookingService    service.BookingService
	scheduler         *scheduler.Scheduler
	eventPublisher    *publisher.EventPublisher
	eventSubscriber   *events.EventSubscriber

	cleanup []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, *apperrors.AppError) {
	app := &App{
		cfg:     cfg,
		cleanup: make([]func() error, 0),
	}

	if err := app.initLogger(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init logger")
	}

	if err := app.initDatabase(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init database")
	}

	if err := app.initRedis(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init redis client")
	}

	if err := app.initNATS(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init nats client")
	}

	if err := app.initMessagePublisher(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init messaging publisher")
	}

	if err := app.initHTTP(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init http server")
	}

	if err := app.initMessageSubscriber(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init messaging subscriber")
	}

	if err := app.initScheduler(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init scheduler")
	}

	return app, nil
}

func (a *App) initLogger() *apperrors.AppError {
	format := "console"
	if a.cfg.Server.Environment == "production" {
		format = "json"
	}

	a.logger = logger.New(logger.Config{
		Level:       a.cfg.Server.LogLevel,
		Format:      format,
		ServiceName: "booking-service",
	})
	return nil
}

func (a *App) initDatabase() *apperrors.AppError {
	dynamoClient, err := database.NewDynamoDBClient(a.cfg)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to create DynamoDB client")
	}

	a.db = dynamoClient
	return nil
}

func (a *App) initRedis(ctx context.Context) *apperrors.AppError {
	redisClient := cache.NewRedisClient(a.cfg.Redis)

	if err := redisClient.Ping(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeRedisOperationError, "failed to ping redis")
	}

	a.redisClient = redisClient
	a.cleanup = append(a.cleanup, redisClient.Close)

	ttl := time.Duration(a.cfg.Booking.AvailabilityCacheTTLSec) * time.Second
	a.availabilityCache = localcache.NewAvailabilityCache(redisClient.GetClient(), ttl)

	return nil
}

func (a *App) initNATS(ctx context.Context) *apperrors.AppError {
	natsClient, err := natsjetstream.NewClient(&natsjetstream.Config{
		URL:           a.cfg.NATS.URL,
		MaxReconnect:  a.cfg.NATS.MaxReconnect,
		ReconnectWait: time.Duration(a.cfg.NATS.ReconnectWaitSeconds) * time.Second,
		Timeout:       time.Duration(a.cfg.NATS.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	a.natsClient = natsClient

	streams := []jetstream.StreamConfig{
		{
			Name:     commonevents.BookingEventsStream,
			Subjects: []string{commonevents.BookingEventsWildcard},
		},
		{
			Name:     commonevents.GroundEventsStream,
			Subjects: []string{commonevents.GroundEventsWildcard},
		},
	}

	for _, stream := range streams {
		if _, err := a.natsClient.JetStream().CreateOrUpdateStream(ctx, stream); err != nil {
			a.logger.Error("Failed to create stream",
				"error", err,
				"stream", stream.Name,
			)
			return apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to create jetstream event stream")
		}
		a.logger.Info("Stream ready", "stream", stream.Name)
	}

	a.cleanup = append(a.cleanup, natsClient.Close)

	return nil
}

func (a *App) initMessagePublisher(ctx context.Context) *apperrors.AppError {
	a.eventPublisher = publisher.NewEventPublisher(a.natsClient, a.logger)
	return nil
}

func (a *App) initHTTP() *apperrors.AppError {
	groundRepo := repository.NewGroundRepository(a.db)
	bookingRepo := repository.NewBookingRepository(a.db)
	slotClaimRepo := repository.NewSlotClaimRepository(a.db)
	paymentRepo := repository.NewPaymentRepository(a.db)
	reviewRepo := repository.NewReviewRepository(a.db)
	userRepo := repository.NewUserRepository(a.db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(a.db)
	transactionRepo := database.NewTransactionRepository(a.db)

	mediaClient := media.NewClient(a.cfg.Media.BaseURL)

	a.bookingService = service.NewBookingService(
		groundRepo,
		bookingRepo,
		slotClaimRepo,
		paymentRepo,
		transactionRepo,
		a.availabilityCache,
		a.eventPublisher,
		a.cfg.Booking.WindowDays,
		a.logger,
	)

	groundService := service.NewGroundService(
		groundRepo,
		userRepo,
		a.availabilityCache,
		a.eventPublisher,
		mediaClient,
		a.logger,
	)

	reviewService := service.NewReviewService(reviewRepo, groundRepo, transactionRepo, a.logger)
	userService := service.NewUserService(userRepo, a.logger)
	paymentMethodService := service.NewPaymentMethodService(paymentMethodRepo, userRepo, mediaClient, a.logger)

	router := handler.NewRouter(handler.Handlers{
		User:          handler.NewUserHandler(userService),
		Ground:        handler.NewGroundHandler(groundService, a.bookingService),
		Booking:       handler.NewBookingHandler(a.bookingService),
		Review:        handler.NewReviewHandler(reviewService),
		PaymentMethod: handler.NewPaymentMethodHandler(paymentMethodService),
	}, a.logger)

	a.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.HTTPPort),
		Handler: router,
	}

	return nil
}

func (a *App) initMessageSubscriber(ctx context.Context) *apperrors.AppError {
	a.eventSubscriber = events.NewEventSubscriber(a.natsClient, a.availabilityCache, a.logger)
	if err := a.eventSubscriber.Start(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeEventSubscribtionError, "failed to start event subscriber")
	}

	a.cleanup = append(a.cleanup, a.eventSubscriber.Stop)

	return nil
}

func (a *App) initScheduler() *apperrors.AppError {
	bookingScheduler := scheduler.NewBookingScheduler(a.bookingService)
	a.scheduler = scheduler.NewScheduler(bookingScheduler, a.cfg.Booking.SweepHourUTC)

	return nil
}

func (a *App) Start() *apperrors.AppError {
	go a.scheduler.Start()
	a.logger.Info("Stale booking sweep scheduler is started")

	go func() {
		a.logger.Info(fmt.Sprintf("HTTP server listening on %d", a.cfg.Server.HTTPPort))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal(fmt.Sprintf("Failed to serve: %v", err))
		}
	}()

	a.logger.Info("Application started successfully")

	return nil
}

func (a *App) Stop() *apperrors.AppError {
	a.logger.Info("Stopping application...")

	a.scheduler.Stop()

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.logger.Error(fmt.Sprintf("HTTP shutdown error: %v", err))
		}
	}

	for _, cleanup := range a.cleanup {
		if err := cleanup(); err != nil {
			a.logger.Error(fmt.Sprintf("Cleanup error: %v", err))
		}
	}

	a.logger.Info("Application stopped")
	return nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicebook/config"
	"servicebook/cron"
	"servicebook/database"
	bookingRepo "servicebook/database/repository/booking"
	catalogRepo "servicebook/database/repository/catalog"
	"servicebook/handlers"
	"servicebook/middleware"
	"servicebook/routes"
	"servicebook/services/booking"
	"servicebook/services/locking"
	"servicebook/services/notification"
	"servicebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()
	cfg := config.AppConfig

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// storage.
	var (
		mongoClient  *mongo.Client
		store        bookingRepo.BookingStore
		catalog      catalogRepo.CatalogLookup
		schedule     catalogRepo.ScheduleLookup
		redisClients []*redis.Client
	)
	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("main: using in-memory store; data is lost on restart")
		mem := catalogRepo.NewMemoryCatalog()
		store, catalog, schedule = bookingRepo.NewMemoryBookingRepo(), mem, mem
	default:
		client, err := database.Connect(rootCtx)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		mongoClient = client
		db := database.Database(client)

		bookings := bookingRepo.NewMongoBookingRepo(db)
		if err := bookings.EnsureIndexes(rootCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
		}
		mongoCatalog := catalogRepo.NewMongoCatalogRepo(db)
		store, catalog, schedule = bookings, mongoCatalog, mongoCatalog

		cacheClient, err := utils.NewRedisClient(cfg.RedisCacheDB)
		if err != nil {
			logger.Warn("main: catalog cache disabled", zap.Error(err))
		} else {
			redisClients = append(redisClients, cacheClient)
			catalog = catalogRepo.NewCachedCatalog(mongoCatalog, cacheClient, cfg.CatalogCacheTTL, logger)
		}
	}

	// locking.
	var locker locking.Locker = locking.NewKeyedMutex()
	if cfg.LockBackend == "redis" {
		lockClient, err := utils.NewRedisClient(cfg.RedisLockDB)
		if err != nil {
			logger.Sugar().Fatalf("main: distributed lock backend unavailable: %v", err)
		}
		redisClients = append(redisClients, lockClient)
		locker = locking.NewRedisLocker(lockClient, cfg.LockTTL, logger)
	}

	// notifications.
	var (
		notifier notification.Notifier = notification.LogNotifier{Logger: logger}
		worker   *cron.NotificationWorker
	)
	if cfg.NotifierBackend == "queue" {
		queueClient := asynq.NewClient(cron.RedisOpt())
		defer queueClient.Close()
		notifier = notification.NewQueueNotifier(queueClient, logger, cfg.NotifyMaxAttempts)

		worker = cron.NewNotificationWorker(cron.RedisOpt(), store, notification.LogSender{Logger: logger}, cfg.QueueConcurrency, logger)
		worker.Start()
	}

	bookingService, err := booking.NewBookingService(booking.Config{
		Store:    store,
		Catalog:  catalog,
		Schedule: schedule,
		Locker:   locker,
		Notifier: notifier,
		Logger:   logger,
		Pricing:  booking.PricingPolicy{QuantityAware: cfg.PricingAddonQuantity},
		Hours:    catalogRepo.DayHours{Open: cfg.WorkingHoursOpen, Close: cfg.WorkingHoursClose},
		SlotStep: time.Duration(cfg.SlotStepMinutes) * time.Minute,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// periodic sweeps.
	scheduler, err := cron.NewSweepScheduler(bookingService, cfg.ReminderCron, cfg.ExpiryCron, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid sweep schedule: %v", err)
	}
	scheduler.Start()

	monitor := utils.NewHealthMonitor(redisClients, mongoClient)
	monitor.Start(rootCtx, 10*time.Second)

	// Create the Gin router.
	router := gin.New()
	// Forwarding headers are honoured only from these peers.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewBookingHandler(bookingService),
		&handlers.HealthHandler{Monitor: monitor},
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	<-scheduler.Stop().Done()
	if worker != nil {
		worker.Shutdown()
	}
	stop()
	for _, c := range redisClients {
		_ = c.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

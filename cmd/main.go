package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RoomAllocationService/internal/allocation"
	allocateRoomHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/allocate_room"
	calculateEndTimeHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/calculate_end_time"
	createBookingHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/get_booking"
	getRoomAvailabilityHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/get_room_availability"
	getUserBookingsHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/get_user_bookings"
	listRoomsHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/list_rooms"
	searchRoomsHandler "github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers/search_rooms"
	"github.com/m04kA/SMC-RoomAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomAllocationService/internal/config"
	"github.com/m04kA/SMC-RoomAllocationService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/migrations"
	roomRepo "github.com/m04kA/SMC-RoomAllocationService/internal/infra/storage/room"
	profileServiceClient "github.com/m04kA/SMC-RoomAllocationService/internal/integrations/profileservice"
	bookingsService "github.com/m04kA/SMC-RoomAllocationService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-RoomAllocationService/internal/service/catalog"
	allocateRoomUC "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/allocate_room"
	createBookingUC "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/create_booking"
	findRoomUC "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/find_room"
	getRoomAvailabilityUC "github.com/m04kA/SMC-RoomAllocationService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/logger"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/metrics"
	"github.com/m04kA/SMC-RoomAllocationService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("ROOMS_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithService(cfg.Logs.File, cfg.Logs.Level, cfg.Metrics.ServiceName)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomAllocationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// nil коллектор допустим: все методы метрик его проверяют
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции схемы
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManagerWithOptions(wrappedDB, txmanager.Options{
		MaxRetries:     cfg.Commit.MaxRetries,
		InitialBackoff: cfg.CommitBackoff(),
		MaxBackoff:     10 * cfg.CommitBackoff(),
	})

	// Блокировка комнаты на день: Redis для нескольких инстансов, иначе в памяти процесса
	lockOpts := lock.Options{
		TTL:        cfg.LockTTL(),
		RetryCount: cfg.Lock.RetryCount,
		RetryDelay: cfg.LockRetryDelay(),
	}

	var locker lock.Locker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = lock.NewRedisLocker(redisClient, lockOpts)
		log.Info("Redis room locks enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, lockOpts.TTL)
	} else {
		locker = lock.NewLocalLocker(lockOpts)
		log.Warn("Redis disabled: using in-process room locks, safe for a single instance only")
	}

	// Инициализируем интеграционного клиента (если включен)
	var profiles allocateRoomUC.ProfileClient
	if cfg.ProfileService.Enabled {
		profiles = profileServiceClient.NewClient(
			cfg.ProfileService.URL,
			time.Duration(cfg.ProfileService.Timeout)*time.Second,
			cfg.ProfileService.RetryCount,
			log,
		)
		log.Info("ProfileService client initialized (url=%s, timeout=%ds)",
			cfg.ProfileService.URL, cfg.ProfileService.Timeout)
	}

	// Значения по умолчанию для каталога
	roomDefaults, err := cfg.RoomDefaults()
	if err != nil {
		log.Fatal("Invalid catalog defaults: %v", err)
	}

	dayStart, dayEnd, err := cfg.AvailabilityWindow()
	if err != nil {
		log.Fatal("Invalid availability window: %v", err)
	}

	// Инициализируем репозитории
	roomRepository := roomRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(roomRepository, roomDefaults, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	findRoomUseCase := findRoomUC.NewUseCase(
		catalogSvc,
		metricsCollector,
		allocation.Options{MaxAlternatives: cfg.Allocation.MaxAlternatives},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		roomDefaults,
		locker,
		txMgr,
		metricsCollector,
		createBookingUC.Options{CommitTimeout: cfg.CommitTimeout()},
		log,
	)

	allocateRoomUseCase := allocateRoomUC.NewUseCase(
		findRoomUseCase,
		createBookingUseCase,
		profiles,
		metricsCollector,
		allocateRoomUC.Options{MaxAttempts: cfg.Allocation.MaxAttempts},
		log,
	)

	getRoomAvailabilityUseCase := getRoomAvailabilityUC.NewUseCase(
		roomRepository,
		roomDefaults,
		getRoomAvailabilityUC.Options{
			DayStart:    dayStart,
			DayEnd:      dayEnd,
			SlotMinutes: cfg.Availability.SlotMinutes,
		},
		log,
	)

	// Инициализируем handlers
	listRooms := listRoomsHandler.NewHandler(catalogSvc, log)
	searchRooms := searchRoomsHandler.NewHandler(findRoomUseCase, log)
	getRoomAvailability := getRoomAvailabilityHandler.NewHandler(getRoomAvailabilityUseCase, log)
	calculateEndTime := calculateEndTimeHandler.NewHandler(log)
	allocateRoom := allocateRoomHandler.NewHandler(allocateRoomUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог комнат с занятостью
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)

	// Свободные окна комнаты на день
	api.HandleFunc("/rooms/{roomId}/availability", getRoomAvailability.Handle).Methods(http.MethodGet)

	// Подбор лучшей комнаты без записи
	api.HandleFunc("/rooms/search", searchRooms.Handle).Methods(http.MethodPost)

	// Расчет времени окончания
	api.HandleFunc("/time/end", calculateEndTime.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Подбор и запись комнаты одним вызовом
	protected.HandleFunc("/allocations", allocateRoom.Handle).Methods(http.MethodPost)

	// Запись бронирования выбранной комнаты
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Бронирования пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

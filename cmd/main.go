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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/cycleaway/booking-service/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/cycleaway/booking-service/internal/api/handlers/check_availability"
	completeBookingHandler "github.com/cycleaway/booking-service/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/cycleaway/booking-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/cycleaway/booking-service/internal/api/handlers/get_booking"
	getLocationBookingsHandler "github.com/cycleaway/booking-service/internal/api/handlers/get_location_bookings"
	getQuoteHandler "github.com/cycleaway/booking-service/internal/api/handlers/get_quote"
	getUserBookingsHandler "github.com/cycleaway/booking-service/internal/api/handlers/get_user_bookings"
	inventoryHandler "github.com/cycleaway/booking-service/internal/api/handlers/inventory"
	reassignLocationHandler "github.com/cycleaway/booking-service/internal/api/handlers/reassign_location"
	rescheduleBookingHandler "github.com/cycleaway/booking-service/internal/api/handlers/reschedule_booking"
	searchCyclesHandler "github.com/cycleaway/booking-service/internal/api/handlers/search_cycles"
	startBookingHandler "github.com/cycleaway/booking-service/internal/api/handlers/start_booking"
	"github.com/cycleaway/booking-service/internal/api/middleware"
	"github.com/cycleaway/booking-service/internal/config"
	accessoryRepo "github.com/cycleaway/booking-service/internal/infra/storage/accessory"
	bookingRepo "github.com/cycleaway/booking-service/internal/infra/storage/booking"
	cycleRepo "github.com/cycleaway/booking-service/internal/infra/storage/cycle"
	locationRepo "github.com/cycleaway/booking-service/internal/infra/storage/location"
	availabilityService "github.com/cycleaway/booking-service/internal/service/availability"
	bookingsService "github.com/cycleaway/booking-service/internal/service/bookings"
	inventoryService "github.com/cycleaway/booking-service/internal/service/inventory"
	createBookingUC "github.com/cycleaway/booking-service/internal/usecase/create_booking"
	getQuoteUC "github.com/cycleaway/booking-service/internal/usecase/get_quote"
	searchCyclesUC "github.com/cycleaway/booking-service/internal/usecase/search_cycles"
	"github.com/cycleaway/booking-service/pkg/dbmetrics"
	"github.com/cycleaway/booking-service/pkg/logger"
	"github.com/cycleaway/booking-service/pkg/metrics"
	"github.com/cycleaway/booking-service/pkg/simpletxmanager"
	"github.com/cycleaway/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CycleAway booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		cycleRepository     *cycleRepo.Repository
		accessoryRepository *accessoryRepo.Repository
		locationRepository  *locationRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cycleRepository = cycleRepo.NewRepository(wrappedDB)
		accessoryRepository = accessoryRepo.NewRepository(wrappedDB)
		locationRepository = locationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		cycleRepository = cycleRepo.NewRepository(db)
		accessoryRepository = accessoryRepo.NewRepository(db)
		locationRepository = locationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilityChecker := availabilityService.NewChecker(bookingRepository, cycleRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		locationRepository,
		availabilityChecker,
		txMgr,
		log,
	)
	inventorySvc := inventoryService.NewService(
		cycleRepository,
		accessoryRepository,
		locationRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		cycleRepository,
		accessoryRepository,
		availabilityChecker,
		txMgr,
		log,
	)
	searchCyclesUseCase := searchCyclesUC.NewUseCase(
		cycleRepository,
		locationRepository,
		availabilityChecker,
		log,
	)
	getQuoteUseCase := getQuoteUC.NewUseCase(cycleRepository, accessoryRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	startBooking := startBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	reassignLocation := reassignLocationHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getLocationBookings := getLocationBookingsHandler.NewHandler(bookingSvc, log)
	searchCycles := searchCyclesHandler.NewHandler(searchCyclesUseCase, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilityChecker, log)
	inventory := inventoryHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог точек проката и велосипедов
	api.HandleFunc("/locations", inventory.ListLocations).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/cycles", searchCycles.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cycles", inventory.ListCycles).Methods(http.MethodGet)
	api.HandleFunc("/cycles/{cycleId}", inventory.GetCycle).Methods(http.MethodGet)
	api.HandleFunc("/cycles/{cycleId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/accessories", inventory.ListAccessories).Methods(http.MethodGet)

	// Предварительный расчёт стоимости
	api.HandleFunc("/quotes", getQuote.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-Staff: true)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// --- Жизненный цикл бронирования ---
	staff.HandleFunc("/bookings/{bookingId}/start", startBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/dates", rescheduleBooking.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId}/location", reassignLocation.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/locations/{locationId}/bookings", getLocationBookings.Handle).Methods(http.MethodGet)

	// --- Управление инвентарём ---
	staff.HandleFunc("/cycles", inventory.CreateCycle).Methods(http.MethodPost)
	staff.HandleFunc("/cycles/{cycleId}", inventory.UpdateCycle).Methods(http.MethodPut)
	staff.HandleFunc("/cycles/{cycleId}/availability", inventory.SetCycleAvailable).Methods(http.MethodPatch)
	staff.HandleFunc("/accessories", inventory.CreateAccessory).Methods(http.MethodPost)
	staff.HandleFunc("/accessories/{accessoryId}", inventory.UpdateAccessory).Methods(http.MethodPut)
	staff.HandleFunc("/locations", inventory.CreateLocation).Methods(http.MethodPost)
	staff.HandleFunc("/locations/{locationId}", inventory.UpdateLocation).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	changeRescheduleDateHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/change_reschedule_date"
	getIntakeHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/get_intake"
	referenceHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/reference"
	requestOtpHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/request_otp"
	resolveRescheduleHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/resolve_reschedule"
	selectRescheduleSlotHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/select_reschedule_slot"
	selectSlotHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/select_slot"
	startIntakeHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/start_intake"
	submitIntakeHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/submit_intake"
	submitRescheduleHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/submit_reschedule"
	updateIntakeFieldHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/update_intake_field"
	verifyOtpHandler "github.com/m04kA/HSC-AppointmentService/internal/api/handlers/verify_otp"
	"github.com/m04kA/HSC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/HSC-AppointmentService/internal/config"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/intake"
	"github.com/m04kA/HSC-AppointmentService/internal/controller/reschedule"
	bookingServiceClient "github.com/m04kA/HSC-AppointmentService/internal/integrations/bookingservice"
	directoryClient "github.com/m04kA/HSC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/HSC-AppointmentService/internal/session"
	"github.com/m04kA/HSC-AppointmentService/pkg/logger"
	"github.com/m04kA/HSC-AppointmentService/pkg/metrics"
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

	log.Info("Starting HSC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем интеграционных клиентов (с метриками или без)
	var (
		bookingMetrics   bookingServiceClient.Metrics
		directoryMetrics directoryClient.Metrics
	)
	if cfg.Metrics.Enabled {
		bookingMetrics = metricsCollector
		directoryMetrics = metricsCollector
	}
	booking := bookingServiceClient.NewClient(
		cfg.BookingService.URL,
		time.Duration(cfg.BookingService.Timeout)*time.Second,
		log,
		bookingMetrics,
	)
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
		directoryMetrics,
	)
	log.Info("Integration clients initialized (BookingService=%s timeout=%ds, Directory=%s timeout=%ds)",
		cfg.BookingService.URL, cfg.BookingService.Timeout, cfg.Directory.URL, cfg.Directory.Timeout)

	// Инициализируем реестр сессий и janitor истёкших сессий
	var sessionMetrics session.Metrics
	if cfg.Metrics.Enabled {
		sessionMetrics = metricsCollector
	}
	sessions := session.NewManager(
		time.Duration(cfg.Sessions.TTLMinutes)*time.Minute,
		log,
		sessionMetrics,
	)

	stopJanitorCh := make(chan struct{})
	go sessions.RunJanitor(time.Duration(cfg.Sessions.CleanupInterval)*time.Second, stopJanitorCh)
	log.Info("Session registry initialized (ttl=%dm, cleanup every %ds)",
		cfg.Sessions.TTLMinutes, cfg.Sessions.CleanupInterval)

	// Фабрики контроллеров workflow
	newIntake := func() *intake.Controller {
		return intake.NewController(booking, directory, log)
	}
	newReschedule := func(token string) *reschedule.Controller {
		return reschedule.NewController(token, booking, log)
	}

	// Инициализируем handlers
	startIntake := startIntakeHandler.NewHandler(sessions, newIntake, log)
	getIntake := getIntakeHandler.NewHandler(sessions, log)
	updateIntakeField := updateIntakeFieldHandler.NewHandler(sessions, log)
	selectSlot := selectSlotHandler.NewHandler(sessions, log)
	requestOtp := requestOtpHandler.NewHandler(sessions, log)
	verifyOtp := verifyOtpHandler.NewHandler(sessions, log)
	submitIntake := submitIntakeHandler.NewHandler(sessions, log)
	resolveReschedule := resolveRescheduleHandler.NewHandler(sessions, newReschedule, log)
	changeRescheduleDate := changeRescheduleDateHandler.NewHandler(sessions, log)
	selectRescheduleSlot := selectRescheduleSlotHandler.NewHandler(sessions, log)
	submitReschedule := submitRescheduleHandler.NewHandler(sessions, log)
	reference := referenceHandler.NewHandler(directory, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без заголовка сессии)
	// ============================================================

	// Создание сессии формы записи
	api.HandleFunc("/intake", startIntake.Handle).Methods(http.MethodPost)

	// Перенос приёма: токен в пути сам является авторизацией
	api.HandleFunc("/reschedule/{token}", resolveReschedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reschedule/{token}/date", changeRescheduleDate.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reschedule/{token}/slot", selectRescheduleSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reschedule/{token}", submitReschedule.Handle).Methods(http.MethodPost)

	// Справочники (read-only, graceful degradation)
	api.HandleFunc("/reference/states", reference.HandleStates).Methods(http.MethodGet)
	api.HandleFunc("/reference/cities", reference.HandleCities).Methods(http.MethodGet)
	api.HandleFunc("/reference/diseases", reference.HandleDiseases).Methods(http.MethodGet)
	api.HandleFunc("/reference/doctors", reference.HandleDoctors).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Session-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Session)

	// --- Форма записи ---
	// Текущее состояние сессии
	protected.HandleFunc("/intake", getIntake.Handle).Methods(http.MethodGet)

	// Изменение поля формы (каскадные перезагрузки зависимых данных)
	protected.HandleFunc("/intake/fields", updateIntakeField.Handle).Methods(http.MethodPut)

	// Выбор слота времени
	protected.HandleFunc("/intake/slot", selectSlot.Handle).Methods(http.MethodPost)

	// Подтверждение email
	protected.HandleFunc("/intake/otp/request", requestOtp.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/intake/otp/verify", verifyOtp.Handle).Methods(http.MethodPost)

	// Отправка формы
	protected.HandleFunc("/intake/submit", submitIntake.Handle).Methods(http.MethodPost)

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

	// Останавливаем janitor и закрываем живые сессии
	close(stopJanitorCh)
	sessions.CloseAll()
	log.Info("Session registry drained")

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

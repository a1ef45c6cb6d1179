package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/capstone-api/internal/config"
	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/handler"
	"github.com/aidar/capstone-api/internal/middleware"
	"github.com/aidar/capstone-api/internal/repository/document"
	"github.com/aidar/capstone-api/internal/service"
	"github.com/aidar/capstone-api/internal/storage"
	"github.com/aidar/capstone-api/internal/storage/filestore"
	"github.com/aidar/capstone-api/internal/storage/memstore"
	"github.com/aidar/capstone-api/internal/storage/pgstore"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	store  storage.DocumentStore
	router http.Handler
	server *http.Server
	logger *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Открываем хранилище коллекций
	if err := a.openStore(ctx); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully", "store", a.config.Store.Driver)
	return nil
}

// openStore выбирает реализацию хранилища по конфигурации
func (a *App) openStore(ctx context.Context) error {
	switch a.config.Store.Driver {
	case config.StoreDriverPostgres:
		if err := a.connectDB(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.store = pgstore.New(a.db, a.logger)
	case config.StoreDriverMemory:
		a.store = memstore.New()
	default:
		fs, err := filestore.New(a.config.Store.DataDir, a.logger)
		if err != nil {
			return err
		}
		a.store = fs
		a.logger.Info("Using file store", "dir", fs.Dir())
	}
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев (работа с коллекциями)
	userRepo := document.NewUserRepository(a.store)
	groupRepo := document.NewGroupRepository(a.store)
	ruleRepo := document.NewRuleRepository(a.store)
	contentRepo := document.NewContentRepository(a.store)
	groupDocRepo := document.NewGroupDocRepository(a.store)

	// Все изменения коллекции групп проходят через один мьютекс
	groupsMu := &sync.Mutex{}

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(
		userRepo,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	registrationService := service.NewRegistrationService(groupRepo, userRepo, ruleRepo, groupsMu, a.logger)
	groupService := service.NewGroupService(groupRepo, userRepo, groupsMu, a.logger)
	ruleService := service.NewRuleService(ruleRepo, a.config.Rules.Attributes, a.logger)
	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(contentRepo, groupDocRepo)
	statsService := service.NewStatsService(groupRepo, userRepo, ruleRepo)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(groupService, ruleService)
	groupHandler := handler.NewGroupHandler(registrationService, ruleService, contentService)
	userHandler := handler.NewUserHandler(userService, contentService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Middleware авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.CORS)

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		// Публичные эндпоинты (без авторизации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
		})

		// Защищенные эндпоинты (требуют токен в заголовке Authorization)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			// Эндпоинты администратора
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))

				r.Post("/groups", adminHandler.CreateGroup)
				r.Get("/groups", adminHandler.ListGroups)
				r.Put("/groups/{groupId}", adminHandler.UpdateGroup)
				r.Post("/groups/{groupId}/validate", adminHandler.ValidateGroup)
				r.Put("/project/{groupId}", adminHandler.StartProject)
				r.Post("/rules", adminHandler.SetRules)
				r.Get("/stats", statsHandler.GetStats)
			})

			// Эндпоинты команд (любой аутентифицированный пользователь)
			r.Route("/group", func(r chi.Router) {
				r.Post("/register", groupHandler.RegisterTeam)
				r.Get("/rules", groupHandler.ListRules)
				r.Post("/docs", groupHandler.UploadDoc)
			})

			// Эндпоинты пользователя
			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", userHandler.Profile)
				r.Get("/docs", userHandler.Docs)
				r.Get("/timeline", userHandler.Timeline)
				r.Get("/use-cases", userHandler.UseCases)
			})
		})
	})

	a.router = r

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Router возвращает настроенный HTTP роутер (используется в тестах с httptest)
func (a *App) Router() http.Handler {
	return a.router
}

// Store возвращает хранилище коллекций
func (a *App) Store() storage.DocumentStore {
	return a.store
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}

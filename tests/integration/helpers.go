package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/capstone-api/internal/app"
	"github.com/aidar/capstone-api/internal/config"
	"github.com/aidar/capstone-api/internal/domain"
	"github.com/aidar/capstone-api/internal/storage"
)

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	PostgresContainer *postgres.PostgresContainer
	App               *app.App
	Server            *httptest.Server
	BaseURL           string
	DB                *pgxpool.Pool
	DataDir           string
	ctx               context.Context
}

// SetupFileEnvironment поднимает приложение с файловым хранилищем,
// каталог данных заполняется копией seed файлов из data/
func SetupFileEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	dataDir := t.TempDir()
	copySeedData(t, dataDir)

	cfg := &config.Config{
		Store: config.StoreConfig{
			Driver:  config.StoreDriverFile,
			DataDir: dataDir,
		},
		JWT: config.JWTConfig{
			Secret:          "test-jwt-secret-key-for-integration-tests",
			ExpirationHours: 24,
		},
		Rules: config.RulesConfig{
			Attributes: []string{"learning_path", "university", "learning_group", "batch_id"},
		},
	}

	env := startApp(ctx, t, cfg)
	env.DataDir = dataDir
	return env
}

// SetupPostgresEnvironment поднимает PostgreSQL контейнер и приложение с драйвером postgres
func SetupPostgresEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	// Запускаем PostgreSQL контейнер
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("capstone_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	// Получаем строку подключения
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Применяем миграции
	applyMigrations(t, connStr)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.StoreDriverPostgres},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     "test_user",
			Password: "test_password",
			Name:     "capstone_test",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 2,
		},
		JWT: config.JWTConfig{
			Secret:          "test-jwt-secret-key-for-integration-tests",
			ExpirationHours: 24,
		},
		Rules: config.RulesConfig{
			Attributes: []string{"learning_path", "university", "learning_group", "batch_id"},
		},
	}

	env := startApp(ctx, t, cfg)
	env.PostgresContainer = pgContainer

	// Заполняем коллекцию пользователей из seed файла
	seedUsers(t, env)

	// Создаем подключение к БД для прямых запросов в тестах
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	env.DB = pool

	return env
}

func startApp(ctx context.Context, t *testing.T, cfg *config.Config) *TestEnvironment {
	t.Helper()

	// Создаем и инициализируем приложение
	application, err := app.New(cfg)
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "Failed to initialize application")

	server := httptest.NewServer(application.Router())

	return &TestEnvironment{
		App:     application,
		Server:  server,
		BaseURL: server.URL,
		ctx:     ctx,
	}
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	if te.Server != nil {
		te.Server.Close()
	}

	// Останавливаем приложение
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}

	// Закрываем подключение к БД
	if te.DB != nil {
		te.DB.Close()
	}

	// Останавливаем PostgreSQL контейнер
	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(te.ctx)
	}
}

// applyMigrations применяет миграции БД
func applyMigrations(t *testing.T, connStr string) {
	t.Helper()

	// Открываем подключение к БД
	db, err := sql.Open("pgx/v5", connStr)
	require.NoError(t, err, "Failed to open database connection")
	defer db.Close()

	// Читаем файл миграции
	projectRoot := getProjectRoot(t)
	migrationPath := filepath.Join(projectRoot, "migrations", "000001_init_schema.up.sql")

	migrationSQL, err := os.ReadFile(migrationPath)
	require.NoError(t, err, "Failed to read migration file")

	// Выполняем миграцию
	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err, "Failed to apply migration")

	t.Log("Migrations applied successfully")
}

// copySeedData копирует seed файлы коллекций в каталог данных теста
func copySeedData(t *testing.T, dst string) {
	t.Helper()

	src := filepath.Join(getProjectRoot(t), "data")
	entries, err := os.ReadDir(src)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, e.Name()), data, 0o644))
	}
}

// seedUsers загружает data/user.json в хранилище приложения
func seedUsers(t *testing.T, te *TestEnvironment) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(getProjectRoot(t), "data", storage.CollectionUsers+".json"))
	require.NoError(t, err)

	var users []*domain.User
	require.NoError(t, json.Unmarshal(data, &users))
	require.NoError(t, te.App.Store().Write(te.ctx, storage.CollectionUsers, users))
}

// getProjectRoot возвращает корневую директорию проекта
func getProjectRoot(t *testing.T) string {
	t.Helper()

	// Поднимаемся по директориям пока не найдем go.mod
	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

// MakeRequest вспомогательная функция для HTTP запросов в тестах
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to make request")

	return resp
}

// WaitForHealthCheck ждет пока приложение станет доступным
func (te *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(te.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("Application did not become healthy in time")
}

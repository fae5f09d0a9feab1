package main

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pigbank.backend/internal/config"
	plog "pigbank.backend/pkg/logger"
	"pigbank.backend/pkg/redis"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origInitMetrics := initMetrics
	origOpenDB := openDB
	origNewSessionStore := newSessionStore
	origRunServer := runServer
	origGetStdDB := getStdDB

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		initMetrics = origInitMetrics
		openDB = origOpenDB
		newSessionStore = origNewSessionStore
		runServer = origRunServer
		getStdDB = origGetStdDB
	})

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	// Re-registering collectors across tests panics, so metrics are a no-op
	initMetrics = func(string) {}
	initRedis = func(string, string) error { return nil }
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "pigbank",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL: "redis://localhost:6379",
		},
		JWT: config.JWTConfig{
			Secret:        "secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		Session: config.SessionConfig{
			EncryptionKey: "0000000000000000000000000000000000000000000000000000000000000000",
			TTL:           7 * 24 * time.Hour,
			CookieName:    "pigbank_session",
		},
		Bankful: config.BankfulConfig{
			BaseURL: "https://app.bankful.com/api/v2",
			Timeout: time.Second,
		},
		Metrics: config.MetricsConfig{Prefix: "pigbank"},
	}
}

func openSQLite(name string) func(string) (*gorm.DB, error) {
	return func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	}
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)
	initRedis = func(string, string) error { return errors.New("redis down") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected redis init error")
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_StdDBError(t *testing.T) {
	withMainHooks(t)
	openDB = openSQLite("main_stddb_err")
	getStdDB = func(*gorm.DB) (*sql.DB, error) { return nil, errors.New("no generic db") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected generic db error")
	}
}

func TestRunMainProcess_SessionStoreError(t *testing.T) {
	withMainHooks(t)
	openDB = openSQLite("main_session_err")
	newSessionStore = func(string) (*redis.SessionStore, error) { return nil, errors.New("bad session key") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected session store error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)
	openDB = openSQLite("main_server_err")
	runServer = func(*gin.Engine, string) error { return errors.New("listen failed") }

	if err := runMainProcess(); err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)
	openDB = openSQLite("main_success")
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

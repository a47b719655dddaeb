package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealmatcher/internal/gemini"
	"mealmatcher/internal/handlers"
	"mealmatcher/internal/logger"
	"mealmatcher/internal/repository"
	"mealmatcher/internal/repository/db"
	"mealmatcher/internal/server"
	"mealmatcher/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	model := gemini.NewClient(geminiConfig(log))
	services := service.NewService(repos, model, authConfig(log))
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetEnvPrefix("mealmatcher")
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "mealmatcher.db")
		dbPath = "mealmatcher.db"
	}
	return db.InitDB(dbPath)
}

// authConfig reads the token signing settings.
func authConfig(log *logger.Logger) service.AuthConfig {
	key := viper.GetString("auth.signing_key")
	if key == "" || key == "change-me" {
		log.Warnw("auth.signing_key is unset or the default; set MEALMATCHER_AUTH_SIGNING_KEY in production")
		if key == "" {
			key = "change-me"
		}
	}
	ttl := viper.GetDuration("auth.token_ttl")
	return service.AuthConfig{SigningKey: key, TokenTTL: ttl}
}

// geminiConfig reads the model client settings. The API key only comes from
// the environment, never the config file.
func geminiConfig(log *logger.Logger) gemini.Config {
	apiKey := os.Getenv("GEMINI_KEY")
	if apiKey == "" {
		log.Warnw("GEMINI_KEY is not set; recipe generation will fail")
	}
	return gemini.Config{
		BaseURL:    viper.GetString("gemini.base_url"),
		Model:      viper.GetString("gemini.model"),
		APIKey:     apiKey,
		Timeout:    viper.GetDuration("gemini.timeout"),
		MaxRetries: viper.GetUint64("gemini.max_retries"),
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

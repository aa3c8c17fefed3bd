package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "event_rsvp/docs"
	"event_rsvp/internal/handlers"
	"event_rsvp/internal/logger"
	"event_rsvp/internal/repository"
	"event_rsvp/internal/server"
	"event_rsvp/internal/service"

	"github.com/spf13/viper"
)

const sessionPurgeTick = 1 * time.Minute

// @title           Event RSVP API
// @version         1.0
// @description     Event attendance confirmations with device-key ownership and a cookie-authenticated admin panel.
// @BasePath        /
func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, serviceConfig())
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// bootstrap admin account
	created, err := services.Auth.EnsureDefaultAdmin(ctx)
	if err != nil {
		log.Fatalw("failed to ensure bootstrap admin", "err", err)
	}
	if created {
		log.Warnw("bootstrap admin created with the default password; rotate it",
			"username", service.DefaultAdminUsername)
	}

	// start session janitor
	go services.Sessions.Run(ctx, sessionPurgeTick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func serviceConfig() service.Config {
	return service.Config{
		SessionSigningKey:    viper.GetString("session.signing_key"),
		SessionTTL:           viper.GetDuration("session.ttl"),
		DefaultAdminPassword: viper.GetString("admin.default_password"),
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "rsvp.db")
		dbPath = "rsvp.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "3000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

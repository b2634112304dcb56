package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"fittrack-server/internal/config"
	"fittrack-server/internal/managers"
	"fittrack-server/internal/repositories"
	"fittrack-server/internal/routing"
)

// Init loads the configuration, connects to the database and starts the
// server. It blocks until the process is interrupted or the listener fails.
func Init() {
	cfg := config.Load()
	setLogLevel(cfg.LogLevel)

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	// Connect to database
	pool := initializeDatabase(&cfg.Database)
	defer pool.Close()

	// Initialize database manager
	databaseMgr := managers.NewDatabaseManager(pool)

	// Initialize JWT manager
	jwtMgr := managers.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize repositories
	repos, err := repositories.New(cfg.Storage.Backend, databaseMgr.GetPool())
	if err != nil {
		log.Fatal("error initializing repositories: ", err)
	}

	// Initialize router
	r := routing.InitRouter(databaseMgr, jwtMgr, repos)
	log.Println("Initialized router")

	// Handle interrupt signal gracefully
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)

		<-c
		log.Println("Server shutting down...")
		os.Exit(0)
	}()

	// Start server on the specified port
	log.Printf("Starting server on port %s...\n", cfg.Server.Port)
	err = http.ListenAndServe(":"+cfg.Server.Port, r)
	if err != nil {
		log.Fatal("Error starting server: ", err)
	}
}

func initializeDatabase(dbCfg *config.DatabaseConfig) *pgxpool.Pool {
	log.Info("Initializing database")

	if dbCfg.Password == "" {
		log.Fatal("DB_PASS not set")
	}

	url := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode)
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	poolCfg.MinConns = dbCfg.MinConns
	poolCfg.MaxConns = dbCfg.MaxConns
	poolCfg.MaxConnIdleTime = time.Minute * 2
	poolCfg.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func setLogLevel(logLevel string) {
	switch logLevel {
	case "DEBUG":
		log.SetLevel(log.DebugLevel)
	case "INFO":
		log.SetLevel(log.InfoLevel)
	case "WARN":
		log.SetLevel(log.WarnLevel)
	case "ERROR":
		log.SetLevel(log.ErrorLevel)
	case "FATAL":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	log.SetReportCaller(true)

	log.SetOutput(os.Stdout)
}

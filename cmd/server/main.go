package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/version"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fluxacct/client/acctdb"
	ldapc "fluxacct/client/ldap"
	"fluxacct/config"
	docs "fluxacct/internal/app/docs"
	"fluxacct/internal/app/router"
	"fluxacct/internal/module/bank"
	"fluxacct/internal/module/queue"
	"fluxacct/internal/module/user"
	"fluxacct/internal/pkg/log"
)

// @title           fluxacct
// @version         0.0.1-alpha
// @description     Flux accounting bank, user and queue administration
// @schema			http
// @BasePath        /api/v1
func main() {
	var (
		configFile      string
		addr            string
		dbPath          string
		logOutput       string
		logFormat       string
		logFile         string
		logLevel        string
		shutdownTimeout time.Duration
	)
	app := kingpin.New(filepath.Base(os.Args[0]), "Flux accounting HTTP API server.")
	app.HelpFlag.Short('h')
	app.Flag("config", "Path to YAML config file.").Short('c').Default("config.yaml").Envar("FLUXACCT_CONFIG").StringVar(&configFile)
	app.Flag("server.listen-addr", "Server listen address (e.g. :8080 or 127.0.0.1:8080); overrides server.addr.").Envar("FLUXACCT_ADDR").StringVar(&addr)
	app.Flag("acctdb.path", "sqlite database file; overrides acctdb.path.").Envar("FLUXACCT_DB").PlaceHolder("PATH").StringVar(&dbPath)
	app.Flag("log.level", "Log level, one of [debug, info, warn, error].").Default("info").EnumVar(&logLevel, "debug", "info", "warn", "error")
	app.Flag("log.output", "Log output, one of [stdout, stderr, file].").Default("stderr").EnumVar(&logOutput, "stdout", "stderr", "file")
	app.Flag("log.format", "Log format, one of [json, text].").Default("text").EnumVar(&logFormat, "json", "text")
	app.Flag("log.file", "Log file path when --log.output=file.").PlaceHolder("PATH").StringVar(&logFile)
	app.Flag("server.shutdown-timeout", "Graceful shutdown timeout (e.g. 10s)").Default("10s").DurationVar(&shutdownTimeout)
	app.PreAction(func(*kingpin.ParseContext) error {
		if strings.EqualFold(logOutput, "file") && strings.TrimSpace(logFile) == "" {
			return fmt.Errorf("--log.file is required when --log.output=file")
		}
		return nil
	})
	app.Version(version.Print("fluxacct-server"))

	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("failed to parse commandline arguments: %w", err))
		app.Usage(os.Args[1:])
		os.Exit(2)
	}

	logger, logClose, err := log.NewLogger(logOutput, logFormat, logFile, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logClose()

	// A missing default config file falls back to built-in defaults
	cfg, err := config.Load(configFile, configFile == "config.yaml")
	if err != nil {
		logger.Error("failed to load config", slog.String("path", configFile), slog.Any("err", err))
		os.Exit(1)
	}
	if dbPath != "" {
		cfg.Server.AcctDB.Driver = config.DriverSQLite
		cfg.Server.AcctDB.Path = dbPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	db, err := acctdb.New(cfg.Server.AcctDB, logger)
	if err != nil {
		logger.Error("failed to initialize acctdb client", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	var dir user.Directory
	if cfg.Server.LDAP.Enabled {
		lcli, err := ldapc.New(cfg.Server.LDAP, logger)
		if err != nil {
			logger.Error("failed to initialize ldap client", slog.Any("err", err))
			os.Exit(1)
		}
		defer lcli.Close()
		dir = lcli
	}

	r := router.New(logger)
	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册所有模块
	router.Register(
		bank.NewRouter(db, logger),
		user.NewRouter(db, dir, logger),
		queue.NewRouter(db, logger),
	)
	router.MountAll(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in background
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Server.Addr), slog.String("driver", db.Driver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		logger.Error("server failed", slog.Any("err", err))
		os.Exit(1)
	case <-quit:
	}
	logger.Info("shutting down server...")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}
	logger.Info("server exiting")
}

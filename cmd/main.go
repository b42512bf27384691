package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "github.com/adamanr/workflow_portal/internal/api/grpc"
	api "github.com/adamanr/workflow_portal/internal/api/http"
	"github.com/adamanr/workflow_portal/internal/config"
	"github.com/adamanr/workflow_portal/internal/controllers"
	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/metrics"
	"github.com/adamanr/workflow_portal/internal/timer"
	logging "github.com/adamanr/workflow_portal/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

var configPath string

var rootCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Role based HR portal",
	Long:  `WorkFlow portal serves the employee, HR and admin dashboards over HTTP and gRPC.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, configPath)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.toml", "path to the TOML config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, path string) error {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.GetConfig(path, bootstrap)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.SetupLogger(os.Stdout, cfg.Log.File, cfg.LogLevel())
	slog.SetDefault(logger)

	var tokens controllers.TokenStore = database.NewMemoryTokens()
	if cfg.Redis.Enabled {
		rdb, redisErr := database.NewRedisConn(ctx, cfg, logger)
		if redisErr != nil {
			return fmt.Errorf("failed to connect to Redis: %w", redisErr)
		}
		defer rdb.Close()
		tokens = rdb
	}

	seed, err := database.DefaultSeed()
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	validator, err := controllers.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to set up validator: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	scheduler := timer.NewCronScheduler()
	defer scheduler.Stop()

	deps := &controllers.Dependens{
		Tokens:     tokens,
		Workspaces: database.NewWorkspaces(cfg.Session.StoreMode, seed),
		Clock:      timer.SystemClock{},
		Scheduler:  scheduler,
		Validator:  validator,
		Metrics:    metrics.New(registry),
		Logger:     logger,
		Config:     cfg,
	}
	ctrls := controllers.NewControllers(deps)

	cancelPrune := scheduler.Every(time.Minute, func() {
		ctrls.AuthController.PruneExpired(context.Background())
	})
	defer cancelPrune()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(logger))
	r.Use(deps.Metrics.Middleware)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Handler:           api.HandlerFromMux(api.NewServer(deps, ctrls), r),
		Addr:              cfg.Server.Host,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	grpcServer := grpc.NewServer()
	grpcapi.RegisterPortalServer(grpcServer, grpcapi.NewServer(deps, ctrls))

	lis, err := net.Listen("tcp", cfg.Server.GRPCHost)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCHost, err)
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("HTTP server is starting", slog.String("address", cfg.Server.Host))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", serveErr)
		}
	}()

	go func() {
		logger.Info("gRPC server is starting", slog.String("address", cfg.Server.GRPCHost))
		if serveErr := grpcServer.Serve(lis); serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc server: %w", serveErr)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-errCh:
		logger.Error("Server failed", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Error shutting down HTTP server", slog.String("error", shutdownErr.Error()))
	}
	grpcServer.GracefulStop()

	return err
}

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	httpapi "task-service.com/task-service/internal/http"
	"task-service.com/task-service/internal/services"
)

var withWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task HTTP API, optionally with the worker pool in the same process",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(withWorker)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		taskService := a.taskService()

		var pool *services.PoolService
		if withWorker {
			pool = a.startPool(taskService)
		}

		e := echo.New()
		httpapi.Register(e, httpapi.NewHandler(taskService), a.cfg.RateLimit, a.logger)

		serverErr := make(chan error, 1)
		go func() {
			a.logger.Info("HTTP server listening", "addr", a.cfg.AppURL())
			if err := e.Start(a.cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		select {
		case <-ctx.Done():
		case err = <-serverErr:
			a.logger.Error("server stopped", "error", err)
		}

		shutdownCtx, cancel := a.shutdownContext()
		defer cancel()

		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			a.logger.Warn("http shutdown", "error", shutdownErr)
		}
		if pool != nil {
			pool.Shutdown(shutdownCtx)
		}

		a.logger.Info("HTTP server shut down gracefully", "with_worker", withWorker)
		return err
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withWorker, "with-worker", false, "also run the worker pool in this process")
	rootCmd.AddCommand(serveCmd)
}

package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the worker pool",
	Long:  "Consumes task ids from the configured queue and processes them",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool := a.startPool(a.taskService())

		<-ctx.Done()

		shutdownCtx, cancel := a.shutdownContext()
		defer cancel()
		pool.Shutdown(shutdownCtx)

		a.logger.Info("worker pool shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

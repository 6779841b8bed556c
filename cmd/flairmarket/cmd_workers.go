package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/treasuryofflair/flairmarket/app/jobs"
	"github.com/treasuryofflair/flairmarket/config"
	"github.com/treasuryofflair/flairmarket/pkg/cache"
	"github.com/treasuryofflair/flairmarket/pkg/database"
	"github.com/treasuryofflair/flairmarket/pkg/logger"
	"github.com/treasuryofflair/flairmarket/pkg/queue"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
)

var queueWorkersFlag int

// flairmarket queue:work runs a standalone queue consumer.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(cliDB)
		storage.Connect()

		jobs.Register()
		queue.UseDB(cliDB)
		if config.QueueDriver() == "redis" {
			if err := cache.Connect(); err != nil {
				logger.Warn("redis unavailable, using memory queue", "error", err)
			} else {
				queue.SetDriver(queue.NewRedisDriver(cache.RDB))
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = config.QueueWorkers()
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "Number of concurrent workers")
}

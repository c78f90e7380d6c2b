package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mytheresa/go-inventory/internal/cache"
	"github.com/mytheresa/go-inventory/internal/database"
	"github.com/mytheresa/go-inventory/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inventory page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if cfg.DBAutoMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}

		var rdb *redis.Client
		if cfg.RedisURL != "" {
			rdb, err = cache.NewRedisClient(cmd.Context(), cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			defer rdb.Close()
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router.New(cfg, db, rdb),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			log.Info().Msgf("inventory listening on :%d", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		// Graceful shutdown on SIGINT / SIGTERM
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case <-quit:
		}

		log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		log.Info().Msg("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

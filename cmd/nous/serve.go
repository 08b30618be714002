package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/nous"
	"github.com/aretw0/nous/internal/adapters"
	redisStore "github.com/aretw0/nous/internal/adapters/redis"
	"github.com/aretw0/nous/internal/logging"
	"github.com/aretw0/nous/internal/metrics"
	httpAdapter "github.com/aretw0/nous/pkg/adapters/http"
	"github.com/aretw0/nous/pkg/ports"
	"github.com/aretw0/nous/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP game server",
	Long:  `Starts the Nous engine in server mode, exposing game sessions over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		savePath, _ := cmd.Flags().GetString("save-path")
		debug, _ := cmd.Flags().GetBool("debug")

		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger := logging.New(logLevel)

		var store ports.SaveStore
		if redisAddr != "" {
			store = redisStore.New(redisAddr, "", 0, redisStore.WithTTL(24*time.Hour))
		} else {
			store = adapters.NewFileStore(savePath)
		}
		// Sessions share the store; slot access is serialized per slot.
		store = session.NewManager(store, session.WithLogger(logger))

		registry := prometheus.NewRegistry()
		engineMetrics := metrics.New(registry)

		factory := func(ctx context.Context) (*nous.Engine, error) {
			return nous.New(ctx,
				nous.WithLogger(logger),
				nous.WithSaveStore(store),
				nous.WithMetrics(engineMetrics),
			)
		}

		server := httpAdapter.NewServer(factory,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: server.Handler(),
		}

		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Nous Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Nous Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for shared save slots (e.g. localhost:6379)")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"producthunt/ingest-service/internal/config"
	"producthunt/ingest-service/internal/db"
	"producthunt/ingest-service/internal/scheduler"
)

var daemonLimit int

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Service: "ph-ingest",
		Version: "0.1.0",
	})
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the periodic ingest scheduler with a health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		worker, cleanup, err := newWorker(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		var rdb *redis.Client
		if cfg.RedisURL != "" {
			rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				return err
			}
			defer rdb.Close()
		} else {
			log.Println("[daemon] REDIS_URL not set — running without the cross-process run lock")
		}

		sched := scheduler.New(worker, rdb, cfg.ScrapeIntervalHours, daemonLimit)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()

		mux := http.NewServeMux()
		mux.HandleFunc("/health", healthHandler)

		addr := fmt.Sprintf(":%s", cfg.Port)
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			log.Printf("[daemon] Listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("[daemon] Fatal: %v", err)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Println("[daemon] Shutting down")
		return srv.Close()
	},
}

func init() {
	daemonCmd.Flags().IntVar(&daemonLimit, "limit", 20, "products to ingest per cycle")
}

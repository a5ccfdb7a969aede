// mirrorview serves a live, in-memory view of the orders mirror topic.
// It is the real-time consumer of the secondary store: it tails the compacted
// topic into a keyed snapshot and answers reads from memory only.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sreeaadya/drycleaners/internal/mirror"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	brokers := splitCSV(os.Getenv("MIRROR_BROKERS"))
	if len(brokers) == 0 {
		logger.Fatal("MIRROR_BROKERS is required")
	}
	topic := envDefault("MIRROR_ORDERS_TOPIC", "orders.mirror")
	addr := envDefault("MIRRORVIEW_ADDR", ":8090")
	size := envInt("MIRRORVIEW_SNAPSHOT_SIZE", 10000)

	snap, err := mirror.NewSnapshot(size)
	if err != nil {
		logger.Fatal("snapshot init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     envDefault("MIRRORVIEW_GROUP", "mirrorview"),
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	consumer := mirror.NewConsumer(reader, snap, logger)
	go consumer.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, snap.All())
	})
	mux.HandleFunc("GET /orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		sum, ok := snap.Get(r.PathValue("id"))
		if !ok {
			http.Error(w, "no order with this id", http.StatusNotFound)
			return
		}
		writeJSON(w, sum)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("mirrorview listening", zap.String("addr", addr), zap.String("topic", topic))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen failed", zap.Error(err))
	}
	logger.Info("mirrorview stopped")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

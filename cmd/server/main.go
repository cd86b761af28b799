// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/bazurtas/bazas/internal/auth"
	"github.com/bazurtas/bazas/internal/cache"
	"github.com/bazurtas/bazas/internal/handlers"
	"github.com/bazurtas/bazas/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := auth.Init(); err != nil {
		log.Fatalf("auth init failed: %v", err)
	}

	// History queue is optional; without Redis the games just run unlogged.
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Warnf("Historian queue disabled: %v", err)
		}
	}

	srv := handlers.NewGameServer(logger)

	mux := http.NewServeMux()

	mux.Handle("/game/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		srv.CreateGameHandler,
	)))
	mux.Handle("/game/list", middleware.LogMiddleware(logger)(http.HandlerFunc(
		srv.ListGamesHandler,
	)))

	mux.Handle("/game/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.GameWSHandler(logger, srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

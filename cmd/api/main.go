package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"puppy-spa/internal/platform/logger"
	"puppy-spa/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	logg := logger.NewFromEnv()

	// Sin DB explícita: el router decide por env (DB_DSN) o cae a in-memory (modo dev).
	r := router.NewRouter(router.Options{Logger: logg})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

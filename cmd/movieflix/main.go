package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"movieflix/internal/api"
	"movieflix/internal/config"
	"movieflix/internal/db"
)

func main() {
	log.Println("MovieFlix starting...")

	cfg := config.Load()

	var database *sql.DB
	if cfg.DemoMode {
		log.Println("demo mode enabled, running without a database")
	} else {
		var err error
		database, err = db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	srv := api.NewServer(cfg, database)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}

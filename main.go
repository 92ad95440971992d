package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assessor_gateway/config"
	"assessor_gateway/httputil"
	"assessor_gateway/logging"
	"assessor_gateway/scheduler"
	"assessor_gateway/scraper"
	"assessor_gateway/server"
	"assessor_gateway/services"
	"assessor_gateway/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile, err := logging.Setup("gateway.log")
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting assessor gateway...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Assessor form: %s", cfg.Assessor.FormURL)

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("Database: %s", cfg.DBPath)

	controller := scraper.NewController(&cfg.Assessor)
	lookups := services.NewLookupService(store, controller)

	mailer := services.NewMailer(&cfg.Mail, httputil.NewMailClient(&cfg.Mail))
	quotes := services.NewQuoteService(store, mailer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(cfg, store, httputil.NewProbeClient())
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(cfg, lookups, quotes, store).Handler(),
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Goodbye!")
}

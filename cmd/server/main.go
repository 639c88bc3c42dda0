package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ClubLedger/internal/config"
	"ClubLedger/internal/server"
	"ClubLedger/internal/service"
	"ClubLedger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/robfig/cron/v3"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ClubLedger starting...")

	lg := logger.Init("ClubLedger", true, false, io.Discard)
	defer lg.Close()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = ss
		}
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// Init tracker
	tracker := service.New(st, cfg.CacheTTL(), cfg.Rate.FallbackAmount)
	if err := tracker.Refresh(); err != nil {
		log.Printf("[WARN] initial snapshot load: %v", err)
	}

	// Optional periodic cache re-warm
	var c *cron.Cron
	if spec := cfg.Snapshot.RefreshCron; spec != "" {
		c = cron.New(cron.WithSeconds())
		if _, err := c.AddFunc(spec, func() {
			if err := tracker.Refresh(); err != nil {
				log.Printf("[ERROR] snapshot refresh: %v", err)
			}
		}); err != nil {
			log.Fatalf("[FATAL] register refresh cron: %v", err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("[INFO] snapshot refresh scheduled: %s", spec)
	}

	// Set up the router
	r := gin.Default()
	httpHandler := server.NewHTTPHandler(tracker, cfg.Auth.AdminPassword, cfg.Auth.GuestPassword)
	httpHandler.RegisterRoutes(r)

	srv := &http.Server{Addr: cfg.Server.Listen, Handler: r}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	log.Println("[INFO] ClubLedger stopped")
}

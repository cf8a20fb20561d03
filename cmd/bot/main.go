package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoachSentinel/internal/batch"
	"CoachSentinel/internal/config"
	"CoachSentinel/internal/notifier"
	"CoachSentinel/internal/provider"
	"CoachSentinel/internal/recorder"
	"CoachSentinel/internal/scheduler"
	"CoachSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CoachSentinel starting...")

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

	// Init snapshot provider
	var prov provider.SnapshotProvider
	if cfg.Database.PlatformPath != "" {
		sp, err := provider.NewSQLiteProvider(cfg.Database.PlatformPath)
		if err != nil {
			log.Fatalf("[FATAL] init snapshot provider: %v", err)
		}
		defer sp.Close()
		prov = sp
	} else {
		log.Println("[WARN] no platform database configured, using demo data")
		prov = provider.NewDemoProvider(time.Now())
	}
	log.Printf("[INFO] snapshot provider: %s", prov.Name())

	// Init scoring engine
	engine, err := strategy.NewEngine(cfg.Engine.Weights)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}
	runner := batch.NewRunner(prov, engine, cfg.Engine.MaxConcurrent)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.RecorderPath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.RecorderPath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, runner, prov, tn, rec, cfg.Engine.CoachID)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing digest now")
		go sched.RunDigestNow()
	}

	log.Println("[INFO] CoachSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CoachSentinel stopped")
}

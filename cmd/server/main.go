package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/adwizard/internal/accounts"
	"github.com/ignite/adwizard/internal/adsplatform"
	"github.com/ignite/adwizard/internal/api"
	"github.com/ignite/adwizard/internal/config"
	"github.com/ignite/adwizard/internal/currency"
	"github.com/ignite/adwizard/internal/forecast"
	"github.com/ignite/adwizard/internal/metricscache"
	"github.com/ignite/adwizard/internal/publish"
	"github.com/ignite/adwizard/internal/repository/postgres"
	"github.com/ignite/adwizard/internal/service/drafts"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Ad Wizard server (cmd/server/main.go)")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it the CPC cache misses everything and FX
	// snapshots don't survive restarts.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})
		} else {
			redisClient = redis.NewClient(opts)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, continuing without cache: %v", err)
			redisClient = nil
		} else {
			log.Println("Redis connected")
		}
	}

	// Currency service with live rates and a redis snapshot fallback
	var ratesSource currency.RatesSource
	if cfg.Rates.BaseURL != "" {
		ratesSource = currency.NewClient(cfg.Rates.BaseURL, cfg.Rates.Timeout())
	}
	currencySvc := currency.NewService(ratesSource, redisClient)

	// Ads platform client covers accounts, keyword metrics, and publishing
	platformClient := adsplatform.NewClient(adsplatform.Config{
		BaseURL: cfg.AdsPlatform.BaseURL,
		APIKey:  cfg.AdsPlatform.APIKey,
		Timeout: cfg.AdsPlatform.Timeout(),
	})

	calculator := forecast.NewCalculator(platformClient, metricscache.New(redisClient))

	adsUserID := os.Getenv("ADS_USER_ID")
	if adsUserID == "" {
		adsUserID = "default"
	}
	reconciler := accounts.NewReconciler(platformClient, adsUserID,
		cfg.Accounts.MaxVisible, cfg.Accounts.RefreshDebounce())
	defer reconciler.Close()

	// SQS wires the account push feed and best-effort campaign registration
	var registrar publish.Registrar
	var consumer *accounts.Consumer
	if cfg.SQS.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SQS.Region))
		if err != nil {
			log.Printf("AWS config unavailable, push events disabled: %v", err)
		} else {
			sqsClient := sqs.NewFromConfig(awsCfg)
			if cfg.SQS.AccountEventsQueueURL != "" {
				consumer = accounts.NewConsumer(sqsClient, cfg.SQS.AccountEventsQueueURL, reconciler)
				consumer.Start(ctx)
			}
			if cfg.SQS.RegistrationQueueURL != "" {
				registrar = publish.NewSQSRegistrar(sqsClient, cfg.SQS.RegistrationQueueURL)
			}
		}
	}

	orchestrator := publish.NewOrchestrator(platformClient, registrar,
		cfg.Publish.ProgressTick(), cfg.Publish.ProgressStep)

	// Postgres is optional: without it drafts are not persisted between
	// sessions and the draft routes return 503.
	var draftSvc *drafts.Service
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Printf("Postgres open failed, drafts disabled: %v", err)
		} else if err := db.PingContext(ctx); err != nil {
			log.Printf("Postgres unreachable, drafts disabled: %v", err)
			db.Close()
		} else {
			db.SetMaxOpenConns(10)
			draftSvc = drafts.NewService(postgres.NewDraftRepo(db))
			defer db.Close()
			log.Println("Postgres connected, draft persistence enabled")
		}
	}

	handlers := api.NewHandlers(currencySvc, calculator, reconciler, orchestrator, draftSvc, cfg)
	router := api.SetupRoutes(handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	cancel()
	if consumer != nil {
		consumer.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

// Package main provides a console collaborator for the fraud-prediction
// backend: it wires the session layer end to end — durable token storage,
// login, sample prediction, history, and health/stats polling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fraudwatch-client/internal/api"
	"fraudwatch-client/internal/config"
	"fraudwatch-client/internal/domain"
	"fraudwatch-client/internal/history"
	"fraudwatch-client/internal/notify"
	"fraudwatch-client/internal/observability"
	"fraudwatch-client/internal/poller"
	"fraudwatch-client/internal/session"
	"fraudwatch-client/internal/storage/sqlite"
)

func main() {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Parse flags (env vars as defaults)
	baseURL := flag.String("api-url", cfg.BaseURL, "Backend base URL")
	dbPath := flag.String("db-path", cfg.DBPath, "SQLite file for the persisted session token")
	username := flag.String("login", "", "Username to log in with")
	password := flag.String("password", "", "Password for -login")
	register := flag.Bool("register", false, "Register the account before logging in")
	email := flag.String("email", "", "Email for -register")
	fraudSample := flag.Bool("fraud-sample", false, "Predict a fraud sample instead of a legitimate one")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Prometheus metrics address (empty disables)")
	flag.Parse()

	logger := log.New(os.Stdout, "[console] ", log.LstdFlags)

	tokenStore, err := sqlite.NewTokenStore(*dbPath)
	if err != nil {
		logger.Fatalf("open token storage: %v", err)
	}
	defer tokenStore.Close()

	store := session.New(session.Options{Persist: tokenStore, Logger: logger})
	bus := notify.NewBus()
	client := api.New(*baseURL, store, bus, api.WithTimeout(cfg.RequestTimeout))
	ring := history.NewRing(cfg.HistorySize)

	// The navigation collaborator: any forced or voluntary logout lands here.
	unsubscribe := bus.Subscribe(func() {
		logger.Println("session expired: please log in again")
	})
	defer unsubscribe()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *register {
		profile, err := client.Register(ctx, domain.Registration{
			Username: *username,
			Email:    *email,
			Password: *password,
		})
		if err != nil {
			logger.Fatalf("register: %v", err)
		}
		logger.Printf("registered %s", profile.Username)
	}

	if *username != "" {
		if _, err := client.Login(ctx, *username, *password); err != nil {
			if api.IsUnauthorized(err) {
				logger.Fatal("login: invalid credentials")
			}
			logger.Fatalf("login: %v", err)
		}
		profile, err := client.CurrentUser(ctx)
		if err != nil {
			logger.Fatalf("fetch profile: %v", err)
		}
		logger.Printf("logged in as %s", profile.Username)
	} else if store.HasToken() {
		logger.Println("resuming persisted session")
	}

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
		logger.Printf("metrics on %s/metrics", *metricsAddr)
	}

	if err := runDemo(ctx, client, ring, *fraudSample, logger); err != nil {
		logger.Printf("demo prediction: %v", err)
	}

	p := poller.New(logger)
	defer p.Close()

	p.Start("health", cfg.HealthInterval, func(ctx context.Context) (interface{}, error) {
		return client.Health(ctx)
	}, func(result interface{}) {
		h := result.(*domain.HealthStatus)
		logger.Printf("health: %s (model loaded: %v)", h.Status, h.ModelLoaded)
	}, nil)

	p.Start("stats", cfg.StatsInterval, func(ctx context.Context) (interface{}, error) {
		return client.Stats(ctx)
	}, func(result interface{}) {
		s := result.(*domain.StatsSnapshot)
		logger.Printf("stats: %d predictions, %d fraud (rate %.4f)",
			s.TotalPredictions, s.FraudDetected, s.FraudRate)
	}, nil)

	<-ctx.Done()
	logger.Println("shutting down")
}

// runDemo fetches a sample transaction, predicts it, and records the
// result in the history ring.
func runDemo(ctx context.Context, client *api.Client, ring *history.Ring, fraud bool, logger *log.Logger) error {
	var (
		sample *domain.TransactionFeatures
		err    error
	)
	if fraud {
		sample, err = client.SampleFraud(ctx)
	} else {
		sample, err = client.SampleLegitimate(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetch sample: %w", err)
	}

	pred, err := client.Predict(ctx, *sample)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	entry := ring.Push(*sample, *pred)
	logger.Printf("prediction %s: fraud=%v probability=%.4f risk=%d confidence=%s",
		entry.ID, pred.IsFraud, pred.FraudProbability, pred.RiskScore, pred.Confidence)

	for _, e := range ring.All() {
		logger.Printf("history: %s %s fraud=%v", e.Timestamp.Format("15:04:05"), e.ID, e.Result.IsFraud)
	}
	return nil
}

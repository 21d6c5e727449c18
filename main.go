package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/alexbotov/go-hirez/internal/config"
	"github.com/alexbotov/go-hirez/pkg/hirez"
)

// Demo binary: checks connectivity and prints today's usage limits for the
// configured developer credentials.
func main() {
	cfg := config.Load()
	logger := &log.Logger{Handler: cli.New(os.Stderr), Level: log.InfoLevel}
	if os.Getenv("HIREZ_DEBUG") != "" {
		logger.Level = log.DebugLevel
	}

	if cfg.DevID == "" || cfg.AuthKey == "" {
		logger.Fatal("HIREZ_DEV_ID and HIREZ_AUTH_KEY must be set")
	}

	endpoint, err := hirez.ParseEndpoint(cfg.Endpoint)
	if err != nil {
		logger.WithError(err).Fatal("invalid HIREZ_ENDPOINT")
	}
	language, err := hirez.ParseLanguage(cfg.Language)
	if err != nil {
		logger.WithError(err).Fatal("invalid HIREZ_LANGUAGE")
	}

	client := hirez.NewClient(&hirez.ClientConfig{
		DevID:           cfg.DevID,
		AuthKey:         cfg.AuthKey,
		DefaultEndpoint: endpoint,
		DefaultLanguage: language,
		Timeout:         cfg.Timeout,
		Logger:          logger,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	ok, err := client.Ping(ctx)
	if err != nil {
		logger.WithError(err).Fatal("ping failed")
	}
	if !ok {
		logger.Warn("API reachable but did not report a successful ping")
	}

	limits, err := client.GetDataUsed(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to fetch usage limits")
	}

	fmt.Printf("endpoint:        %s\n", endpoint)
	fmt.Printf("requests today:  %d of %d (%d left)\n", limits.TotalRequests, limits.RequestLimit, limits.RequestsLeft())
	fmt.Printf("sessions today:  %d of %d (%d left)\n", limits.TotalSessions, limits.SessionCap, limits.SessionsLeft())
	fmt.Printf("active sessions: %d (limit %d, %d min each)\n", limits.ActiveSessions, limits.ConcurrentSessions, limits.SessionTimeLimit)
}

// gatekey-check runs one license verification from the command line.
// Useful for validating provider configuration and endpoint health before
// wiring the SDK into a game backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gatekey/gatekey-go/cache"
	"github.com/gatekey/gatekey-go/config"
	"github.com/gatekey/gatekey-go/license"
	"github.com/gatekey/gatekey-go/rpc"
	"github.com/gatekey/gatekey-go/shared/logging"
	"github.com/gatekey/gatekey-go/shared/monitoring"
)

func main() {
	walletFlag := flag.String("wallet", "", "wallet address to check")
	flag.Parse()

	if *walletFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: gatekey-check -wallet 0x...")
		os.Exit(2)
	}

	cfg := config.NewConfig()
	logger := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Service:     "gatekey-check",
		Environment: cfg.Sentry.Environment,
		Output:      os.Stderr,
		Pretty:      true,
	})

	var reporter monitoring.Reporter = monitoring.NopReporter{}
	if cfg.Sentry.DSN != "" {
		sentryReporter, err := monitoring.NewSentryReporter(cfg.Sentry)
		if err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			reporter = sentryReporter
			defer sentryReporter.Flush(2 * time.Second)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider, err := rpc.NewProvider(cfg.RPC, cfg.ChainID,
		rpc.WithLogger(logger),
		rpc.WithReporter(reporter),
	)
	if err != nil {
		log.Fatalf("Failed to build provider: %v", err)
	}
	defer provider.Close()

	if err := provider.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize provider: %v", err)
	}

	height, err := provider.BlockNumber(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch block number: %v", err)
	}
	logger.Info().Uint64("block_number", height).Msg("connected")

	verifier, err := license.NewVerifier(provider, cfg.LicenseContract,
		license.WithLogger(logger),
		license.WithReporter(reporter),
		license.WithCache(cache.NewMemory(), cfg.CacheTTL, cfg.CacheNegativeTTL),
	)
	if err != nil {
		log.Fatalf("Failed to build verifier: %v", err)
	}

	verification, err := verifier.Verify(ctx, *walletFlag)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}

	out, _ := json.MarshalIndent(verification, "", "  ")
	fmt.Println(string(out))
}

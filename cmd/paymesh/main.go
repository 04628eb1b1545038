// PayMesh relay: forwards pay requests to the PayMesh contract on Starknet.
// Usage: go run ./cmd/paymesh
//
// @title        PayMesh Relay API
// @version      1.0
// @description  Relays pay requests to the PayMesh contract on Starknet.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paymesh/paymesh-server/internal/api"
	"github.com/paymesh/paymesh-server/internal/client"
	"github.com/paymesh/paymesh-server/internal/config"
	"github.com/paymesh/paymesh-server/internal/handler"
	"github.com/paymesh/paymesh-server/internal/logger"
	"github.com/paymesh/paymesh-server/internal/metrics"
	"github.com/paymesh/paymesh-server/starknet"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires the relay. Every error returned before the servers start is a configuration error.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	signer, err := starknet.LoadSigner(starknet.SignerSource{
		AccountAddress: cfg.AccountAddress,
		ChainID:        cfg.ChainID,
		PrivateKey:     cfg.PrivateKey,
		KeystoreFile:   cfg.KeystoreFile,
		Password:       cfg.KeystorePasswordBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to load signer: %w", err)
	}

	starknetClient, err := client.NewStarknetClient(ctx, cfg, signer)
	if err != nil {
		return err
	}

	recorder := metrics.NewPrometheusRecorder()

	relay, err := starknet.NewRelay(starknetClient, cfg.ContractAddress, log, recorder)
	if err != nil {
		return err
	}

	router := api.SetupRouter(cfg, handler.NewPaymeshHandler(relay, log, recorder))

	// pay requests hold the connection for the RPC round trip
	writeTimeout := cfg.RPCTimeout + 15*time.Second

	servers := []*http.Server{newServer(cfg.Addr(), router, writeTimeout)}
	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", recorder.Handler())
		servers = append(servers, newServer(cfg.MetricsAddr, metricsMux, writeTimeout))
	}

	log.Info("paymesh relay starting", map[string]any{
		"addr":     cfg.Addr(),
		"metrics":  cfg.MetricsAddr,
		"signer":   signer.String(),
		"contract": cfg.ContractAddress,
		"env":      cfg.Env,
	})

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("paymesh relay shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

func newServer(addr string, h http.Handler, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

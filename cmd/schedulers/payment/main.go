package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/api"
	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/client"
	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/config"
	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/metrics"
	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/scheduler"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	if err := logging.InitServiceLogger(logging.NewDefaultConfig(logging.PaymentSchedulerProcess)); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logging.Shutdown()
	logger := logging.GetServiceLogger()

	logger.Info("Starting payment scheduler...",
		"dev_mode", config.IsDevMode(),
		"port", config.GetSchedulerRPCPort(),
		"dbserver", config.GetDBServerURL(),
		"polling_interval", config.GetPollingInterval(),
	)

	metrics.StartMetricsCollection()

	networks, err := chain.LoadConfig(config.GetNetworksConfigPath())
	if err != nil {
		logger.Fatalf("Failed to load networks config: %v", err)
	}
	network, err := networks.Network(config.GetNetworkName())
	if err != nil {
		logger.Fatalf("Failed to resolve network: %v", err)
	}

	ethClient, err := chain.Dial(network.RPCURL)
	if err != nil {
		logger.Fatalf("Failed to connect to RPC %s: %v", network.RPCURL, err)
	}
	defer ethClient.Close()

	signer, err := chain.NewPrivateKeySigner(config.GetSchedulerPrivateKey())
	if err != nil {
		logger.Fatalf("Failed to load scheduler key: %v", err)
	}

	dbClient, err := client.NewDBServerClient(logger, config.GetDBServerURL())
	if err != nil {
		logger.Fatalf("Failed to create database client: %v", err)
	}
	defer dbClient.Close()

	executor := chain.NewExecutor(ethClient, signer, logger,
		chain.WithConfirmTimeout(config.GetConfirmTimeout()))
	paymentScheduler := scheduler.NewPaymentScheduler(
		logger,
		dbClient,
		scheduler.NewChainTransferExecutor(executor),
		config.GetPollingInterval(),
	)

	server := api.NewServer(api.Config{Port: config.GetSchedulerRPCPort()}, api.Dependencies{Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		paymentScheduler.Start(ctx)
	}()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatalf("API server error: %v", err)
	case sig := <-quit:
		logger.Info("Received shutdown signal", "signal", sig.String())
	}

	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Info("Payment scheduler stopped")
}

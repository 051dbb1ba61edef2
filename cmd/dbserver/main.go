package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokenforge/tokenforge-backend/internal/dbserver"
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/config"
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/handlers"
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/metrics"
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/repository"
	"github.com/tokenforge/tokenforge-backend/pkg/chain"
	"github.com/tokenforge/tokenforge-backend/pkg/database"
	httpclient "github.com/tokenforge/tokenforge-backend/pkg/http"
	"github.com/tokenforge/tokenforge-backend/pkg/ipfs"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	if err := logging.InitServiceLogger(logging.NewDefaultConfig(logging.DatabaseProcess)); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logging.Shutdown()
	logger := logging.GetServiceLogger()

	logger.Info("Starting database server...",
		"dev_mode", config.IsDevMode(),
		"port", config.GetDBServerRPCPort(),
		"network", config.GetNetworkName(),
	)

	metrics.StartSystemMetricsCollection()

	dbConfig := database.NewConfig(config.GetDatabaseHostAddress(), config.GetDatabaseHostPort())
	db, err := database.NewConnection(dbConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.InitSchema(db.Session()); err != nil {
		logger.Fatalf("Failed to initialize schema: %v", err)
	}

	networks, err := chain.LoadConfig(config.GetNetworksConfigPath())
	if err != nil {
		logger.Fatalf("Failed to load networks config: %v", err)
	}
	network, err := networks.Network(config.GetNetworkName())
	if err != nil {
		logger.Fatalf("Failed to resolve network: %v", err)
	}
	schedule, err := network.FeeSchedule()
	if err != nil {
		logger.Fatalf("Failed to parse fee schedule: %v", err)
	}

	client, err := chain.Dial(network.RPCURL)
	if err != nil {
		logger.Fatalf("Failed to connect to RPC %s: %v", network.RPCURL, err)
	}
	defer client.Close()

	signer, err := chain.NewPrivateKeySigner(config.GetDeployerPrivateKey())
	if err != nil {
		logger.Fatalf("Failed to load deployer key: %v", err)
	}

	publisher, err := ipfs.NewPublisher(ipfsConfig(), logger)
	if err != nil {
		logger.Fatalf("Failed to initialize IPFS publisher: %v", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Errorf("Failed to close IPFS publisher: %v", err)
		}
	}()

	gatewayClient, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPRetryConfig(), logger)
	if err != nil {
		logger.Fatalf("Failed to create gateway HTTP client: %v", err)
	}
	defer gatewayClient.Close()

	server := dbserver.NewServer(handlers.Dependencies{
		Logger:    logger,
		DB:        db,
		Payments:  repository.NewPaymentRepository(db),
		History:   repository.NewHistoryRepository(db),
		Tokens:    repository.NewTokenRepository(db),
		Publisher: publisher,
		Executor:  chain.NewExecutor(client, signer, logger),
		Network:   network,
		Schedule:  schedule,
		HTTP:      gatewayClient,
		Gateway:   config.GetIpfsGatewayURL(),
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatalf("Server error: %v", err)
	case sig := <-quit:
		logger.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Info("Database server stopped")
}

func ipfsConfig() *ipfs.Config {
	if config.GetIpfsMode() == string(ipfs.ModeNode) {
		return ipfs.NewNodeConfig(config.GetIpfsNodeURL())
	}
	return ipfs.NewPinataConfig(config.GetPinataHost(), config.GetPinataJWT())
}

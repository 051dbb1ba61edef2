package config

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tokenforge/tokenforge-backend/pkg/env"
	"github.com/tokenforge/tokenforge-backend/pkg/validator"
)

type Config struct {
	devMode bool

	// Scheduler RPC Port
	schedulerRPCPort string

	// Database Server RPC URL
	dbServerURL string

	// Operator wallet signing the transfer transactions
	schedulerPrivateKey string

	// Network selection and chain config file
	networksConfigPath string
	networkName        string

	// Time Durations
	pollingInterval time.Duration
	confirmTimeout  time.Duration
}

var cfg Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:             env.GetEnvBool("DEV_MODE", false),
		schedulerRPCPort:    env.GetEnvString("SCHEDULER_RPC_PORT", "9004"),
		dbServerURL:         env.GetEnvString("DBSERVER_RPC_URL", "http://localhost:9002"),
		schedulerPrivateKey: env.GetEnvString("SCHEDULER_PRIVATE_KEY", ""),
		networksConfigPath:  env.GetEnvString("NETWORKS_CONFIG_PATH", "config/networks.yaml"),
		networkName:         env.GetEnvString("NETWORK_NAME", ""),
		pollingInterval:     env.GetEnvDuration("POLLING_INTERVAL", 30*time.Second),
		confirmTimeout:      env.GetEnvDuration("CONFIRM_TIMEOUT", 90*time.Second),
	}
	if err := validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.devMode {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func validateConfig() error {
	if !validator.IsValidPrivateKey(cfg.schedulerPrivateKey) {
		return fmt.Errorf("invalid scheduler private key")
	}
	if cfg.pollingInterval <= 0 {
		return fmt.Errorf("polling interval must be positive")
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetSchedulerRPCPort() string {
	return cfg.schedulerRPCPort
}

func GetDBServerURL() string {
	return cfg.dbServerURL
}

func GetSchedulerPrivateKey() string {
	return cfg.schedulerPrivateKey
}

func GetNetworksConfigPath() string {
	return cfg.networksConfigPath
}

func GetNetworkName() string {
	return cfg.networkName
}

func GetPollingInterval() time.Duration {
	return cfg.pollingInterval
}

func GetConfirmTimeout() time.Duration {
	return cfg.confirmTimeout
}

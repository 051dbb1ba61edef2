package config

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tokenforge/tokenforge-backend/pkg/env"
	"github.com/tokenforge/tokenforge-backend/pkg/validator"
)

type Config struct {
	devMode bool

	// Database Server RPC Port
	dbServerRPCPort string

	// ScyllaDB Host and Port
	databaseHostAddress string
	databaseHostPort    string

	// Network selection and chain config file
	networksConfigPath string
	networkName        string

	// Operator wallet used for deployments and burns requested over the API
	deployerPrivateKey string

	// IPFS publishing
	ipfsMode       string
	pinataJWT      string
	pinataHost     string
	ipfsNodeURL    string
	ipfsGatewayURL string
}

var cfg Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	cfg = Config{
		devMode:             env.GetEnvBool("DEV_MODE", false),
		dbServerRPCPort:     env.GetEnvString("DBSERVER_RPC_PORT", "9002"),
		databaseHostAddress: env.GetEnvString("DATABASE_HOST", "localhost"),
		databaseHostPort:    env.GetEnvString("DATABASE_HOST_PORT", "9042"),
		networksConfigPath:  env.GetEnvString("NETWORKS_CONFIG_PATH", "config/networks.yaml"),
		networkName:         env.GetEnvString("NETWORK_NAME", ""),
		deployerPrivateKey:  env.GetEnvString("DEPLOYER_PRIVATE_KEY", ""),
		ipfsMode:            env.GetEnvString("IPFS_MODE", "pinata"),
		pinataJWT:           env.GetEnvString("PINATA_JWT", ""),
		pinataHost:          env.GetEnvString("PINATA_HOST", "https://uploads.pinata.cloud"),
		ipfsNodeURL:         env.GetEnvString("IPFS_NODE_URL", "localhost:5001"),
		ipfsGatewayURL:      env.GetEnvString("IPFS_GATEWAY_URL", "https://gateway.pinata.cloud"),
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
	if !validator.IsValidPrivateKey(cfg.deployerPrivateKey) {
		return fmt.Errorf("invalid deployer private key")
	}
	if cfg.ipfsMode == "pinata" && cfg.pinataJWT == "" {
		return fmt.Errorf("PINATA_JWT is required in pinata mode")
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetDBServerRPCPort() string {
	return cfg.dbServerRPCPort
}

func GetDatabaseHostAddress() string {
	return cfg.databaseHostAddress
}

func GetDatabaseHostPort() string {
	return cfg.databaseHostPort
}

func GetNetworksConfigPath() string {
	return cfg.networksConfigPath
}

func GetNetworkName() string {
	return cfg.networkName
}

func GetDeployerPrivateKey() string {
	return cfg.deployerPrivateKey
}

func GetIpfsMode() string {
	return cfg.ipfsMode
}

func GetPinataJWT() string {
	return cfg.pinataJWT
}

func GetPinataHost() string {
	return cfg.pinataHost
}

func GetIpfsNodeURL() string {
	return cfg.ipfsNodeURL
}

func GetIpfsGatewayURL() string {
	return cfg.ipfsGatewayURL
}

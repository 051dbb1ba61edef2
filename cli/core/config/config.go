package config

import (
	"github.com/joho/godotenv"

	"github.com/tokenforge/tokenforge-backend/pkg/env"
)

type Config struct {
	dbServerURL  string
	keystoreDir  string
	networkName  string
	networksPath string
}

var cfg Config

func Init() error {
	// A missing .env is fine; every setting has a default.
	_ = godotenv.Load()

	cfg = Config{
		dbServerURL:  env.GetEnvString("DBSERVER_RPC_URL", "http://localhost:9002"),
		keystoreDir:  env.GetEnvString("KEYSTORE_DIR", "keys"),
		networkName:  env.GetEnvString("NETWORK_NAME", ""),
		networksPath: env.GetEnvString("NETWORKS_CONFIG_PATH", "config/networks.yaml"),
	}
	return nil
}

func GetDBServerURL() string {
	return cfg.dbServerURL
}

func GetKeystoreDir() string {
	return cfg.keystoreDir
}

func GetNetworkName() string {
	return cfg.networkName
}

func GetNetworksConfigPath() string {
	return cfg.networksPath
}

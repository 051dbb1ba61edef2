package chain

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/tokenforge/tokenforge-backend/pkg/fees"
	"github.com/tokenforge/tokenforge-backend/pkg/validator"
)

// NetworkConfig describes one chain the services can talk to.
type NetworkConfig struct {
	Name           string `yaml:"name"`
	RPCURL         string `yaml:"rpc_url"`
	ChainID        int64  `yaml:"chain_id"`
	FactoryAddress string `yaml:"factory_address"`
	BaseFee        string `yaml:"base_fee"`
	MetadataFee    string `yaml:"metadata_fee"`
}

// Config is the full networks file.
type Config struct {
	DefaultNetwork string                   `yaml:"default_network"`
	Networks       map[string]NetworkConfig `yaml:"networks"`
}

// LoadConfig reads and validates the networks YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse networks config: %w", err)
	}

	if len(cfg.Networks) == 0 {
		return nil, fmt.Errorf("networks config defines no networks")
	}
	if _, ok := cfg.Networks[cfg.DefaultNetwork]; !ok {
		return nil, fmt.Errorf("default network %q is not defined", cfg.DefaultNetwork)
	}
	for name, network := range cfg.Networks {
		if err := network.Validate(); err != nil {
			return nil, fmt.Errorf("network %q: %w", name, err)
		}
	}

	return &cfg, nil
}

func (n NetworkConfig) Validate() error {
	if !validator.IsValidRPCAddress(n.RPCURL) {
		return fmt.Errorf("invalid rpc_url: %s", n.RPCURL)
	}
	if n.ChainID <= 0 {
		return fmt.Errorf("chain_id must be positive")
	}
	if !validator.IsValidAddress(n.FactoryAddress) {
		return fmt.Errorf("invalid factory_address: %s", n.FactoryAddress)
	}
	// Reject negative fees at load time, the fee calculator assumes them valid
	if _, err := n.FeeSchedule(); err != nil {
		return err
	}
	return nil
}

// FeeSchedule builds the fee schedule for this network.
func (n NetworkConfig) FeeSchedule() (fees.Schedule, error) {
	return fees.NewSchedule(n.BaseFee, n.MetadataFee)
}

// Network returns the named network, falling back to the default.
func (c *Config) Network(name string) (NetworkConfig, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	network, ok := c.Networks[name]
	if !ok {
		return NetworkConfig{}, fmt.Errorf("unknown network: %s", name)
	}
	return network, nil
}

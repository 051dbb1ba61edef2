package chain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNetworksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validNetworksYAML = `
default_network: testnet
networks:
  testnet:
    name: testnet
    rpc_url: https://rpc.testnet.example.org
    chain_id: 11155111
    factory_address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
    base_fee: "0.1"
    metadata_fee: "0.05"
  mainnet:
    name: mainnet
    rpc_url: https://rpc.example.org
    chain_id: 1
    factory_address: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
    base_fee: "1"
    metadata_fee: "0.5"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeNetworksFile(t, validNetworksYAML))
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.DefaultNetwork)
	assert.Len(t, cfg.Networks, 2)

	network, err := cfg.Network("")
	require.NoError(t, err)
	assert.Equal(t, int64(11155111), network.ChainID)

	schedule, err := network.FeeSchedule()
	require.NoError(t, err)
	assert.Equal(t, "0.1", schedule.BaseFee.String())
}

func TestLoadConfigRejectsUnknownDefault(t *testing.T) {
	_, err := LoadConfig(writeNetworksFile(t, `
default_network: missing
networks:
  testnet:
    name: testnet
    rpc_url: https://rpc.testnet.example.org
    chain_id: 11155111
    factory_address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
    base_fee: "0.1"
    metadata_fee: "0.05"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default network")
}

func TestLoadConfigRejectsNegativeFees(t *testing.T) {
	_, err := LoadConfig(writeNetworksFile(t, `
default_network: testnet
networks:
  testnet:
    name: testnet
    rpc_url: https://rpc.testnet.example.org
    chain_id: 11155111
    factory_address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
    base_fee: "-0.1"
    metadata_fee: "0.05"
`))
	require.Error(t, err)
}

func TestLoadConfigRejectsBadFactoryAddress(t *testing.T) {
	_, err := LoadConfig(writeNetworksFile(t, `
default_network: testnet
networks:
  testnet:
    name: testnet
    rpc_url: https://rpc.testnet.example.org
    chain_id: 11155111
    factory_address: "not-an-address"
    base_fee: "0.1"
    metadata_fee: "0.05"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "factory_address")
}

func TestNetworkLookup(t *testing.T) {
	cfg, err := LoadConfig(writeNetworksFile(t, validNetworksYAML))
	require.NoError(t, err)

	_, err = cfg.Network("mainnet")
	assert.NoError(t, err)

	_, err = cfg.Network("devnet")
	assert.Error(t, err)
}

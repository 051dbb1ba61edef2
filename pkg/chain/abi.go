package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
)

const factoryABIJSON = `[
	{"type":"function","name":"deployToken","stateMutability":"payable","inputs":[
		{"name":"name","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"decimals","type":"uint8"},
		{"name":"initialSupply","type":"uint256"},
		{"name":"admin","type":"address"},
		{"name":"metadataURI","type":"string"}],
		"outputs":[{"name":"token","type":"address"}]},
	{"type":"function","name":"burn","stateMutability":"nonpayable","inputs":[
		{"name":"token","type":"address"},
		{"name":"from","type":"address"},
		{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"TokenDeployed","inputs":[
		{"name":"token","type":"address","indexed":true},
		{"name":"admin","type":"address","indexed":true},
		{"name":"name","type":"string","indexed":false},
		{"name":"symbol","type":"string","indexed":false}],"anonymous":false}
]`

const erc20ABIJSON = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"},
		{"name":"amount","type":"uint256"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}],
		"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	factoryABI = mustParseABI(factoryABIJSON)
	erc20ABI   = mustParseABI(erc20ABIJSON)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded ABI: %v", err))
	}
	return parsed
}

// PackDeployToken encodes the factory deployToken call.
func PackDeployToken(name, symbol string, decimals uint8, initialSupply *big.Int, admin common.Address, metadataURI string) ([]byte, error) {
	data, err := factoryABI.Pack("deployToken", name, symbol, decimals, initialSupply, admin, metadataURI)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to encode deploy call")
	}
	return data, nil
}

// PackBurn encodes the factory burn call.
func PackBurn(token, from common.Address, amount *big.Int) ([]byte, error) {
	data, err := factoryABI.Pack("burn", token, from, amount)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to encode burn call")
	}
	return data, nil
}

// PackTransfer encodes an ERC20 transfer call.
func PackTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	data, err := erc20ABI.Pack("transfer", to, amount)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to encode transfer call")
	}
	return data, nil
}

// TokenAddressFromReceipt extracts the deployed token address from the
// factory's TokenDeployed event in the confirmed receipt.
func TokenAddressFromReceipt(receipt *ethtypes.Receipt) (common.Address, error) {
	deployedTopic := factoryABI.Events["TokenDeployed"].ID
	for _, log := range receipt.Logs {
		if len(log.Topics) >= 2 && log.Topics[0] == deployedTopic {
			return common.BytesToAddress(log.Topics[1].Bytes()), nil
		}
	}
	return common.Address{}, apperrors.New(apperrors.CodeContractError, "receipt carries no TokenDeployed event")
}

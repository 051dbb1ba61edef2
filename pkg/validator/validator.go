package validator

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	MaxTokenDecimals = 18
	MaxSymbolLength  = 12
	MaxNameLength    = 64
)

var txHashPattern = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")

func IsEmpty(value string) bool {
	return value == ""
}

func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

func IsValidTxHash(hash string) bool {
	return txHashPattern.MatchString(hash)
}

func IsValidPrivateKey(privateKey string) bool {
	matched, _ := regexp.MatchString("^[0-9a-fA-F]{64}$", strings.TrimPrefix(privateKey, "0x"))
	return matched
}

// IsValidAmount reports whether value parses as a strictly positive decimal.
func IsValidAmount(value string) bool {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

// IsValidSupply reports whether value parses as a non-negative decimal.
func IsValidSupply(value string) bool {
	supply, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !supply.IsNegative()
}

func IsValidTokenDecimals(decimals int) bool {
	return decimals >= 0 && decimals <= MaxTokenDecimals
}

func IsValidTokenSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > MaxSymbolLength {
		return false
	}
	matched, _ := regexp.MatchString("^[A-Za-z0-9]+$", symbol)
	return matched
}

func IsValidTokenName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && len(trimmed) <= MaxNameLength
}

func IsValidRPCAddress(rpcAddress string) bool {
	matched, _ := regexp.MatchString("^https?://", rpcAddress)
	return matched
}

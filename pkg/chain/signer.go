package chain

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// Signer is the wallet boundary. A signer may refuse to sign, which surfaces
// as WALLET_REJECTED; the executor never retries a rejection.
type Signer interface {
	Address() common.Address
	SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error)
	State(network string) types.WalletState
}

// PrivateKeySigner signs with an in-process key. Used by the scheduler
// service, where the signing wallet is operator-owned.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

var _ Signer = (*PrivateKeySigner)(nil)

func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidSignature, "invalid signing key")
	}
	return &PrivateKeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *PrivateKeySigner) Address() common.Address {
	return s.address
}

func (s *PrivateKeySigner) SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error) {
	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(chainID), s.key)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidSignature, "failed to sign transaction")
	}
	return signed, nil
}

func (s *PrivateKeySigner) State(network string) types.WalletState {
	return types.WalletState{
		Connected: true,
		Address:   s.address.Hex(),
		Network:   network,
	}
}

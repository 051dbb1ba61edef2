package core

import (
	"fmt"
	"os"
	"syscall"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/term"
)

// ReadPassphrase prompts for a passphrase without echoing it.
func ReadPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(passphrase), nil
}

// ImportKey encrypts a raw hex private key into a geth keystore file under
// keystoreDir and returns the derived address.
func ImportKey(keystoreDir, privateKeyHex, passphrase string) (string, error) {
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}

	ks := keystore.NewKeyStore(keystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	account, err := ks.ImportECDSA(privateKey, passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to import key: %w", err)
	}
	return account.Address.Hex(), nil
}

// ExportKey decrypts a keystore file and returns the raw hex private key.
func ExportKey(keystorePath, passphrase string) (string, error) {
	keyJSON, err := os.ReadFile(keystorePath)
	if err != nil {
		return "", fmt.Errorf("failed to read keystore: %w", err)
	}

	key, err := keystore.DecryptKey(keyJSON, passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	return fmt.Sprintf("%x", crypto.FromECDSA(key.PrivateKey)), nil
}

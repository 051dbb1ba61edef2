package actions

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tokenforge/tokenforge-backend/cli/core"
	"github.com/tokenforge/tokenforge-backend/cli/core/config"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// ImportKey reads a raw private key and passphrase from the terminal and
// writes an encrypted keystore file. The key never appears in argv.
func ImportKey(c *cli.Context) error {
	logger := logging.GetServiceLogger()

	privateKey, err := core.ReadPassphrase("Private key (hex): ")
	if err != nil {
		return err
	}
	passphrase, err := core.ReadPassphrase("Keystore passphrase: ")
	if err != nil {
		return err
	}
	confirm, err := core.ReadPassphrase("Confirm passphrase: ")
	if err != nil {
		return err
	}
	if passphrase != confirm {
		return fmt.Errorf("passphrases do not match")
	}

	address, err := core.ImportKey(config.GetKeystoreDir(), privateKey, passphrase)
	if err != nil {
		return err
	}

	logger.Info("Key imported", "address", address, "dir", config.GetKeystoreDir())
	return nil
}

// ExportKey decrypts a keystore file and prints the raw private key.
func ExportKey(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("keystore path required")
	}

	passphrase, err := core.ReadPassphrase("Keystore passphrase: ")
	if err != nil {
		return err
	}

	privateKey, err := core.ExportKey(path, passphrase)
	if err != nil {
		return err
	}
	fmt.Println(privateKey)
	return nil
}

package actions

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tokenforge/tokenforge-backend/cli/core"
	"github.com/tokenforge/tokenforge-backend/cli/core/config"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

func WalletState(c *cli.Context) error {
	client, err := core.NewClient(config.GetDBServerURL(), logging.GetServiceLogger())
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := client.WalletState(c.Context)
	if err != nil {
		return fmt.Errorf("failed to fetch wallet state: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(state)
}

func ListTokens(c *cli.Context) error {
	client, err := core.NewClient(config.GetDBServerURL(), logging.GetServiceLogger())
	if err != nil {
		return err
	}
	defer client.Close()

	tokens, err := client.ListTokens(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(tokens)
}

func QuoteFees(c *cli.Context) error {
	client, err := core.NewClient(config.GetDBServerURL(), logging.GetServiceLogger())
	if err != nil {
		return err
	}
	defer client.Close()

	breakdown, err := client.QuoteFees(c.Context, c.Bool("with-metadata"))
	if err != nil {
		return fmt.Errorf("failed to quote fees: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(breakdown)
}

package actions

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tokenforge/tokenforge-backend/cli/core"
	"github.com/tokenforge/tokenforge-backend/cli/core/config"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// DeployToken submits a deployment request to the database server and prints
// the result. Either --metadata-uri or the metadata flags may be given, not
// both; raw metadata adds the metadata fee to the quote.
func DeployToken(c *cli.Context) error {
	logger := logging.GetServiceLogger()

	request := types.TokenDeployRequest{
		Name:          c.String("name"),
		Symbol:        c.String("symbol"),
		Decimals:      c.Int("decimals"),
		InitialSupply: c.String("supply"),
		AdminAddress:  c.String("admin"),
		MetadataURI:   c.String("metadata-uri"),
	}
	if description := c.String("description"); description != "" || c.String("image") != "" {
		request.Metadata = &types.TokenMetadata{
			Name:        request.Name,
			Description: description,
			Image:       c.String("image"),
		}
	}

	client, err := core.NewClient(config.GetDBServerURL(), logger)
	if err != nil {
		return err
	}
	defer client.Close()

	breakdown, err := client.QuoteFees(c.Context, request.HasRawMetadata())
	if err != nil {
		return fmt.Errorf("failed to quote fees: %w", err)
	}
	logger.Info("Deployment fee quote", "total", breakdown["totalFee"])

	result, err := client.DeployToken(c.Context, request)
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	logger.Info("Token deployed",
		"address", result.TokenAddress,
		"tx", result.TransactionHash,
		"fee", result.TotalFee,
	)
	return json.NewEncoder(os.Stdout).Encode(result)
}

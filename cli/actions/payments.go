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

func CreatePayment(c *cli.Context) error {
	logger := logging.GetServiceLogger()

	params := types.CreateRecurringPaymentParams{
		Recipient:             c.String("recipient"),
		Amount:                c.String("amount"),
		TokenAddress:          c.String("token"),
		TokenSymbol:           c.String("symbol"),
		TokenDecimals:         c.Int("decimals"),
		Memo:                  c.String("memo"),
		Interval:              types.IntervalTag(c.String("interval")),
		CustomIntervalSeconds: c.Int64("interval-seconds"),
		Creator:               c.String("creator"),
	}

	client, err := core.NewClient(config.GetDBServerURL(), logger)
	if err != nil {
		return err
	}
	defer client.Close()

	payment, err := client.CreatePayment(c.Context, params)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	logger.Info("Recurring payment created",
		"id", payment.ID,
		"next_payment_time", payment.NextPaymentTime,
		"interval_seconds", payment.IntervalSeconds,
	)
	return json.NewEncoder(os.Stdout).Encode(payment)
}

func ListPayments(c *cli.Context) error {
	client, err := core.NewClient(config.GetDBServerURL(), logging.GetServiceLogger())
	if err != nil {
		return err
	}
	defer client.Close()

	payments, err := client.ListPayments(c.Context, c.String("status"))
	if err != nil {
		return fmt.Errorf("failed to list payments: %w", err)
	}
	return json.NewEncoder(os.Stdout).Encode(payments)
}

func PausePayment(c *cli.Context) error {
	return transitionPayment(c, "pause")
}

func ResumePayment(c *cli.Context) error {
	return transitionPayment(c, "resume")
}

func CancelPayment(c *cli.Context) error {
	return transitionPayment(c, "cancel")
}

func transitionPayment(c *cli.Context, action string) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("payment id required")
	}

	client, err := core.NewClient(config.GetDBServerURL(), logging.GetServiceLogger())
	if err != nil {
		return err
	}
	defer client.Close()

	payment, err := client.TransitionPayment(c.Context, id, action)
	if err != nil {
		return fmt.Errorf("failed to %s payment %s: %w", action, id, err)
	}
	return json.NewEncoder(os.Stdout).Encode(payment)
}

func PaymentHistory(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("payment id required")
	}

	client, err := core.NewClient(config.GetDBServerURL(), logging.GetServiceLogger())
	if err != nil {
		return err
	}
	defer client.Close()

	history, err := client.PaymentHistory(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to fetch history for %s: %w", id, err)
	}
	return json.NewEncoder(os.Stdout).Encode(history)
}

package ipfs

import (
	"fmt"
	"strings"
)

// Mode selects the publishing backend.
type Mode string

const (
	ModePinata Mode = "pinata"
	ModeNode   Mode = "node" // local IPFS node over the HTTP API
)

type Config struct {
	Mode          Mode
	PinataHost    string
	PinataJWT     string
	PinataBaseURL string
	NodeAPIURL    string // e.g. localhost:5001 for ModeNode
}

func NewPinataConfig(pinataHost string, pinataJWT string) *Config {
	return &Config{
		Mode:          ModePinata,
		PinataHost:    pinataHost,
		PinataJWT:     pinataJWT,
		PinataBaseURL: "https://uploads.pinata.cloud/v3/files",
	}
}

func NewNodeConfig(apiURL string) *Config {
	return &Config{
		Mode:       ModeNode,
		NodeAPIURL: apiURL,
	}
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModePinata:
		if strings.TrimSpace(c.PinataHost) == "" {
			return fmt.Errorf("PinataHost is required")
		}
		if strings.TrimSpace(c.PinataJWT) == "" {
			return fmt.Errorf("PinataJWT is required")
		}
	case ModeNode:
		if strings.TrimSpace(c.NodeAPIURL) == "" {
			return fmt.Errorf("NodeAPIURL is required")
		}
	default:
		return fmt.Errorf("unknown IPFS mode: %s", c.Mode)
	}
	return nil
}

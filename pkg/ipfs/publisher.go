package ipfs

import (
	"context"

	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// Publisher stores token metadata and returns a content URI. Implementations
// report failures as IPFS_UPLOAD_FAILED app errors so callers can classify
// them without knowing the backend.
type Publisher interface {
	// PublishMetadata uploads the metadata document and returns its ipfs:// URI.
	PublishMetadata(ctx context.Context, metadata types.TokenMetadata) (string, error)

	// Close closes the publisher and cleans up resources.
	Close() error
}

// NewPublisher creates a publisher for the configured backend.
func NewPublisher(config *Config, logger logging.Logger) (Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Mode {
	case ModeNode:
		return newNodePublisher(config, logger)
	default:
		return newPinataPublisher(config, logger)
	}
}

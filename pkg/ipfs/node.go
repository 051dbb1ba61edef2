package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// nodePublisher pins metadata through a local IPFS node's HTTP API.
type nodePublisher struct {
	sh     *shell.Shell
	logger logging.Logger
}

func newNodePublisher(config *Config, logger logging.Logger) (Publisher, error) {
	return &nodePublisher{
		sh:     shell.NewShell(config.NodeAPIURL),
		logger: logger,
	}, nil
}

func (p *nodePublisher) PublishMetadata(ctx context.Context, metadata types.TokenMetadata) (string, error) {
	if metadata.Name == "" {
		return "", apperrors.New(apperrors.CodeInvalidInput, "metadata name cannot be empty")
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to encode metadata")
	}

	cid, err := p.sh.Add(bytes.NewReader(payload), shell.Pin(true))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to add metadata to node")
	}

	uri := fmt.Sprintf("ipfs://%s", cid)
	p.logger.Infof("Published metadata for %s: %s", metadata.Name, uri)
	return uri, nil
}

func (p *nodePublisher) Close() error {
	return nil
}

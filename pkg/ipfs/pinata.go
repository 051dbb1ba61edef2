package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	httppkg "github.com/tokenforge/tokenforge-backend/pkg/http"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// Pinata v3 upload response
type pinataUploadResponse struct {
	Data struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		CID  string `json:"cid"`
		Size int64  `json:"size"`
	} `json:"data"`
}

type pinataPublisher struct {
	config     *Config
	logger     logging.Logger
	httpClient httppkg.HTTPClientInterface
}

func newPinataPublisher(config *Config, logger logging.Logger) (Publisher, error) {
	httpClient, err := httppkg.NewHTTPClient(httppkg.DefaultHTTPRetryConfig(), logger)
	if err != nil {
		return nil, err
	}

	return &pinataPublisher{
		config:     config,
		logger:     logger,
		httpClient: httpClient,
	}, nil
}

// PublishMetadata uploads the metadata JSON to Pinata and returns its ipfs:// URI.
func (p *pinataPublisher) PublishMetadata(ctx context.Context, metadata types.TokenMetadata) (string, error) {
	if metadata.Name == "" {
		return "", apperrors.New(apperrors.CodeInvalidInput, "metadata name cannot be empty")
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to encode metadata")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fmt.Sprintf("%s.json", metadata.Name))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to create form file")
	}
	if _, err := part.Write(payload); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to write metadata to form")
	}
	if err := writer.Close(); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to close form writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.PinataBaseURL, bytes.NewReader(body.Bytes()))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to create upload request")
	}
	req.Header.Set("Authorization", "Bearer "+p.config.PinataJWT)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.httpClient.DoWithRetry(ctx, req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "metadata upload failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to read upload response")
	}

	var uploadResp pinataUploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeIPFSUploadFailed, "failed to parse upload response")
	}
	if uploadResp.Data.CID == "" {
		return "", apperrors.New(apperrors.CodeIPFSUploadFailed, "upload response missing CID")
	}

	uri := fmt.Sprintf("ipfs://%s", uploadResp.Data.CID)
	p.logger.Infof("Published metadata for %s: %s", metadata.Name, uri)
	return uri, nil
}

func (p *pinataPublisher) Close() error {
	p.httpClient.Close()
	return nil
}

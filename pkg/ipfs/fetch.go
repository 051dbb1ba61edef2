package ipfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	httppkg "github.com/tokenforge/tokenforge-backend/pkg/http"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// FetchMetadata resolves an ipfs:// URI through a public gateway and decodes
// the metadata document.
func FetchMetadata(ctx context.Context, client httppkg.HTTPClientInterface, gateway string, uri string) (types.TokenMetadata, error) {
	cid := strings.TrimPrefix(uri, "ipfs://")
	if cid == "" || cid == uri && !strings.HasPrefix(uri, "https://") {
		return types.TokenMetadata{}, apperrors.Newf(apperrors.CodeInvalidInput, "not an ipfs uri: %s", uri)
	}

	url := uri
	if !strings.HasPrefix(uri, "https://") {
		url = fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), cid)
		if !strings.HasPrefix(gateway, "https://") && !strings.HasPrefix(gateway, "http://") {
			url = "https://" + url
		}
	}

	resp, err := client.Get(ctx, url)
	if err != nil {
		return types.TokenMetadata{}, apperrors.Wrap(err, apperrors.CodeNetworkError, "failed to fetch metadata")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.TokenMetadata{}, apperrors.Wrap(err, apperrors.CodeNetworkError, "failed to read metadata response")
	}

	var metadata types.TokenMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return types.TokenMetadata{}, apperrors.Wrap(err, apperrors.CodeInvalidInput, "metadata is not valid JSON")
	}

	return metadata, nil
}

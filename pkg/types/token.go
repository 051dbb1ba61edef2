package types

// TokenMetadata is the content published to IPFS for a token.
type TokenMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// TokenDeployRequest describes a token deployment. Metadata and MetadataURI
// are mutually exclusive inputs: raw metadata is published first and becomes
// the URI, a pre-resolved URI skips the upload (and the metadata fee).
type TokenDeployRequest struct {
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Decimals      int            `json:"decimals"`
	InitialSupply string         `json:"initialSupply"`
	AdminAddress  string         `json:"adminAddress"`
	Metadata      *TokenMetadata `json:"metadata,omitempty"`
	MetadataURI   string         `json:"metadataUri,omitempty"`
}

// HasRawMetadata reports whether the request still needs a metadata upload.
func (r *TokenDeployRequest) HasRawMetadata() bool {
	return r.Metadata != nil && r.MetadataURI == ""
}

// DeploymentResult is produced exactly once per successful deployment.
type DeploymentResult struct {
	TokenAddress    string `json:"tokenAddress"`
	TransactionHash string `json:"transactionHash"`
	TotalFee        string `json:"totalFee"`
	Timestamp       int64  `json:"timestamp"`
}

// TokenInfo is the registry record for a deployed token.
type TokenInfo struct {
	Address         string `json:"address"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Decimals        int    `json:"decimals"`
	TotalSupply     string `json:"totalSupply"`
	Creator         string `json:"creator"`
	MetadataURI     string `json:"metadataUri,omitempty"`
	DeployedAt      int64  `json:"deployedAt"`
	TransactionHash string `json:"transactionHash"`
}

// WalletState is what the signer boundary reports to clients.
type WalletState struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
	Network   string `json:"network"`
}

package queries

const (
	CreateTokenQuery = `
			INSERT INTO tokenforge.deployed_tokens (
				address, name, symbol, decimals, total_supply, creator,
				metadata_uri, deployed_at, transaction_hash
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	GetTokenByAddressQuery = `
			SELECT address, name, symbol, decimals, total_supply, creator,
				metadata_uri, deployed_at, transaction_hash
			FROM tokenforge.deployed_tokens
			WHERE address = ?`

	GetAllTokensQuery = `
			SELECT address, name, symbol, decimals, total_supply, creator,
				metadata_uri, deployed_at, transaction_hash
			FROM tokenforge.deployed_tokens`
)

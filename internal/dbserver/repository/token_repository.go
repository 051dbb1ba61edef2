package repository

import (
	"errors"

	"github.com/gocql/gocql"

	"github.com/tokenforge/tokenforge-backend/internal/dbserver/repository/queries"
	"github.com/tokenforge/tokenforge-backend/pkg/database"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	CreateToken(token *types.TokenInfo) error
	GetTokenByAddress(address string) (types.TokenInfo, error)
	GetAllTokens() ([]types.TokenInfo, error)
}

type tokenRepository struct {
	db *database.Connection
}

func NewTokenRepository(db *database.Connection) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

func (r *tokenRepository) CreateToken(token *types.TokenInfo) error {
	err := r.db.Session().Query(queries.CreateTokenQuery,
		token.Address, token.Name, token.Symbol, token.Decimals,
		token.TotalSupply, token.Creator, token.MetadataURI,
		token.DeployedAt, token.TransactionHash).Exec()
	if err != nil {
		return err
	}
	return nil
}

func (r *tokenRepository) GetTokenByAddress(address string) (types.TokenInfo, error) {
	var token types.TokenInfo
	err := r.db.Session().Query(queries.GetTokenByAddressQuery, address).Scan(
		&token.Address, &token.Name, &token.Symbol, &token.Decimals,
		&token.TotalSupply, &token.Creator, &token.MetadataURI,
		&token.DeployedAt, &token.TransactionHash)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return types.TokenInfo{}, ErrTokenNotFound
		}
		return types.TokenInfo{}, err
	}
	return token, nil
}

func (r *tokenRepository) GetAllTokens() ([]types.TokenInfo, error) {
	iter := r.db.Session().Query(queries.GetAllTokensQuery).Iter()

	var tokens []types.TokenInfo
	var token types.TokenInfo
	for iter.Scan(
		&token.Address, &token.Name, &token.Symbol, &token.Decimals,
		&token.TotalSupply, &token.Creator, &token.MetadataURI,
		&token.DeployedAt, &token.TransactionHash) {
		tokens = append(tokens, token)
		token = types.TokenInfo{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return tokens, nil
}

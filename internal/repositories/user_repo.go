package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/starproof/dashboard-api/internal/models"
)

// ErrNotFound is returned when no row exists for a wallet address.
var ErrNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// UpsertByWalletAddress creates the row on first sight of an address and is
// a no-op update afterwards, so concurrent registers converge to one row.
func (r *UserRepo) UpsertByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (wallet_address)
		VALUES ($1)
		ON CONFLICT (wallet_address) DO UPDATE SET
			updated_at = now()
		RETURNING id, wallet_address, api_key, api_key_hash, created_at, updated_at
	`, walletAddress).Scan(
		&u.ID, &u.WalletAddress, &u.APIKey, &u.APIKeyHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, wallet_address, api_key, api_key_hash, created_at, updated_at
		FROM users WHERE wallet_address = $1
	`, walletAddress).Scan(
		&u.ID, &u.WalletAddress, &u.APIKey, &u.APIKeyHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetAPIKey stores the active key and its derived encoding, overwriting any
// previous key for the address.
func (r *UserRepo) SetAPIKey(ctx context.Context, walletAddress, key, keyHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET api_key = $1, api_key_hash = $2, updated_at = now()
		WHERE wallet_address = $3
	`, key, keyHash, walletAddress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearAPIKey nulls the key columns; the row itself is never deleted.
func (r *UserRepo) ClearAPIKey(ctx context.Context, walletAddress string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET api_key = NULL, api_key_hash = NULL, updated_at = now()
		WHERE wallet_address = $1
	`, walletAddress)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

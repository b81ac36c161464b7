package services

import (
	"context"
	"errors"

	"github.com/starproof/dashboard-api/internal/apikey"
	"github.com/starproof/dashboard-api/internal/apperrors"
	"github.com/starproof/dashboard-api/internal/config"
	"github.com/starproof/dashboard-api/internal/events"
	"github.com/starproof/dashboard-api/internal/models"
	"github.com/starproof/dashboard-api/internal/repositories"
	"go.uber.org/zap"
)

// ProfileStore is the remote row-per-wallet-address table the lifecycle
// writes through.
type ProfileStore interface {
	UpsertByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	GetByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	SetAPIKey(ctx context.Context, walletAddress, key, keyHash string) error
	ClearAPIKey(ctx context.Context, walletAddress string) error
}

// UserService owns the profile and the single active API key per wallet.
type UserService struct {
	store     ProfileStore
	publisher events.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewUserService(store ProfileStore, publisher events.Publisher, cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{store: store, publisher: publisher, cfg: cfg, log: log}
}

// Register creates the profile on first connect and returns the existing one
// afterwards. Idempotent: the store upsert converges concurrent calls.
func (s *UserService) Register(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	u, err := s.store.UpsertByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, apperrors.Persistence("upsert", err)
	}
	return u.Profile(), nil
}

func (s *UserService) GetProfile(ctx context.Context, walletAddress string) (*models.UserProfile, error) {
	u, err := s.store.GetByWalletAddress(ctx, walletAddress)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.Persistence("select", err)
	}
	return u.Profile(), nil
}

// GenerateAPIKey mints a new token and persists it as the profile's active
// key, overwriting any existing one. The plaintext is returned to the caller;
// on a failed write no key may be assumed to exist.
func (s *UserService) GenerateAPIKey(ctx context.Context, walletAddress string) (string, error) {
	key, err := apikey.Generate(s.cfg.APIKeyEnv)
	if err != nil {
		return "", err
	}

	if err := s.store.SetAPIKey(ctx, walletAddress, key, apikey.Encode(key)); err != nil {
		return "", apperrors.Persistence("update", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.StreamCredentials, events.APIKeyRotated(walletAddress))
	}

	s.log.Info("api key generated", zap.String("wallet", walletAddress))
	return key, nil
}

// RegenerateAPIKey rotates the key. There is no grace period: the old key is
// invalid the instant the new one is stored.
func (s *UserService) RegenerateAPIKey(ctx context.Context, walletAddress string) (string, error) {
	return s.GenerateAPIKey(ctx, walletAddress)
}

// RevokeAPIKey clears the active key. If the write fails the prior key
// remains valid; there is no optimistic local revocation.
func (s *UserService) RevokeAPIKey(ctx context.Context, walletAddress string) error {
	if err := s.store.ClearAPIKey(ctx, walletAddress); err != nil {
		return apperrors.Persistence("update", err)
	}
	s.log.Info("api key revoked", zap.String("wallet", walletAddress))
	return nil
}

// HasAPIKey reports whether an active key exists for the address. Store
// failures read as "no key" here, callers use it only for gating UI flows.
func (s *UserService) HasAPIKey(ctx context.Context, walletAddress string) bool {
	p, err := s.GetProfile(ctx, walletAddress)
	if err != nil {
		return false
	}
	return p.HasAPIKey
}

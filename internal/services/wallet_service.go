package services

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/starproof/dashboard-api/internal/apperrors"
	"github.com/starproof/dashboard-api/internal/auth"
	"github.com/starproof/dashboard-api/internal/config"
	"github.com/starproof/dashboard-api/internal/events"
	"github.com/starproof/dashboard-api/internal/models"
	"github.com/starproof/dashboard-api/internal/stellar"
	"github.com/starproof/dashboard-api/internal/walletkit"
	"go.uber.org/zap"
)

// WalletService tracks connect/disconnect state for wallet sessions. The
// actual signing wallet lives in the user's browser; the server validates
// the address, registers the profile, and issues the session token.
type WalletService struct {
	kit       *walletkit.Kit
	users     *UserService
	rdb       *redis.Client
	publisher events.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewWalletService(
	kit *walletkit.Kit,
	users *UserService,
	rdb *redis.Client,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *WalletService {
	return &WalletService{kit: kit, users: users, rdb: rdb, publisher: publisher, cfg: cfg, log: log}
}

type ConnectResult struct {
	Token   string              `json:"token"`
	Profile *models.UserProfile `json:"profile"`
	Network stellar.Network     `json:"network"`
}

func sessionKey(address string) string { return "session_" + address }

// Connect validates the wallet address, upserts the profile, marks the
// session active, and returns a token bound to the address.
func (s *WalletService) Connect(ctx context.Context, address, walletID string) (*ConnectResult, error) {
	if address == "" {
		return nil, apperrors.Validation("address", "wallet address is required")
	}
	if !stellar.ValidAddress(address) {
		return nil, apperrors.Validation("address", "not a valid Stellar public key")
	}
	if !s.kit.Supported(walletID) {
		return nil, apperrors.Validation("wallet_id", "unsupported wallet provider")
	}
	if walletID == "" {
		walletID = walletkit.DefaultWalletID
	}

	profile, err := s.users.Register(ctx, address)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, address, walletID, s.cfg.JWTExpiration)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, sessionKey(address), walletID, s.cfg.JWTExpiration).Err(); err != nil {
		s.log.Warn("failed to record session", zap.Error(err))
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.StreamCredentials, events.WalletConnected(address, walletID))
	}

	s.log.Info("wallet connected",
		zap.String("address", stellar.ShortenAddress(address)),
		zap.String("wallet_id", walletID),
	)

	return &ConnectResult{
		Token:   token,
		Profile: profile,
		Network: s.kit.Network(),
	}, nil
}

// Disconnect ends the session for an address. The token itself expires on
// its own schedule; this only clears the server-side activity marker.
func (s *WalletService) Disconnect(ctx context.Context, address string) error {
	if err := s.rdb.Del(ctx, sessionKey(address)).Err(); err != nil {
		return err
	}
	s.log.Info("wallet disconnected", zap.String("address", stellar.ShortenAddress(address)))
	return nil
}

// ActiveWalletID returns the provider for a live session, or "" when the
// session marker is gone.
func (s *WalletService) ActiveWalletID(ctx context.Context, address string) string {
	id, err := s.rdb.Get(ctx, sessionKey(address)).Result()
	if err != nil {
		return ""
	}
	return id
}

type SessionStatus struct {
	Address   string `json:"address"`
	WalletID  string `json:"wallet_id"`
	Active    bool   `json:"active"`
	HasAPIKey bool   `json:"has_api_key"`
}

// Status summarizes the server-side view of a wallet session. A token can
// outlive its marker, so Active may be false on an authenticated request.
func (s *WalletService) Status(ctx context.Context, address string) SessionStatus {
	walletID := s.ActiveWalletID(ctx, address)
	return SessionStatus{
		Address:   address,
		WalletID:  walletID,
		Active:    walletID != "",
		HasAPIKey: s.users.HasAPIKey(ctx, address),
	}
}

// SupportedWallets exposes the provider catalog.
func (s *WalletService) SupportedWallets() []walletkit.Wallet {
	return s.kit.SupportedWallets()
}

package services

import (
	"context"

	"github.com/starproof/dashboard-api/internal/credcache"
	"github.com/starproof/dashboard-api/internal/events"
	"github.com/starproof/dashboard-api/internal/models"
	"github.com/starproof/dashboard-api/internal/qr"
	"go.uber.org/zap"
)

// CredentialService runs the issuance flow end to end: backend call, QR
// enrichment, cache append, event broadcast.
type CredentialService struct {
	client    *StarProofClient
	cache     *credcache.Cache
	publisher events.Publisher
	log       *zap.Logger
}

func NewCredentialService(
	client *StarProofClient,
	cache *credcache.Cache,
	publisher events.Publisher,
	log *zap.Logger,
) *CredentialService {
	return &CredentialService{
		client:    client,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Issue submits the request under the wallet's API key and records the
// result in the wallet's credential list. The on-chain/mock classification
// affects only the returned message; the record is stored either way.
func (s *CredentialService) Issue(
	ctx context.Context,
	walletAddress string,
	req CreateCredentialRequest,
	apiKey string,
	customization *models.Customization,
) (*CreateCredentialResult, error) {
	req.IssuerWallet = walletAddress

	result, err := s.client.Create(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}

	record := models.StoredCredential{
		Credential:    *result.Credential,
		Customization: customization,
	}

	// QR failures degrade silently, the record just goes in without an image
	if dataURL, qrErr := qr.DataURL(result.Credential.VerificationURL); qrErr != nil {
		s.log.Warn("qr generation failed", zap.Error(qrErr))
	} else {
		record.QRCode = dataURL
	}

	if cerr := s.cache.Append(ctx, walletAddress, record); cerr != nil {
		// the credential exists on the backend regardless, so log and move on
		s.log.Error("failed to cache credential", zap.String("wallet", walletAddress), zap.Error(cerr))
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.StreamCredentials, events.CredentialIssued(walletAddress, map[string]any{
			"credential_id": result.Credential.ID,
			"category":      result.Credential.Category,
			"on_chain":      result.OnChain,
		}))
	}

	return result, nil
}

// ListIssued returns the wallet's locally recorded credentials, most recent
// first.
func (s *CredentialService) ListIssued(ctx context.Context, walletAddress string) ([]models.StoredCredential, error) {
	return s.cache.Load(ctx, walletAddress)
}

// Verify proxies a verification check to the backend.
func (s *CredentialService) Verify(ctx context.Context, credentialID, issuer string) (*VerifyCredentialResponse, error) {
	return s.client.Verify(ctx, credentialID, issuer)
}

// BackendHealth reports the issuance backend's health probe result.
func (s *CredentialService) BackendHealth(ctx context.Context) HealthStatus {
	return s.client.Health(ctx)
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/starproof/dashboard-api/internal/apperrors"
	"github.com/starproof/dashboard-api/internal/models"
	"github.com/starproof/dashboard-api/internal/stellar"
	"go.uber.org/zap"
)

const (
	// Fixed template for the MVP flow; the backend resolves fields from data{}.
	defaultTemplateID = "550e8400-e29b-41d4-a716-446655440000"
	defaultSchema     = "https://schema.org/Certificate"

	apiKeyHeader = "X-SP-Key"
)

var realTxPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// StarProofClient talks to the credential issuance backend, which performs
// the actual Stellar deployment.
type StarProofClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewStarProofClient(baseURL string, timeout time.Duration, log *zap.Logger) *StarProofClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StarProofClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *StarProofClient) BaseURL() string { return c.baseURL }

type CreateCredentialRequest struct {
	Holder       string         `json:"holder"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	ExpiresAt    string         `json:"expiresAt"`
	IssuerWallet string         `json:"issuerWallet"`
	Claims       map[string]any `json:"claims,omitempty"`
	Schema       string         `json:"schema,omitempty"`
}

// Validate enforces required-field presence before any network call.
func (r *CreateCredentialRequest) Validate() error {
	if r.Holder == "" {
		return apperrors.Validation("holder", "holder is required")
	}
	if r.Category == "" {
		return apperrors.Validation("category", "category is required")
	}
	if !models.ValidCategory(r.Category) {
		return apperrors.Validation("category", fmt.Sprintf("unknown category %q", r.Category))
	}
	if r.ExpiresAt == "" {
		return apperrors.Validation("expiresAt", "expiry date is required")
	}
	if r.IssuerWallet == "" {
		return apperrors.Validation("issuerWallet", "issuer wallet is required")
	}
	return nil
}

type CreateCredentialResult struct {
	Credential *models.Credential
	// OnChain is true only when the backend returned a real Stellar
	// transaction id. Display semantics only, never gates persistence.
	OnChain bool
	Message string
}

// Create submits one issuance request and normalizes the heterogeneous
// backend response into a stable credential. Duplicate submissions produce
// duplicate backend records; no idempotency key is sent.
func (c *StarProofClient) Create(ctx context.Context, req CreateCredentialRequest, apiKey string) (*CreateCredentialResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims := req.Claims
	if claims == nil {
		claims = map[string]any{}
	}
	schema := req.Schema
	if schema == "" {
		schema = defaultSchema
	}

	// Essential fields go both nested under data{} and mirrored at top
	// level; the backend has accepted either shape across versions.
	payload := map[string]any{
		"templateId": defaultTemplateID,
		"data": map[string]any{
			"holder":       req.Holder,
			"category":     req.Category,
			"description":  req.Description,
			"expiresAt":    req.ExpiresAt,
			"issuerWallet": req.IssuerWallet,
		},
		"holder":       req.Holder,
		"category":     req.Category,
		"description":  req.Description,
		"expiresAt":    req.ExpiresAt,
		"claims":       claims,
		"schema":       schema,
		"issuerWallet": req.IssuerWallet,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/credentials", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.BackendUnavailableError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejectionError(resp)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &apperrors.MalformedResponseError{Detail: "body is not a JSON object"}
	}

	credentialID := firstString(raw, "credentialId", "credential_id")
	if credentialID == "" {
		return nil, &apperrors.MalformedResponseError{Detail: "no credential id in response"}
	}
	onchainTxID := firstString(raw, "onchainTxId", "onchain_tx_id")
	verifyURL := firstString(raw, "verifyUrl", "verify_url")

	onChain := isRealTxID(onchainTxID)

	cred := &models.Credential{
		ID:          credentialID,
		Holder:      req.Holder,
		Issuer:      stellar.FormatIssuer(req.IssuerWallet),
		Category:    req.Category,
		Description: req.Description,
		IssuedAt:    time.Now().UTC().Format(time.RFC3339),
		ExpiresAt:   req.ExpiresAt,
		Claims:      claims,
		Schema:      schema,
	}

	if onChain {
		cred.ContractAddress = onchainTxID
		cred.TransactionHash = onchainTxID
	} else {
		cred.ContractAddress = "mock_contract_" + idSuffix(credentialID)
		cred.TransactionHash = "mock_tx_" + idSuffix(credentialID)
	}

	if verifyURL != "" {
		cred.VerificationURL = verifyURL
	} else {
		cred.VerificationURL = "https://verify.starproof.io/credentials/" + credentialID
	}

	message := "Credential created (mock deployment)"
	if onChain {
		message = "Credential deployed to Stellar blockchain"
	}

	c.log.Info("credential created",
		zap.String("credential_id", credentialID),
		zap.Bool("on_chain", onChain),
	)

	return &CreateCredentialResult{Credential: cred, OnChain: onChain, Message: message}, nil
}

type VerifyCredentialResponse struct {
	Success    bool               `json:"success"`
	Credential *models.Credential `json:"credential"`
	Message    string             `json:"message"`
}

// Verify checks a credential by id and issuer against the backend.
func (c *StarProofClient) Verify(ctx context.Context, credentialID, issuer string) (*VerifyCredentialResponse, error) {
	if credentialID == "" {
		return nil, apperrors.Validation("id", "credential id is required")
	}

	u := fmt.Sprintf("%s/credentials/verify?id=%s&issuer=%s",
		c.baseURL, url.QueryEscape(credentialID), url.QueryEscape(issuer))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.BackendUnavailableError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejectionError(resp)
	}

	var out VerifyCredentialResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &apperrors.MalformedResponseError{Detail: err.Error()}
	}
	return &out, nil
}

// List fetches the backend's credential list for a key. The endpoint uses a
// Bearer scheme unlike the rest of the API and is not fully wired server
// side, so any failure degrades to an empty list.
func (c *StarProofClient) List(ctx context.Context, apiKey string) []models.Credential {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/credentials", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("credential list unavailable", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("credential list rejected", zap.Int("status", resp.StatusCode))
		return nil
	}

	var out struct {
		Credentials []models.Credential `json:"credentials"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}
	return out.Credentials
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health probes the backend; an unreachable backend reads as status "error"
// rather than failing the caller.
func (c *StarProofClient) Health(ctx context.Context) HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthStatus{Status: "error", Message: "API unreachable"}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{Status: "error", Message: "API unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HealthStatus{Status: "error", Message: fmt.Sprintf("backend returned %d", resp.StatusCode)}
	}

	var out HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return HealthStatus{Status: "error", Message: "unreadable health response"}
	}
	return out
}

// rejectionError maps a non-2xx response to a RequestRejectedError carrying
// the backend's message when it sent one, else the status line.
func rejectionError(resp *http.Response) error {
	msg := ""
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			msg = parsed.Message
		} else if parsed.Error != "" {
			msg = parsed.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &apperrors.RequestRejectedError{StatusCode: resp.StatusCode, Message: msg}
}

// isRealTxID accepts only a present, non-"N/A", exactly 64 lowercase hex
// transaction id; anything else is a mock deployment.
func isRealTxID(txID string) bool {
	if txID == "" || txID == "N/A" {
		return false
	}
	return realTxPattern.MatchString(txID)
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func idSuffix(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

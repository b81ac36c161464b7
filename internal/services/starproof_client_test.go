package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starproof/dashboard-api/internal/apperrors"
	"github.com/starproof/dashboard-api/internal/models"
	"go.uber.org/zap"
)

const realTxID = "a3f8b2c4d5e6f708192a3b4c5d6e7f80a1b2c3d4e5f60718293a4b5c6d7e8f90"

func validRequest() CreateCredentialRequest {
	return CreateCredentialRequest{
		Holder:       "Alice Example",
		Category:     models.CategoryIdentity,
		Description:  "Employee badge",
		ExpiresAt:    "2027-01-01",
		IssuerWallet: testWallet,
	}
}

func newTestClient(baseURL string) *StarProofClient {
	return NewStarProofClient(baseURL, 5*time.Second, zap.NewNop())
}

func issuanceServer(t *testing.T, status int, body map[string]any) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestCreate_ValidationBeforeNetwork(t *testing.T) {
	srv, hits := issuanceServer(t, http.StatusOK, map[string]any{"credentialId": "x"})
	client := newTestClient(srv.URL)

	tests := []struct {
		name   string
		mutate func(*CreateCredentialRequest)
	}{
		{"empty holder", func(r *CreateCredentialRequest) { r.Holder = "" }},
		{"empty category", func(r *CreateCredentialRequest) { r.Category = "" }},
		{"unknown category", func(r *CreateCredentialRequest) { r.Category = "Astrology" }},
		{"empty expiry", func(r *CreateCredentialRequest) { r.ExpiresAt = "" }},
		{"empty issuer wallet", func(r *CreateCredentialRequest) { r.IssuerWallet = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := client.Create(context.Background(), req, "spk_test_key")
			var ve *apperrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	if *hits != 0 {
		t.Errorf("validation failures must not reach the network, saw %d calls", *hits)
	}
}

func TestCreate_PayloadShape(t *testing.T) {
	var captured map[string]any
	var gotKey, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-SP-Key")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(map[string]any{"credentialId": "cred-123"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Create(context.Background(), validRequest(), "spk_test_abc"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if gotKey != "spk_test_abc" {
		t.Errorf("X-SP-Key = %q, want the raw api key", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if captured["templateId"] != "550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("templateId = %v", captured["templateId"])
	}
	if captured["schema"] != "https://schema.org/Certificate" {
		t.Errorf("default schema missing, got %v", captured["schema"])
	}

	// essential fields are mirrored: nested under data{} and at top level
	data, ok := captured["data"].(map[string]any)
	if !ok {
		t.Fatal("payload has no data object")
	}
	for _, field := range []string{"holder", "category", "description", "expiresAt", "issuerWallet"} {
		if data[field] != captured[field] {
			t.Errorf("field %q not mirrored: data=%v top=%v", field, data[field], captured[field])
		}
		if data[field] == nil || data[field] == "" {
			t.Errorf("field %q empty in payload", field)
		}
	}
}

func TestCreate_Classification(t *testing.T) {
	tests := []struct {
		name        string
		response    map[string]any
		wantOnChain bool
		wantTxHash  string
	}{
		{
			name:        "real 64-char lowercase hex tx",
			response:    map[string]any{"credentialId": "cred-abcdef12", "onchainTxId": realTxID},
			wantOnChain: true,
			wantTxHash:  realTxID,
		},
		{
			name:        "short tx id is mock",
			response:    map[string]any{"credentialId": "cred-abcdef12", "onchainTxId": "abc123"},
			wantOnChain: false,
			wantTxHash:  "mock_tx_abcdef12",
		},
		{
			name:        "N/A is mock",
			response:    map[string]any{"credentialId": "cred-abcdef12", "onchainTxId": "N/A"},
			wantOnChain: false,
			wantTxHash:  "mock_tx_abcdef12",
		},
		{
			name:        "missing tx id is mock",
			response:    map[string]any{"credentialId": "cred-abcdef12"},
			wantOnChain: false,
			wantTxHash:  "mock_tx_abcdef12",
		},
		{
			name:        "uppercase hex is mock",
			response:    map[string]any{"credentialId": "cred-abcdef12", "onchainTxId": strings.ToUpper(realTxID)},
			wantOnChain: false,
			wantTxHash:  "mock_tx_abcdef12",
		},
		{
			name:        "snake_case aliases accepted",
			response:    map[string]any{"credential_id": "cred-abcdef12", "onchain_tx_id": realTxID},
			wantOnChain: true,
			wantTxHash:  realTxID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := issuanceServer(t, http.StatusOK, tt.response)
			client := newTestClient(srv.URL)

			result, err := client.Create(context.Background(), validRequest(), "spk_test_key")
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}
			if result.OnChain != tt.wantOnChain {
				t.Errorf("OnChain = %v, want %v", result.OnChain, tt.wantOnChain)
			}
			if result.Credential.TransactionHash != tt.wantTxHash {
				t.Errorf("transactionHash = %q, want %q", result.Credential.TransactionHash, tt.wantTxHash)
			}
		})
	}
}

func TestCreate_VerificationURLFallback(t *testing.T) {
	srv, _ := issuanceServer(t, http.StatusOK, map[string]any{"credentialId": "cred-9"})
	client := newTestClient(srv.URL)

	result, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	want := "https://verify.starproof.io/credentials/cred-9"
	if result.Credential.VerificationURL != want {
		t.Errorf("verificationUrl = %q, want %q", result.Credential.VerificationURL, want)
	}
}

func TestCreate_BackendVerifyURLWins(t *testing.T) {
	srv, _ := issuanceServer(t, http.StatusOK, map[string]any{
		"credentialId": "cred-9",
		"verify_url":   "https://backend.example/v/cred-9",
	})
	client := newTestClient(srv.URL)

	result, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Credential.VerificationURL != "https://backend.example/v/cred-9" {
		t.Errorf("verificationUrl = %q", result.Credential.VerificationURL)
	}
}

func TestCreate_IssuerFormatting(t *testing.T) {
	srv, _ := issuanceServer(t, http.StatusOK, map[string]any{"credentialId": "cred-1"})
	client := newTestClient(srv.URL)

	result, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Credential.Issuer != "StarProof (GA7Q...VSGZ)" {
		t.Errorf("issuer = %q", result.Credential.Issuer)
	}
}

func TestCreate_MissingCredentialID(t *testing.T) {
	srv, _ := issuanceServer(t, http.StatusOK, map[string]any{"onchainTxId": realTxID})
	client := newTestClient(srv.URL)

	_, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	var me *apperrors.MalformedResponseError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestCreate_RejectedWithBackendMessage(t *testing.T) {
	srv, _ := issuanceServer(t, http.StatusUnprocessableEntity, map[string]any{
		"message": "template not found",
	})
	client := newTestClient(srv.URL)

	_, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	var re *apperrors.RequestRejectedError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestRejectedError, got %v", err)
	}
	if re.Message != "template not found" {
		t.Errorf("message = %q, want backend message", re.Message)
	}
	if re.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", re.StatusCode)
	}
}

func TestCreate_RejectedWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	client := newTestClient(srv.URL)

	_, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	var re *apperrors.RequestRejectedError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestRejectedError, got %v", err)
	}
	if !strings.Contains(re.Message, "502") {
		t.Errorf("fallback message should carry the status, got %q", re.Message)
	}
}

func TestCreate_BackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := newTestClient(srv.URL)
	_, err := client.Create(context.Background(), validRequest(), "spk_test_key")
	var be *apperrors.BackendUnavailableError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendUnavailableError, got %v", err)
	}
	if !strings.Contains(err.Error(), "ensure the backend is running") {
		t.Errorf("message should tell the user to check the backend, got %q", err.Error())
	}
}

func TestVerify(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(VerifyCredentialResponse{Success: true, Message: "valid"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Verify(context.Background(), "cred-1", testWallet)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if gotPath != "/credentials/verify" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.Contains(gotQuery, "id=cred-1") || !strings.Contains(gotQuery, "issuer="+testWallet) {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestVerify_RequiresID(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, err := client.Verify(context.Background(), "", testWallet)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestList_UsesBearerAndDegradesToEmpty(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"credentials": []models.Credential{{ID: "cred-1"}},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	list := client.List(context.Background(), "spk_test_abc")
	if gotAuth != "Bearer spk_test_abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(list) != 1 || list[0].ID != "cred-1" {
		t.Errorf("unexpected list %+v", list)
	}

	srv.Close()
	if got := client.List(context.Background(), "spk_test_abc"); len(got) != 0 {
		t.Errorf("unreachable backend should read as empty list, got %d", len(got))
	}
}

func TestHealth(t *testing.T) {
	srv, _ := issuanceServer(t, http.StatusOK, map[string]any{"status": "ok", "message": "healthy"})
	client := newTestClient(srv.URL)

	h := client.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("status = %q", h.Status)
	}

	down := newTestClient("http://127.0.0.1:1")
	h = down.Health(context.Background())
	if h.Status != "error" || h.Message != "API unreachable" {
		t.Errorf("unreachable backend should read as error/unreachable, got %+v", h)
	}
}

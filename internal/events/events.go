package events

import "context"

// Event types
const (
	EventCredentialIssued = "credential_issued"
	EventAPIKeyRotated    = "api_key_rotated"
	EventWalletConnected  = "wallet_connected"
)

// StreamCredentials carries issuance lifecycle events to dashboard clients.
const StreamCredentials = "events:credentials"

type Event struct {
	Type    string         `json:"type"`
	Wallet  string         `json:"wallet,omitempty"`
	Payload map[string]any `json:"payload"`
}

// CredentialIssued builds the event broadcast to dashboard clients after a
// successful issuance. Events are a courtesy to connected clients, never
// part of the issuance contract.
func CredentialIssued(wallet string, payload map[string]any) Event {
	return Event{Type: EventCredentialIssued, Wallet: wallet, Payload: payload}
}

// APIKeyRotated notifies a wallet's open tabs that the active key changed
// and any displayed key is stale.
func APIKeyRotated(wallet string) Event {
	return Event{Type: EventAPIKeyRotated, Wallet: wallet, Payload: map[string]any{}}
}

// WalletConnected announces a fresh session for a wallet.
func WalletConnected(wallet, walletID string) Event {
	return Event{Type: EventWalletConnected, Wallet: wallet, Payload: map[string]any{"wallet_id": walletID}}
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

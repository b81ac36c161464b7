package walletkit

import "github.com/starproof/dashboard-api/internal/stellar"

// Wallet describes one wallet provider the dashboard can connect through.
type Wallet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

const DefaultWalletID = "freighter"

// Kit is the catalog of supported wallet providers for a given network.
// Connection itself happens in the user's browser extension; the server
// side only validates the selection and the resulting address.
type Kit struct {
	network stellar.Network
	wallets []Wallet
}

func New(network stellar.Network) *Kit {
	return &Kit{
		network: network,
		// lobstr and rabet do not self-report availability, treat them as present
		wallets: []Wallet{
			{ID: "freighter", Name: "Freighter", Available: true},
			{ID: "albedo", Name: "Albedo", Available: true},
			{ID: "xbull", Name: "xBull", Available: true},
			{ID: "lobstr", Name: "LOBSTR", Available: true},
			{ID: "rabet", Name: "Rabet", Available: true},
		},
	}
}

func (k *Kit) Network() stellar.Network { return k.network }

// SupportedWallets returns the provider catalog, most common first.
func (k *Kit) SupportedWallets() []Wallet {
	out := make([]Wallet, len(k.wallets))
	copy(out, k.wallets)
	return out
}

// Supported reports whether walletID names a known provider. Empty means
// the default provider and is accepted.
func (k *Kit) Supported(walletID string) bool {
	if walletID == "" {
		return true
	}
	for _, w := range k.wallets {
		if w.ID == walletID {
			return true
		}
	}
	return false
}

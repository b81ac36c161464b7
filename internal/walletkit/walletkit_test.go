package walletkit

import (
	"testing"

	"github.com/starproof/dashboard-api/internal/stellar"
)

func TestSupported(t *testing.T) {
	kit := New(stellar.NetworkTestnet)

	tests := []struct {
		walletID string
		want     bool
	}{
		{"freighter", true},
		{"albedo", true},
		{"xbull", true},
		{"lobstr", true},
		{"rabet", true},
		{"", true},
		{"metamask", false},
		{"Freighter", false},
	}

	for _, tt := range tests {
		if got := kit.Supported(tt.walletID); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.walletID, got, tt.want)
		}
	}
}

func TestSupportedWallets_CopyIsIsolated(t *testing.T) {
	kit := New(stellar.NetworkTestnet)

	list := kit.SupportedWallets()
	if len(list) == 0 {
		t.Fatal("empty wallet catalog")
	}
	if list[0].ID != DefaultWalletID {
		t.Errorf("first wallet = %q, want the default %q", list[0].ID, DefaultWalletID)
	}

	list[0].ID = "mutated"
	if kit.SupportedWallets()[0].ID != DefaultWalletID {
		t.Error("catalog leaked to the caller")
	}
}

func TestNetwork(t *testing.T) {
	kit := New(stellar.NetworkFuturenet)
	if kit.Network() != stellar.NetworkFuturenet {
		t.Errorf("network = %v", kit.Network())
	}
}

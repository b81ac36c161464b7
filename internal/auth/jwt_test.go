package auth

import (
	"testing"
	"time"
)

const testWallet = "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ"

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", testWallet, "freighter", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.WalletAddress != testWallet {
		t.Errorf("wallet address = %q, want %q", claims.WalletAddress, testWallet)
	}
	if claims.WalletID != "freighter" {
		t.Errorf("wallet id = %q, want freighter", claims.WalletID)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", testWallet, "", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := ParseJWT("other-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestJWT_Expired(t *testing.T) {
	// negative expiration is replaced by the 24h default, so build an
	// already-expired token with a tiny positive lifetime instead
	token, err := GenerateJWT("secret", testWallet, "", time.Millisecond)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWT_DefaultExpiration(t *testing.T) {
	token, err := GenerateJWT("secret", testWallet, "", 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseJWT("secret", token); err != nil {
		t.Errorf("token with default expiration should parse: %v", err)
	}
}

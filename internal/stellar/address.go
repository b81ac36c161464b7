package stellar

import (
	"fmt"

	"github.com/stellar/go/strkey"
)

// ValidAddress reports whether s is a Stellar account public key
// (G-prefixed, 56-character strkey with a valid checksum).
func ValidAddress(s string) bool {
	return strkey.IsValidEd25519PublicKey(s)
}

// ShortenAddress renders an address as GXXX...XXXX for display.
func ShortenAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return fmt.Sprintf("%s...%s", addr[:4], addr[len(addr)-4:])
}

// FormatIssuer turns an issuer value into its display form. Stellar
// addresses are shortened under the StarProof brand; anything else is
// passed through, empty falls back to the brand name.
func FormatIssuer(issuer string) string {
	if issuer == "" {
		return "StarProof"
	}
	if ValidAddress(issuer) {
		return fmt.Sprintf("StarProof (%s)", ShortenAddress(issuer))
	}
	return issuer
}

package apikey

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	prefix    = "spk"
	secretLen = 32
	// URL-safe alphabet, matches the keys the issuance backend already accepts
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
)

var (
	ErrInvalidKey = errors.New("invalid api key")

	keyPattern = regexp.MustCompile(`^spk_[a-z]+_[A-Za-z0-9_-]{32}$`)
)

// Generate creates a bearer token of the form spk_<env>_<32 URL-safe chars>.
func Generate(env string) (string, error) {
	if env == "" || strings.ToLower(env) != env {
		return "", fmt.Errorf("invalid key environment %q", env)
	}
	buf := make([]byte, secretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return fmt.Sprintf("%s_%s_%s", prefix, env, string(buf)), nil
}

// Encode derives the stored companion encoding of a key. The users table
// keeps it next to the plaintext for wire compatibility with the existing
// store; it is base64, not a security hash.
func Encode(key string) string {
	return base64.StdEncoding.EncodeToString([]byte(key))
}

// Valid reports whether key has the issued shape.
func Valid(key string) bool {
	return keyPattern.MatchString(key)
}

// Parse splits a key into its environment and secret parts.
func Parse(key string) (env, secret string, err error) {
	if !Valid(key) {
		return "", "", ErrInvalidKey
	}
	parts := strings.SplitN(key, "_", 3)
	return parts[1], parts[2], nil
}

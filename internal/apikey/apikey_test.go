package apikey

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerate_Shape(t *testing.T) {
	key, err := Generate("test")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	pattern := regexp.MustCompile(`^spk_[a-z]+_[A-Za-z0-9_-]{32}$`)
	if !pattern.MatchString(key) {
		t.Errorf("key %q does not match expected shape", key)
	}
	if !strings.HasPrefix(key, "spk_test_") {
		t.Errorf("key %q does not carry the env tag", key)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := Generate("test")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestGenerate_InvalidEnv(t *testing.T) {
	for _, env := range []string{"", "TEST", "Live"} {
		if _, err := Generate(env); err == nil {
			t.Errorf("Generate(%q) should fail", env)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
	}{
		{"spk_test_abcdefghijklmnopqrstuvwxyz_-0123", true},
		{"spk_live_ABCDEFGHIJKLMNOPQRSTUVWXYZ123456", true},
		{"spk_test_tooshort", false},
		{"pk_test_abcdefghijklmnopqrstuvwxyz_-01234", false},
		{"spk__abcdefghijklmnopqrstuvwxyzabcdef12", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Valid(tt.key); got != tt.expected {
				t.Errorf("Valid(%q) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	key, err := Generate("live")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	env, secret, err := Parse(key)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if env != "live" {
		t.Errorf("env = %q, want live", env)
	}
	if len(secret) != 32 {
		t.Errorf("secret length = %d, want 32", len(secret))
	}

	if _, _, err := Parse("not-a-key"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestEncode_IsBase64NotHash(t *testing.T) {
	// two different keys must keep distinct encodings, and the encoding is
	// reversible by design (wire compat with the existing store)
	a := Encode("spk_test_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	b := Encode("spk_test_bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	if a == b {
		t.Error("distinct keys encoded identically")
	}
	if a == "" {
		t.Error("empty encoding")
	}
}

package crypto

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		plaintext string
	}{
		{name: "short secret", secret: "k", plaintext: "sk-abc123"},
		{name: "exact 32 byte secret", secret: strings.Repeat("a", 32), plaintext: "hello world"},
		{name: "long secret truncated", secret: strings.Repeat("b", 48), plaintext: "hello world"},
		{name: "empty plaintext", secret: "secret", plaintext: ""},
		{name: "unicode plaintext", secret: "secret", plaintext: "naïve café ☕"},
		{name: "json plaintext", secret: "secret", plaintext: `{"api_key":"sk-test","model":"gpt-4o-mini"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := EncryptString(tt.secret, tt.plaintext)
			if err != nil {
				t.Fatalf("EncryptString() error = %v", err)
			}
			if enc == tt.plaintext && tt.plaintext != "" {
				t.Error("EncryptString() returned plaintext unchanged")
			}

			dec, err := DecryptString(tt.secret, enc)
			if err != nil {
				t.Fatalf("DecryptString() error = %v", err)
			}
			if dec != tt.plaintext {
				t.Errorf("round trip = %q, want %q", dec, tt.plaintext)
			}
		})
	}
}

func TestEncryptNondeterministic(t *testing.T) {
	a, err := EncryptString("secret", "same input")
	if err != nil {
		t.Fatalf("EncryptString() error = %v", err)
	}
	b, err := EncryptString("secret", "same input")
	if err != nil {
		t.Fatalf("EncryptString() error = %v", err)
	}
	if a == b {
		t.Error("EncryptString() produced identical ciphertexts for the same input")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	enc, err := EncryptString("right-key", "payload")
	if err != nil {
		t.Fatalf("EncryptString() error = %v", err)
	}
	if _, err := DecryptString("wrong-key", enc); err == nil {
		t.Error("DecryptString() with wrong key succeeded")
	}
}

func TestEmptySecret(t *testing.T) {
	if _, err := EncryptString("", "payload"); err == nil {
		t.Error("EncryptString() with empty secret succeeded")
	}
	if _, err := DecryptString("", "payload"); err == nil {
		t.Error("DecryptString() with empty secret succeeded")
	}
}

func TestDecryptGarbage(t *testing.T) {
	if _, err := DecryptString("secret", "not-base64!!!"); err == nil {
		t.Error("DecryptString() of invalid base64 succeeded")
	}
	if _, err := DecryptString("secret", "AAAA"); err == nil {
		t.Error("DecryptString() of truncated ciphertext succeeded")
	}
}

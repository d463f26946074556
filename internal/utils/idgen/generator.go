package idgen

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns an identifier of the form "<prefix>_<suffix>"
// where suffix is length characters drawn from [0-9a-z] using crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", errors.New("prefix cannot be empty")
	}
	if length <= 0 {
		return "", errors.New("length must be positive")
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + length)
	sb.WriteString(prefix)
	sb.WriteByte('_')
	for _, b := range buf {
		sb.WriteByte(idCharset[int(b)%len(idCharset)])
	}
	return sb.String(), nil
}

// ValidateIDFormat reports whether id is "<expectedPrefix>_<suffix>" with a
// non-empty suffix drawn entirely from [0-9a-z].
func ValidateIDFormat(id, expectedPrefix string) bool {
	prefix := expectedPrefix + "_"
	if !strings.HasPrefix(id, prefix) {
		return false
	}
	suffix := id[len(prefix):]
	if suffix == "" {
		return false
	}
	for _, c := range suffix {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// HashKey256 returns the hex sha256 digest of secret||key. Keys are stored
// and compared only in this hashed form.
func HashKey256(key string, secret []byte) string {
	h := sha256.New()
	h.Write(secret)
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

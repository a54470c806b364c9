package sdk

import (
	"strings"

	"github.com/zalando/go-keyring"
)

const keyringService = "mdex"

// normalizeKey converts a baseURL into a stable key name for keyring storage.
// It trims trailing slashes and lowercases the value to avoid accidental
// duplicates like https://example.com/ and https://example.com.
func normalizeKey(baseURL string) string {
	s := strings.TrimSpace(baseURL)
	s = strings.TrimRight(s, "/")
	s = strings.ToLower(s)
	return s
}

// SaveToken stores the token in the OS keyring under the normalized baseURL
// key, so tokens for different controllers don't clobber each other.
func SaveToken(baseURL string, token string) error {
	return keyring.Set(keyringService, normalizeKey(baseURL), token)
}

// LoadToken retrieves the token stored for the given baseURL. If no token is
// found the underlying keyring error is returned.
func LoadToken(baseURL string) (string, error) {
	return keyring.Get(keyringService, normalizeKey(baseURL))
}

// DeleteToken removes the token entry for the given baseURL from the OS
// keyring. It is a convenience for logout flows.
func DeleteToken(baseURL string) error {
	return keyring.Delete(keyringService, normalizeKey(baseURL))
}

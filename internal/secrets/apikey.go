package secrets

import (
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups this app’s secrets in the OS keychain.
	KeyringService = "opptracker"
	samKeyAccount  = "sam_api_key"
)

// SAMAPIKey resolves the SAM.gov API key: explicit config value first, then
// the SAM_API_KEY environment variable, then the OS keychain. Empty result
// means the SAM.gov fetch is disabled, not an error.
func SAMAPIKey(configured string) string {
	if k := strings.TrimSpace(configured); k != "" {
		return k
	}
	if k := strings.TrimSpace(os.Getenv("SAM_API_KEY")); k != "" {
		return k
	}
	if k, err := keyring.Get(KeyringService, samKeyAccount); err == nil {
		return strings.TrimSpace(k)
	}
	return ""
}

// SetSAMAPIKey stores the key in the OS keychain.
func SetSAMAPIKey(key string) error {
	return keyring.Set(KeyringService, samKeyAccount, key)
}

// DeleteSAMAPIKey removes the key from the OS keychain.
func DeleteSAMAPIKey() error {
	return keyring.Delete(KeyringService, samKeyAccount)
}

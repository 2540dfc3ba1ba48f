package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobflow"

	// Keychain account names, also usable as environment variables.
	AccountAPIToken  = "JOBFLOW_API_TOKEN"
	AccountGeminiKey = "GEMINI_API_KEY"
)

var ErrNotFound = errors.New("secret not found (set it via env or keychain)")

// Get resolves a secret by account name: environment first, then the
// OS keychain.
func Get(account string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(account)); v != "" {
		return v, nil
	}
	pw, err := keyring.Get(KeyringService, account)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	return "", ErrNotFound
}

func Set(account string, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

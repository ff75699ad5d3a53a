//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKey supplies the database key on platforms without a system keyring.
const envKey = "BILLCRAFT_DB_KEY"

type fallbackKeyring struct{}

func newPlatformKeyring() Keyring {
	return &fallbackKeyring{}
}

func (k *fallbackKeyring) GetKey() (string, error) {
	key := os.Getenv(envKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", envKey)
	}

	return key, nil
}

// SetKey cannot persist anything here; it tells the user what to export
// instead.
func (k *fallbackKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	return fmt.Errorf("no system keyring on this platform: set %s to '%s'", envKey, password)
}

func (k *fallbackKeyring) DeleteKey() error {
	return fmt.Errorf("no system keyring on this platform: unset %s manually", envKey)
}

func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv(envKey) != ""
}

//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return &darwinKeyring{}
}

// GetKey reads the database key out of the macOS Keychain.
func (k *darwinKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no encryption key in the keychain yet: %w", err)
		}
		return "", fmt.Errorf("keychain read failed: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

// SetKey writes the database key into the macOS Keychain.
func (k *darwinKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("keychain write failed: %w", err)
	}

	return nil
}

// DeleteKey drops the database key from the macOS Keychain.
func (k *darwinKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no encryption key in the keychain: %w", err)
		}
		return fmt.Errorf("keychain delete failed: %w", err)
	}

	return nil
}

// IsAvailable reports whether the Keychain will actually accept writes.
// The only reliable way to know is to try one: write a scratch entry and
// delete it again.
func (k *darwinKeyring) IsAvailable() bool {
	scratch := "__billcraft_availability_test__"
	if err := keyring.Set(ServiceName, scratch, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, scratch)
	return true
}

package crypto

// Keyring hides where the database encryption key lives. macOS gets the
// Keychain; everywhere else falls back to an environment variable.
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "billcraft"
	KeyName     = "db-encryption-key"
)

// NewKeyring picks the implementation for the current platform.
func NewKeyring() Keyring {
	return newPlatformKeyring()
}

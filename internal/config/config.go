package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice defaults for new drafts
	Invoice InvoiceConfig `yaml:"invoice"`

	// Seller identity printed on every invoice
	Seller SellerConfig `yaml:"seller"`

	// Bank details printed in the payment section
	Bank BankConfig `yaml:"bank"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type InvoiceConfig struct {
	Currency        string  `yaml:"currency"`          // ISO-like code, e.g. "AUD"
	TaxName         string  `yaml:"tax_name"`          // e.g. "GST"
	TaxPercentage   float64 `yaml:"tax_percentage"`    // Flat percentage, e.g. 10 for 10%
	PaymentMethod   string  `yaml:"payment_method"`    // Default payment method label
	DueDays         int     `yaml:"due_days"`          // Days between issue and due date
	TaxInvoice      bool    `yaml:"tax_invoice"`       // Show the TAX INVOICE badge
	OutputDir       string  `yaml:"output_dir"`        // Directory for exported PDFs
	ThankYouMessage string  `yaml:"thank_you_message"` // Footer line
}

type SellerConfig struct {
	BusinessName     string `yaml:"business_name"`
	Street           string `yaml:"street"`
	City             string `yaml:"city"`
	State            string `yaml:"state"`
	Postcode         string `yaml:"postcode"`
	Country          string `yaml:"country"`
	Phone            string `yaml:"phone"`
	Email            string `yaml:"email"`
	ABN              string `yaml:"abn"`
	AuthorizedPerson string `yaml:"authorized_person"`
}

type BankConfig struct {
	AccountName   string `yaml:"account_name"`
	AccountNumber string `yaml:"account_number"`
	BSB           string `yaml:"bsb"`
	BankName      string `yaml:"bank_name"`
	PaymentNotes  string `yaml:"payment_notes"`
}

// DefaultConfigPath returns ~/.config/billcraft/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "billcraft", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "billcraft", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "billcraft", "billcraft.db"),
		},
		Invoice: InvoiceConfig{
			Currency:        "AUD",
			TaxName:         "GST",
			TaxPercentage:   10,
			PaymentMethod:   "Bank Transfer",
			DueDays:         14,
			TaxInvoice:      true,
			OutputDir:       filepath.Join(homeDir, ".config", "billcraft", "invoices"),
			ThankYouMessage: "Thank you for your business!",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, exports, etc.)
func (c *Config) EnsureDirectories() error {
	// Create database directory
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	// Create PDF output directory
	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}

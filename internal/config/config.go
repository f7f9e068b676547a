package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. ORDERINTAKE_BC_TENANT_ID -> bc.tenant_id.
const envPrefix = "ORDERINTAKE_"

// Config holds all runtime configuration for the order intake pipeline.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Gmail   GmailConfig   `koanf:"gmail"`
	Mailbox MailboxConfig `koanf:"mailbox"`
	Extract ExtractConfig `koanf:"extract"`
	BC      BCConfig      `koanf:"bc"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type GmailConfig struct {
	// CredentialsFile is the path to the Google OAuth client secret JSON.
	CredentialsFile string `koanf:"credentials_file"`
	// MaxResults caps how many inbox messages a fetch run processes.
	MaxResults int64 `koanf:"max_results"`
}

type MailboxConfig struct {
	// Dir is where fetched emails and their attachments are stored.
	Dir string `koanf:"dir"`
}

type ExtractConfig struct {
	// Model is the vision-capable chat model used for order identification.
	Model string `koanf:"model"`
	// CatalogDir holds the product catalog pictures.
	CatalogDir string `koanf:"catalog_dir"`
	// DeliveryLeadDays is the default delivery horizon used when an email
	// specifies no usable delivery date.
	DeliveryLeadDays int `koanf:"delivery_lead_days"`
}

type BCConfig struct {
	TenantID     string `koanf:"tenant_id"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	CompanyName  string `koanf:"company_name"`
	Environment  string `koanf:"environment"`
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables use the ORDERINTAKE_ prefix and override file values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("gmail.credentials_file", "credentials.json")
	k.Set("gmail.max_results", 50)
	k.Set("mailbox.dir", "emails")
	k.Set("extract.model", "gpt-4o")
	k.Set("extract.catalog_dir", "product_pictures")
	k.Set("extract.delivery_lead_days", 14)
	k.Set("bc.environment", "Production")
	k.Set("metrics.enabled", false)

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// 2. Load from ENV (ORDERINTAKE_BC_TENANT_ID -> bc.tenant_id)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		// Only the first underscore separates section from key; the rest
		// belong to the key itself (tenant_id, credentials_file, ...).
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateBC checks that all Business Central credentials are present.
// The Gmail and extraction stages work without them, so this is only
// enforced when the posting pipeline is actually used.
func (c *Config) ValidateBC() error {
	var missing []string
	if c.BC.TenantID == "" {
		missing = append(missing, "bc.tenant_id")
	}
	if c.BC.ClientID == "" {
		missing = append(missing, "bc.client_id")
	}
	if c.BC.ClientSecret == "" {
		missing = append(missing, "bc.client_secret")
	}
	if c.BC.CompanyName == "" {
		missing = append(missing, "bc.company_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Business Central settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

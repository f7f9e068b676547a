package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "credentials.json", cfg.Gmail.CredentialsFile)
	assert.Equal(t, int64(50), cfg.Gmail.MaxResults)
	assert.Equal(t, "emails", cfg.Mailbox.Dir)
	assert.Equal(t, "gpt-4o", cfg.Extract.Model)
	assert.Equal(t, "product_pictures", cfg.Extract.CatalogDir)
	assert.Equal(t, 14, cfg.Extract.DeliveryLeadDays)
	assert.Equal(t, "Production", cfg.BC.Environment)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orderintake.yaml")
	content := `
log:
  level: debug
  format: json
bc:
  tenant_id: tenant-123
  client_id: client-456
  client_secret: secret
  company_name: CRONUS FI
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "tenant-123", cfg.BC.TenantID)
	assert.Equal(t, "CRONUS FI", cfg.BC.CompanyName)
	// Defaults survive partial files
	assert.Equal(t, "emails", cfg.Mailbox.Dir)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ORDERINTAKE_LOG_LEVEL", "warn")
	t.Setenv("ORDERINTAKE_BC_TENANT_ID", "env-tenant")
	t.Setenv("ORDERINTAKE_GMAIL_CREDENTIALS_FILE", "/etc/orderintake/credentials.json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "env-tenant", cfg.BC.TenantID)
	assert.Equal(t, "/etc/orderintake/credentials.json", cfg.Gmail.CredentialsFile)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/orderintake.yaml")
	assert.Error(t, err)
}

func TestValidateBC(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BCConfig
		wantErr string
	}{
		{
			name: "complete",
			cfg: BCConfig{
				TenantID:     "t",
				ClientID:     "c",
				ClientSecret: "s",
				CompanyName:  "co",
			},
		},
		{
			name:    "all missing",
			cfg:     BCConfig{},
			wantErr: "bc.tenant_id, bc.client_id, bc.client_secret, bc.company_name",
		},
		{
			name: "secret missing",
			cfg: BCConfig{
				TenantID:    "t",
				ClientID:    "c",
				CompanyName: "co",
			},
			wantErr: "bc.client_secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BC: tt.cfg}
			err := cfg.ValidateBC()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

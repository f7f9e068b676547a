package google

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredentials = `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "client_secret": "test-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["urn:ietf:wg:oauth:2.0:oob", "http://localhost"]
  }
}`

func writeCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(testCredentials), 0600))
	return path
}

func TestLoadOAuthConfig(t *testing.T) {
	conf, err := loadOAuthConfig(writeCredentials(t))
	require.NoError(t, err)

	assert.Equal(t, "test-client-id.apps.googleusercontent.com", conf.ClientID)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/gmail.modify"}, conf.Scopes)
}

func TestLoadOAuthConfigMissingFile(t *testing.T) {
	_, err := loadOAuthConfig("/nonexistent/credentials.json")
	assert.ErrorContains(t, err, "failed to read credentials file")
}

func TestLoadOAuthConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := loadOAuthConfig(path)
	assert.ErrorContains(t, err, "failed to parse credentials file")
}

func TestGetAuthURL(t *testing.T) {
	url, err := GetAuthURL(writeCredentials(t))
	require.NoError(t, err)

	assert.Contains(t, url, "client_id=test-client-id.apps.googleusercontent.com")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "gmail.modify")
}

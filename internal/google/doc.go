// Package google provides OAuth2 authentication and token management for the
// Gmail API.
//
// The installed-app client configuration is read from a Google client secret
// JSON file (credentials.json by default). Exchanged tokens are cached under
// the user cache directory and refreshed transparently through the returned
// oauth2.TokenSource.
package google

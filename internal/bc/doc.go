// Package bc posts identified sales orders to the Business Central
// ODataV4 API.
//
// Requests authenticate with an AAD client-credentials token. Transient
// API errors are retried with exponential backoff, and a rejected token
// is refreshed once per request before giving up.
package bc

// Package gmail provides a client for interacting with the Gmail API.
//
// The client covers the operations the order intake pipeline needs:
//   - Paginated INBOX message listing
//   - Full message retrieval with MIME body extraction
//   - Attachment enumeration and download
//   - Sending plain-text or HTML emails
//
// Authentication uses the OAuth2 token cached by the google package; run the
// auth command once to establish it.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := gmail.NewClient(ctx, "credentials.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msgs, err := client.ListInboxMessages(50)
//	if err != nil {
//	    log.Fatal(err)
//	}
package gmail

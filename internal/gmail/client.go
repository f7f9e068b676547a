package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jkivimaki/orderintake/internal/google"
)

// Client wraps the Gmail Users service
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a new Gmail client with OAuth2 authentication.
// The OAuth token must have been saved previously via the auth command.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	httpClient, err := google.GetHTTPClient(ctx, credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users}, nil
}

// newClientFromService wires an existing Gmail service, used by tests.
func newClientFromService(svc *gmail.Service) *Client {
	return &Client{svc: svc.Users}
}

// ListInboxMessages lists message stubs from the INBOX with pagination.
// It will fetch up to maxResults messages, making multiple API calls if
// necessary. The returned messages carry only IDs; use GetMessage for the
// full payload.
func (c *Client) ListInboxMessages(maxResults int64) ([]*gmail.Message, error) {
	var allMessages []*gmail.Message
	pageToken := ""

	for {
		remaining := maxResults - int64(len(allMessages))
		if remaining <= 0 {
			break
		}

		// Gmail API has a max page size, typically 100
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Messages.List("me").LabelIds("INBOX").MaxResults(pageSize)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list inbox messages: %w", err)
		}

		allMessages = append(allMessages, res.Messages...)

		if res.NextPageToken == "" || int64(len(allMessages)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}

	if int64(len(allMessages)) > maxResults {
		allMessages = allMessages[:maxResults]
	}

	return allMessages, nil
}

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// MarkMessageAsRead removes the UNREAD label from a message
func (c *Client) MarkMessageAsRead(messageID string) error {
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Do()
	return err
}

package gmail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jkivimaki/orderintake/internal/logging"
	"github.com/jkivimaki/orderintake/internal/mailbox"
)

// FetchToStore downloads inbox messages into the mailbox store, one folder
// per message, and returns the created folder paths. Attachments are stored
// under sanitized filenames. With markRead set, each message is marked read
// after it has been persisted so a failed save leaves it unread for the
// next run.
func (c *Client) FetchToStore(ctx context.Context, store *mailbox.Store, maxResults int64, markRead bool) ([]string, error) {
	logger := slog.Default().With(logging.KeyService, "gmail")

	msgs, err := c.ListInboxMessages(maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox messages: %w", err)
	}

	var folders []string
	for _, stub := range msgs {
		msg, err := c.GetMessage(stub.Id)
		if err != nil {
			return folders, fmt.Errorf("failed to get message %s: %w", stub.Id, err)
		}

		body, err := MessageBody(msg)
		if err != nil {
			logger.WarnContext(ctx, "failed to decode message body",
				slog.String("message_id", msg.Id), logging.Err(err))
			body = ""
		}

		attachments := make(map[string][]byte)
		for _, info := range ListAttachments(msg) {
			data, err := c.GetAttachment(info.MessageID, info.AttachmentID)
			if err != nil {
				logger.WarnContext(ctx, "skipping attachment",
					slog.String("filename", info.Filename), logging.Err(err))
				continue
			}
			attachments[SanitizeFilename(info.Filename)] = data
		}

		email := &mailbox.Email{
			Subject: HeaderValue(msg, "Subject"),
			From:    HeaderValue(msg, "From"),
			Date:    HeaderValue(msg, "Date"),
			Content: body,
		}

		folder, err := store.SaveEmail(email, attachments)
		if err != nil {
			return folders, fmt.Errorf("failed to save message %s: %w", msg.Id, err)
		}
		folders = append(folders, folder)

		if markRead {
			if err := c.MarkMessageAsRead(msg.Id); err != nil {
				logger.WarnContext(ctx, "failed to mark message as read",
					slog.String("message_id", msg.Id), logging.Err(err))
			}
		}

		logger.InfoContext(ctx, "email stored",
			slog.String(logging.KeyFolder, folder),
			slog.Int("attachments", len(attachments)))
	}

	return folders, nil
}

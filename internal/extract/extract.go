package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"

	"github.com/jkivimaki/orderintake/internal/catalog"
	"github.com/jkivimaki/orderintake/internal/logging"
	"github.com/jkivimaki/orderintake/internal/mailbox"
	"github.com/jkivimaki/orderintake/internal/order"
)

const (
	// DefaultModel is the vision model used for order identification.
	DefaultModel = "gpt-4o"

	// DefaultLeadDays is added to today's date when an email carries no
	// usable delivery date.
	DefaultLeadDays = 14
)

// Options configure an Identifier.
type Options struct {
	// Model is the chat completion model name.
	Model string

	// LeadDays is the fallback delivery lead time in days.
	LeadDays int

	// Logger for identification progress. Defaults to slog.Default.
	Logger *slog.Logger
}

// Identifier extracts sales orders from stored emails using a vision model.
// Email text and attachment images are sent together with the product
// catalog images, and the structured response is repaired against the
// customer and item master data.
type Identifier struct {
	client     *openai.Client
	catalogDir string
	opts       Options

	// complete is swapped out in tests.
	complete func(ctx context.Context, params openai.ChatCompletionNewParams) (string, error)

	// now is swapped out in tests.
	now func() time.Time
}

// NewIdentifier creates an Identifier backed by the given OpenAI client.
// Catalog images are read from catalogDir on every identification so that
// catalog changes are picked up without a restart.
func NewIdentifier(client *openai.Client, catalogDir string, optFns ...func(o *Options)) *Identifier {
	opts := Options{
		Model:    DefaultModel,
		LeadDays: DefaultLeadDays,
		Logger:   slog.Default(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	id := &Identifier{
		client:     client,
		catalogDir: catalogDir,
		opts:       opts,
		now:        time.Now,
	}
	id.complete = id.chatComplete
	return id
}

// IdentifyFolder runs order identification for a single stored email and
// persists the identified order into the folder. A response without order
// details is returned but not persisted.
func (id *Identifier) IdentifyFolder(ctx context.Context, folder string) (*order.Result, error) {
	logger := id.opts.Logger.With(logging.KeyFolder, folder)

	email, err := mailbox.ReadEmail(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read email: %w", err)
	}

	attachments, err := mailbox.AttachmentPaths(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	pictures, err := catalog.ScanPictures(id.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product catalog: %w", err)
	}

	now := id.now()
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(userPrompt(email, attachments, pictures)),
	}

	for _, att := range attachments {
		url, ok, err := imageDataURL(att)
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable attachment", logging.Err(err))
			continue
		}
		if ok {
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: url}))
		}
	}
	for _, pic := range pictures {
		url, ok, err := imageDataURL(pic.Path)
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable catalog image", logging.Err(err))
			continue
		}
		if ok {
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: url}))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model: id.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(now, id.opts.LeadDays)),
			openai.UserMessage(parts),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0),
	}

	content, err := id.complete(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("order identification request failed: %w", err)
	}

	res, err := parseResult(content)
	if err != nil {
		return nil, err
	}
	repairResult(res, now, id.opts.LeadDays)

	if res.Empty() {
		logger.InfoContext(ctx, "no order identified", slog.Float64("confidence", res.Confidence))
		return res, nil
	}

	if err := res.Details.Validate(); err != nil {
		return nil, fmt.Errorf("identified order is incomplete: %w", err)
	}

	if err := mailbox.SaveOrder(folder, res); err != nil {
		return nil, fmt.Errorf("failed to save identified order: %w", err)
	}

	logger.InfoContext(ctx, "order identified",
		slog.String(logging.KeyCustomer, res.Details.Customer.Name),
		slog.Int("items", len(res.Details.Items)),
		slog.Float64("confidence", res.Confidence))

	return res, nil
}

// FolderResult pairs an identification result with its source folder.
type FolderResult struct {
	Folder string
	Result *order.Result
	Err    error
}

// IdentifyAll runs identification over every stored email folder. Folders
// that fail are reported in the result slice instead of aborting the run.
func (id *Identifier) IdentifyAll(ctx context.Context, store *mailbox.Store) ([]FolderResult, error) {
	folders, err := store.Folders()
	if err != nil {
		return nil, fmt.Errorf("failed to list email folders: %w", err)
	}

	results := make([]FolderResult, 0, len(folders))
	for _, folder := range folders {
		res, err := id.IdentifyFolder(ctx, folder)
		if err != nil {
			id.opts.Logger.ErrorContext(ctx, "identification failed",
				slog.String(logging.KeyFolder, folder), logging.Err(err))
		}
		results = append(results, FolderResult{Folder: folder, Result: res, Err: err})
	}
	return results, nil
}

func (id *Identifier) chatComplete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := id.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseResult decodes the model's JSON response. Responses wrapped in
// markdown code fences are unwrapped first.
func parseResult(content string) (*order.Result, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var res order.Result
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	return &res, nil
}

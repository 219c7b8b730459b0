package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
	httpClient *http.Client
	channel    string
	username   string
	iconEmoji  string
}

// Option is a functional option for notifier configuration
type Option func(*notifier)

// WithHTTPClient sets the HTTP client used to post webhooks
func WithHTTPClient(httpClient *http.Client) Option {
	return func(n *notifier) {
		n.httpClient = httpClient
	}
}

// WithChannel overrides the webhook's default channel
func WithChannel(channel string) Option {
	return func(n *notifier) {
		n.channel = channel
	}
}

// WithUsername overrides the webhook's default username
func WithUsername(username string) Option {
	return func(n *notifier) {
		n.username = username
	}
}

// WithIconEmoji overrides the webhook's default icon
func WithIconEmoji(iconEmoji string) Option {
	return func(n *notifier) {
		n.iconEmoji = iconEmoji
	}
}

// NewNotifier creates a Slack incoming webhook notifier.
func NewNotifier(webhookURL string, opts ...Option) (interfaces.Notifier, error) {
	if webhookURL == "" {
		return nil, goerr.New("slack webhook URL is required")
	}

	n := &notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// NotifyRelease posts a summarized release to the channel. It returns true
// when the webhook accepted the message.
func (n *notifier) NotifyRelease(ctx context.Context, record model.ReleaseRecord, summary string) (bool, error) {
	msg := n.newMessage()
	msg.Text = fmt.Sprintf("🆕 %s %s has been released!", record.RepositoryName, record.TagName)

	attachment := slack.Attachment{
		Color:     "#36a64f",
		Title:     fmt.Sprintf("%s %s", record.RepositoryName, record.TagName),
		TitleLink: record.ReleaseURL,
		Text:      summary,
	}
	if len(record.PublishedAt) >= 10 {
		attachment.Footer = "Released " + record.PublishedAt[:10]
	}
	msg.Attachments = []slack.Attachment{attachment}

	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return false, goerr.Wrap(err, "failed to post release notification",
			goerr.V("repository", record.RepositoryName),
			goerr.V("tag", record.TagName),
		)
	}

	return true, nil
}

// NotifyTest posts a plain connectivity check message.
func (n *notifier) NotifyTest(ctx context.Context) (bool, error) {
	msg := n.newMessage()
	msg.Text = "👋 herald connectivity check"

	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return false, goerr.Wrap(err, "failed to post test notification")
	}

	return true, nil
}

func (n *notifier) newMessage() *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Channel:   n.channel,
		Username:  n.username,
		IconEmoji: n.iconEmoji,
	}
}

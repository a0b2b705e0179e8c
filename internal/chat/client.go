package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wahlandcase/tickethook/internal/breaker"
	"github.com/wahlandcase/tickethook/internal/httpclient"
	"github.com/wahlandcase/tickethook/internal/models"
)

// Name identifies the chat webhook in deliveries and logs
const Name = "chat"

// Client mirrors commit comments to a chat incoming webhook
type Client struct {
	webhookURL string
	browseURL  string
	channel    string
	username   string
	iconEmoji  string
	http       httpclient.Client
	breaker    *breaker.Breaker
	logger     *logrus.Logger
}

// ClientOption allows configuring the chat client
type ClientOption func(*Client)

// WithIdentity sets the channel, bot display name and icon of posted messages
func WithIdentity(channel, username, iconEmoji string) ClientOption {
	return func(c *Client) {
		c.channel = channel
		c.username = username
		c.iconEmoji = iconEmoji
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client httpclient.Client) ClientOption {
	return func(c *Client) {
		c.http = client
	}
}

// WithBreakerThreshold stops posting after n consecutive server failures (0 disables)
func WithBreakerThreshold(n uint32) ClientOption {
	return func(c *Client) {
		c.breaker = breaker.New(Name, n, httpclient.IsClientError)
	}
}

// NewClient creates a chat client. browseURL + ticket id links each message to its ticket.
func NewClient(webhookURL, browseURL string, logger *logrus.Logger, opts ...ClientOption) *Client {
	client := &Client{
		webhookURL: webhookURL,
		browseURL:  browseURL,
		http:       httpclient.NewDefaultClient(),
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type message struct {
	Channel   string `json:"channel"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	IconEmoji string `json:"icon_emoji"`
}

// Name implements hook.Notifier
func (c *Client) Name() string {
	return Name
}

// MessageText renders the quoted comment followed by a link to the ticket
func (c *Client) MessageText(ticketID string, comment models.TicketComment) string {
	return ">>> " + comment.Text + "\n" + c.browseURL + ticketID
}

// Notify posts the message to the webhook. Failures are reported in the returned Delivery.
func (c *Client) Notify(ctx context.Context, ticketID string, comment models.TicketComment) models.Delivery {
	logger := c.logger.WithFields(logrus.Fields{
		"notifier": Name,
		"ticket":   ticketID,
		"sha":      comment.SHA,
	})

	err := c.breaker.Execute(func() error {
		return c.post(ctx, c.MessageText(ticketID, comment))
	})
	if err != nil {
		logger.WithError(err).Debug("Chat webhook request failed")
		return models.NewDelivery(Name, ticketID, comment.SHA, models.Failed(err.Error()))
	}

	logger.Debug("Chat webhook accepted message")
	return models.NewDelivery(Name, ticketID, comment.SHA, models.Delivered)
}

func (c *Client) post(ctx context.Context, text string) error {
	payload, err := json.Marshal(message{
		Channel:   c.channel,
		Username:  c.username,
		Text:      text,
		IconEmoji: c.iconEmoji,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	form := url.Values{}
	form.Set("payload", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return httpclient.Send(c.http, req)
}

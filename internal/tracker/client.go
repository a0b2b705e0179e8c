package tracker

import (
	"bytes"
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

// Name identifies the tracker in deliveries and logs
const Name = "tracker"

// Client posts commit comments to an issue tracker's comment endpoint
type Client struct {
	baseURL        string
	commentPath    string
	login          string
	password       string
	visibilityRole string
	http           httpclient.Client
	breaker        *breaker.Breaker
	logger         *logrus.Logger
}

// ClientOption allows configuring the tracker client
type ClientOption func(*Client)

// WithVisibilityRole restricts posted comments to the given role
func WithVisibilityRole(role string) ClientOption {
	return func(c *Client) {
		c.visibilityRole = role
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

// NewClient creates a tracker client. Comments go to <baseURL>/<ticket><commentPath>.
func NewClient(baseURL, commentPath, login, password string, logger *logrus.Logger, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		commentPath: commentPath,
		login:       login,
		password:    password,
		http:        httpclient.NewDefaultClient(),
		logger:      logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type commentRequest struct {
	Body       string      `json:"body"`
	Visibility *visibility `json:"visibility,omitempty"`
}

type visibility struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Name implements hook.Notifier
func (c *Client) Name() string {
	return Name
}

// CommentURL returns the endpoint comments for ticketID are posted to
func (c *Client) CommentURL(ticketID string) string {
	return c.baseURL + "/" + url.PathEscape(ticketID) + c.commentPath
}

func (c *Client) payload(text string) ([]byte, error) {
	req := commentRequest{Body: text}
	if c.visibilityRole != "" {
		req.Visibility = &visibility{Type: "role", Value: c.visibilityRole}
	}
	return json.Marshal(req)
}

// Notify posts the comment to the ticket. Failures are reported in the returned Delivery, never
// as an error, so one bad ticket does not stop the rest of the push.
func (c *Client) Notify(ctx context.Context, ticketID string, comment models.TicketComment) models.Delivery {
	logger := c.logger.WithFields(logrus.Fields{
		"notifier": Name,
		"ticket":   ticketID,
		"sha":      comment.SHA,
	})

	err := c.breaker.Execute(func() error {
		return c.post(ctx, ticketID, comment.Text)
	})
	if err != nil {
		logger.WithError(err).Debug("Tracker request failed")
		return models.NewDelivery(Name, ticketID, comment.SHA, models.Failed(err.Error()))
	}

	logger.Debug("Tracker accepted comment")
	return models.NewDelivery(Name, ticketID, comment.SHA, models.Delivered)
}

func (c *Client) post(ctx context.Context, ticketID, text string) error {
	body, err := c.payload(text)
	if err != nil {
		return fmt.Errorf("failed to encode comment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.CommentURL(ticketID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.login, c.password)

	return httpclient.Send(c.http, req)
}

// Package notify delivers mail requests to the notification service.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const notificationsPath = "/notiservice/api/v1/notifications"

// Mail is the payload accepted by the notification service. The misspelled
// recepientEmails key is part of that service's contract.
type Mail struct {
	Subject         string   `json:"subject"`
	RecepientEmails []string `json:"recepientEmails"`
	Content         string   `json:"content"`
}

type Notifier interface {
	Send(ctx context.Context, mail Mail) error
}

// HTTPClient posts mails to the notification service.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse notification service url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("notification service url %q must be absolute", baseURL)
	}
	return &HTTPClient{
		endpoint: parsed.String() + notificationsPath,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
			},
		},
		logger: logger,
	}, nil
}

func (c *HTTPClient) Send(ctx context.Context, mail Mail) error {
	body, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("encode mail: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("notification service rejected mail",
			"status", resp.StatusCode,
			"subject", mail.Subject,
		)
		return fmt.Errorf("notification service returned %d", resp.StatusCode)
	}
	c.logger.Info("Notification sent", "recipients", mail.RecepientEmails, "subject", mail.Subject)
	return nil
}

// Noop drops every mail. It is used when no notification service is configured.
type Noop struct{}

func (Noop) Send(context.Context, Mail) error { return nil }

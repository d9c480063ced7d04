package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

var ErrSMSNotConfigured = errors.New("sms gateway not configured")

// SMSClient talks to the school SMS gateway. Sends are retried with backoff
// since the gateway drops requests under load.
type SMSClient struct {
	apiURL string
	apiKey string
	http   *retryablehttp.Client
}

// NewSMSClientFromEnv builds a client from SMS_API_URL and SMS_API_KEY.
// Returns ErrSMSNotConfigured when the URL is unset so callers can degrade to
// in-app notifications only.
func NewSMSClientFromEnv() (*SMSClient, error) {
	apiURL := os.Getenv("SMS_API_URL")
	if apiURL == "" {
		return nil, ErrSMSNotConfigured
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	return &SMSClient{
		apiURL: apiURL,
		apiKey: os.Getenv("SMS_API_KEY"),
		http:   rc,
	}, nil
}

type smsPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send delivers one SMS message to a phone number.
func (c *SMSClient) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(smsPayload{To: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

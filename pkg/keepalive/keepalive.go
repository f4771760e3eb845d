package keepalive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go-portfolio-site/internal/domain"
)

// Payload is the fixed submission posted on every ping. Its insert is what
// keeps an idle hosted store from pausing.
var Payload = domain.ContactSubmission{
	Name:    "System Keep Alive",
	Email:   "system@keepalive.bot",
	Subject: "Keep Alive",
	Message: "Automated keep-alive message to prevent the store from pausing.",
}

// Ping posts Payload to the contact endpoint at url and fails unless it answers 200.
func Ping(ctx context.Context, client *http.Client, url string) error {
	if url == "" {
		return &domain.ConfigError{Component: "keep-alive", Missing: []string{"CONTACT_API_URL"}}
	}
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(Payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("keep-alive: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("keep-alive: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("keep-alive: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}

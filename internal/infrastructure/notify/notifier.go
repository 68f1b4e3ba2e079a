// Package notify delivers simulation step results to an external endpoint so
// remote chart or display collaborators can refresh.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/estrack/estrack/pkg/domain/simulation"
)

// Notifier posts step payloads to a single webhook endpoint.
type Notifier struct {
	url        string
	secret     string
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewNotifier creates a notifier for the given URL. secret may be empty;
// when set, payloads are HMAC-SHA256 signed.
func NewNotifier(url, secret string) *Notifier {
	return &Notifier{
		url:    url,
		secret: secret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

// Payload is the JSON body sent to the endpoint.
type Payload struct {
	Event     string                `json:"event"`
	SessionID string                `json:"session_id"`
	Timestamp time.Time             `json:"timestamp"`
	Step      simulation.StepRecord `json:"step"`
}

// StepCompleted delivers one step record, retrying with linear backoff.
// The error after exhausted retries is returned for the caller to report;
// delivery failures never affect the simulation itself.
func (n *Notifier) StepCompleted(ctx context.Context, sessionID string, rec simulation.StepRecord) error {
	body, err := json.Marshal(Payload{
		Event:     "simulation.step",
		SessionID: sessionID,
		Timestamp: time.Now(),
		Step:      rec,
	})
	if err != nil {
		return fmt.Errorf("marshal step payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxRetries; attempt++ {
		if err := n.send(ctx, body); err != nil {
			lastErr = err
			if attempt < n.maxRetries {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(n.retryDelay * time.Duration(attempt)): // linear backoff
				}
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("deliver step %d after %d attempts: %w", rec.Period, n.maxRetries, lastErr)
}

func (n *Notifier) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Estrack-Notifier/1.0")
	if n.secret != "" {
		req.Header.Set("X-Estrack-Signature", sign(body, n.secret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// sign computes HMAC-SHA256 of the payload using the secret.
func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kestfor/FiveWordCliques/internal/services/finder"
)

const defaultTimeout = 5 * time.Second

type HTTPNotifierConfig struct {
	NotifyURL string        `yaml:"notify_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

type httpNotifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPNotifier(config *HTTPNotifierConfig) *httpNotifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpNotifier{
		url:     config.NotifyURL,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Notify posts the result as JSON to the configured URL.
func (n *httpNotifier) Notify(result *finder.Result) error {
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run result: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Run-ID", result.RunID.String())

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification failed with status: %s", resp.Status)
	}

	slog.Info("run result notification sent",
		slog.String("run_id", result.RunID.String()),
		slog.String("status", string(result.Status)),
	)

	return nil
}

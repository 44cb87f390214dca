package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rustyeddy/traidal/journal"
)

// Notifier delivers an alert to the user.
type Notifier interface {
	Send(ctx context.Context, alert journal.TradingAlert) error
	Name() string
}

// Service fans an alert out to every configured notifier.
type Service struct {
	notifiers []Notifier
	logger    *slog.Logger
}

func NewService(logger *slog.Logger, notifiers ...Notifier) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{notifiers: notifiers, logger: logger.With("component", "notify")}
}

// Add registers another notifier.
func (s *Service) Add(n Notifier) {
	s.notifiers = append(s.notifiers, n)
}

func (s *Service) Name() string { return "service" }

// Send tries every notifier and joins their errors.
func (s *Service) Send(ctx context.Context, alert journal.TradingAlert) error {
	var errs []error
	for _, n := range s.notifiers {
		if err := n.Send(ctx, alert); err != nil {
			s.logger.Warn("notify failed", "notifier", n.Name(), "alert", alert.ID, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes alerts to a structured logger, at a level matching
// their severity.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Name() string { return "log" }

func (n LogNotifier) Send(ctx context.Context, a journal.TradingAlert) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	switch a.Severity {
	case journal.SeverityWarning:
		level = slog.LevelWarn
	case journal.SeverityDanger, journal.SeverityCritical:
		level = slog.LevelError
	}
	logger.Log(ctx, level, a.Message,
		"account", a.AccountID,
		"type", a.Type,
		"severity", a.Severity,
		"pct", a.Percentage,
	)
	return nil
}

// WebhookNotifier posts alerts as JSON to a URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) (*WebhookNotifier, error) {
	if url == "" {
		return nil, errors.New("webhook url not configured")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &WebhookNotifier{url: url, client: &http.Client{Timeout: timeout}}, nil
}

func (w *WebhookNotifier) Name() string { return "webhook" }

func (w *WebhookNotifier) Send(ctx context.Context, a journal.TradingAlert) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// PushTokenSource lists the Expo push tokens alerts are delivered to.
type PushTokenSource interface {
	AdminPushTokens(ctx context.Context) ([]string, error)
}

type expoMessage struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Sound string         `json:"sound,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

type expoResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// PushNotifier sends low-stock alerts to the admins' devices through the Expo
// push API. Ban notifications are not pushed.
type PushNotifier struct {
	url    string
	tokens PushTokenSource
	client *http.Client
	logger *slog.Logger
}

func NewPushNotifier(url string, tokens PushTokenSource, logger *slog.Logger) *PushNotifier {
	return &PushNotifier{
		url:    url,
		tokens: tokens,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (p *PushNotifier) LowStock(ctx context.Context, a LowStockAlert) error {
	return p.push(ctx, "Low stock", fmt.Sprintf("%s has %d left (threshold %d)", a.ProductName, a.Stock, a.Threshold),
		map[string]any{"type": "low_stock", "product_id": a.ProductID})
}

func (p *PushNotifier) LowStockDigest(ctx context.Context, alerts []LowStockAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	names := make([]string, 0, len(alerts))
	for _, a := range alerts {
		names = append(names, a.ProductName)
	}
	return p.push(ctx, fmt.Sprintf("%d products low on stock", len(alerts)), strings.Join(names, ", "),
		map[string]any{"type": "low_stock_digest"})
}

func (p *PushNotifier) Ban(context.Context, BanAlert) error {
	return nil
}

func (p *PushNotifier) DailyBanSummary(context.Context, BanSummary) error {
	return nil
}

func (p *PushNotifier) push(ctx context.Context, title, body string, data map[string]any) error {
	tokens, err := p.tokens.AdminPushTokens(ctx)
	if err != nil {
		return fmt.Errorf("load push tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	messages := make([]expoMessage, 0, len(tokens))
	for _, t := range tokens {
		messages = append(messages, expoMessage{To: t, Title: title, Body: body, Sound: "default", Data: data})
	}
	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send push: unexpected status %d", resp.StatusCode)
	}

	var out expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}
	var errs []error
	for i, ticket := range out.Data {
		if ticket.Status == "error" {
			p.logger.WarnContext(ctx, "push ticket rejected", slog.Int("index", i), slog.String("message", ticket.Message))
			errs = append(errs, errors.New(ticket.Message))
		}
	}
	return errors.Join(errs...)
}

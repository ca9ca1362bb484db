package notify

import (
	"context"
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/rogerio-castellano/appointment-tracker/internal/config"
)

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type EmailNotifier struct {
	client mailSender
	from   string
	to     []string
}

func NewEmailNotifier(cfg config.Alerts) (*EmailNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &EmailNotifier{client: client, from: cfg.From, to: cfg.To}, nil
}

func (e *EmailNotifier) send(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(e.from); err != nil {
		return fmt.Errorf("invalid alert sender: %w", err)
	}
	if err := msg.To(e.to...); err != nil {
		return fmt.Errorf("invalid alert recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := e.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	return nil
}

func (e *EmailNotifier) LowStock(ctx context.Context, a LowStockAlert) error {
	subject := fmt.Sprintf("Low stock: %s", a.ProductName)
	body := fmt.Sprintf("<p><b>%s</b> is running low.</p><p>Stock: %d (threshold %d)</p><p>Time: %s</p>",
		html.EscapeString(a.ProductName), a.Stock, a.Threshold, a.At.Format(time.RFC3339))
	return e.send(ctx, subject, body)
}

func (e *EmailNotifier) LowStockDigest(ctx context.Context, alerts []LowStockAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("<h2>Low stock digest</h2><ul>")
	for _, a := range alerts {
		fmt.Fprintf(&sb, "<li><b>%s</b>: %d left (threshold %d)</li>", html.EscapeString(a.ProductName), a.Stock, a.Threshold)
	}
	sb.WriteString("</ul>")
	return e.send(ctx, fmt.Sprintf("Low stock digest: %d products", len(alerts)), sb.String())
}

func (e *EmailNotifier) Ban(ctx context.Context, a BanAlert) error {
	subject := fmt.Sprintf("BAN ALERT: %s blocked", a.Target)
	body := fmt.Sprintf("<p>Target: %s</p><p>Route: <code>%s</code></p><p>Strikes: %d</p><p>Banned until: %s</p>",
		html.EscapeString(a.Target), html.EscapeString(a.Route), a.Strikes, a.Until.Format(time.RFC3339))
	return e.send(ctx, subject, body)
}

func (e *EmailNotifier) DailyBanSummary(ctx context.Context, s BanSummary) error {
	if len(s.Entries) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily Ban Summary</h2>")
	fmt.Fprintf(&sb, "<p>Total bans: <strong>%d</strong></p>", len(s.Entries))

	sb.WriteString("<h3>By Route</h3><ul>")
	byRoute := s.ByRoute()
	for _, route := range slices.Sorted(maps.Keys(byRoute)) {
		fmt.Fprintf(&sb, "<li><code>%s</code>: %d</li>", html.EscapeString(route), byRoute[route])
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>By Client</h3><ul>")
	byTarget := s.ByTarget()
	for _, target := range slices.Sorted(maps.Keys(byTarget)) {
		fmt.Fprintf(&sb, "<li>%s: %d</li>", html.EscapeString(target), byTarget[target])
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Full Log</h3><ul>")
	for _, entry := range s.Entries {
		fmt.Fprintf(&sb, "<li><b>%s</b> on <code>%s</code> (%d strikes) at %s</li>",
			html.EscapeString(entry.Target), html.EscapeString(entry.Route), entry.Strikes, entry.At.Format(time.RFC822))
	}
	sb.WriteString("</ul>")

	return e.send(ctx, "Daily Ban Report", sb.String())
}

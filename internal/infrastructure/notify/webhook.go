// Package notify contiene los adaptadores de ports.Notifier.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Activos-api/internal/application/ports"
)

var _ ports.Notifier = (*WebhookNotifier)(nil)

// WebhookConfig destino del aviso.
type WebhookConfig struct {
	URL     string
	Token   string // opcional; se envía como Bearer
	Timeout time.Duration
}

// WebhookNotifier publica los avisos como JSON en un webhook (Teams, Slack, n8n, …).
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

// NewWebhookNotifier construye el cliente HTTP.
func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &WebhookNotifier{client: client, url: cfg.URL}
}

type webhookPayload struct {
	Event string              `json:"event"`
	Text  string              `json:"text"`
	Data  ports.WarrantyAlert `json:"data"`
}

// NotifyWarrantyExpiring envía el aviso. Cualquier respuesta que no sea 2xx es error.
func (n *WebhookNotifier) NotifyWarrantyExpiring(ctx context.Context, alert ports.WarrantyAlert) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			Event: "warranty.expiring",
			Text:  summary(alert),
			Data:  alert,
		}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("notify: webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("notify: webhook respondió %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

func summary(alert ports.WarrantyAlert) string {
	return fmt.Sprintf("%d activo(s) con garantía por vencer en los próximos %d días", len(alert.Assets), alert.WindowDays)
}

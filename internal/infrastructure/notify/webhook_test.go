package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/infrastructure/notify"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

func sampleAlert() ports.WarrantyAlert {
	return ports.WarrantyAlert{
		GeneratedAt: time.Now(),
		WindowDays:  30,
		Assets: []ports.WarrantyAlertRow{
			{AssetCode: "LAP-001", Status: "ISSUED", WarrantyEnd: time.Now().AddDate(0, 0, 10), DaysLeft: 10},
		},
	}
}

func TestWebhookNotifier_EnviaJSONConToken(t *testing.T) {
	var (
		gotAuth string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := notify.NewWebhookNotifier(notify.WebhookConfig{URL: srv.URL, Token: "secreto", Timeout: time.Second})
	require.NoError(t, n.NotifyWarrantyExpiring(context.Background(), sampleAlert()))

	assert.Equal(t, "Bearer secreto", gotAuth)
	assert.Equal(t, "warranty.expiring", gotBody["event"])
	data, ok := gotBody["data"].(map[string]any)
	require.True(t, ok)
	assets, ok := data["assets"].([]any)
	require.True(t, ok)
	assert.Len(t, assets, 1)
}

func TestWebhookNotifier_RespuestaNo2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "caído", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := notify.NewWebhookNotifier(notify.WebhookConfig{URL: srv.URL})
	err := n.NotifyWarrantyExpiring(context.Background(), sampleAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, notify.NewLogNotifier(logger.Nop()).NotifyWarrantyExpiring(context.Background(), sampleAlert()))
}

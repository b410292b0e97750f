package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Activos-api/internal/interfaces/http"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

type requestLine struct {
	Level  string `json:"level"`
	Path   string `json:"path"`
	Status int    `json:"status"`
}

// requestLines devuelve las líneas "request" escritas por el middleware.
func requestLines(t *testing.T, buf *bytes.Buffer) []requestLine {
	t.Helper()
	var out []requestLine
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		if m["message"] != "request" {
			continue
		}
		var l requestLine
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l))
		out = append(out, l)
	}
	return out
}

func TestRequestLogger_StatusReal(t *testing.T) {
	var buf bytes.Buffer
	log := logger.FromZerolog(zerolog.New(&buf))
	app := apphttp.NewApp("activos-test", log)
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { panic("nil map") })

	tests := []struct {
		path   string
		status int
		level  string
	}{
		{"/ok", http.StatusOK, "info"},
		{"/no-existe", http.StatusNotFound, "warn"},
		{"/boom", http.StatusInternalServerError, "error"},
	}
	for _, tc := range tests {
		buf.Reset()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		lines := requestLines(t, &buf)
		require.Len(t, lines, 1, tc.path)
		assert.Equal(t, tc.status, lines[0].Status, tc.path)
		assert.Equal(t, tc.level, lines[0].Level, tc.path)
		assert.Equal(t, tc.path, lines[0].Path)
	}
}

func TestRequestLogger_OmiteHealth(t *testing.T) {
	var buf bytes.Buffer
	app := apphttp.NewApp("activos-test", logger.FromZerolog(zerolog.New(&buf)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, requestLines(t, &buf))
}

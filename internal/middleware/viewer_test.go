package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnsureViewerIDStoresID(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", EnsureViewerID(), func(c *fiber.Ctx) error {
		return c.SendString(ViewerID(c))
	})

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"header", "/whoami", "viewer-h", fiber.StatusOK, "viewer-h"},
		{"query", "/whoami?viewerId=viewer-q", "", fiber.StatusOK, "viewer-q"},
		{"header wins", "/whoami?viewerId=viewer-q", "viewer-h", fiber.StatusOK, "viewer-h"},
		{"missing", "/whoami", "", fiber.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Viewer-ID", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
			if tt.body == "" {
				return
			}
			data, _ := io.ReadAll(resp.Body)
			if string(data) != tt.body {
				t.Errorf("expected viewer %q, got %q", tt.body, data)
			}
		})
	}
}

func TestWebSocketUpgradeRejectsPlainRequests(t *testing.T) {
	app := fiber.New()
	app.Get("/ws/board/:boardId", EnsureViewerID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ws/board/abc", nil)
	req.Header.Set("X-Viewer-ID", "viewer-1")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}

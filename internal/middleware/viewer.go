package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

const ViewerIDKey = "viewerID"

func EnsureViewerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if viewerID is already set
		if c.Locals(ViewerIDKey) != nil {
			return c.Next()
		}

		// Check header first
		viewerID := c.Get("X-Viewer-ID")
		if viewerID == "" {
			viewerID = c.Query("viewerId")
		}

		if viewerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Viewer ID is required. Please ensure client is properly initialized.",
			})
		}
		log.Debugf("request %s %s from viewer %s", c.Method(), c.Path(), viewerID)

		// Store in context for this request
		c.Locals(ViewerIDKey, viewerID)
		return c.Next()
	}
}

// ViewerID returns the id stored by EnsureViewerID.
func ViewerID(c *fiber.Ctx) string {
	id, _ := c.Locals(ViewerIDKey).(string)
	return id
}

// ConnViewerID returns the id EnsureViewerID stored before the connection was upgraded.
func ConnViewerID(c *websocket.Conn) string {
	id, _ := c.Locals(ViewerIDKey).(string)
	return id
}

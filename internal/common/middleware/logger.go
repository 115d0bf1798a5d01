package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// quietPrefixes are polled by probes and scrapers and are not logged.
var quietPrefixes = []string{"/health", "/metrics"}

// Logger logs every request except probe and scrape traffic.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Next:       isQuiet,
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} | ${bytesSent}B | Content-Type: ${reqHeader:Content-Type}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

func isQuiet(c fiber.Ctx) bool {
	path := c.Path()
	for _, prefix := range quietPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

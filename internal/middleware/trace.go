package middleware

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/feedback-tracker/backend/internal/metrics"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// TraceSink receives one entry per finished request. Record must not block on storage.
type TraceSink interface {
	Record(entry models.APIRequestLog)
}

// TraceMiddleware captures every request it wraps into an api request log entry.
// Errors from downstream are resolved through the app error handler here, so the
// entry carries the status and body the client actually receives.
func TraceMiddleware(sink TraceSink, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		entry := models.APIRequestLog{
			Method:       storableText(c.Method()),
			Endpoint:     storableText(c.OriginalURL()),
			RequestBody:  storableText(requestBody(c)),
			ResponseBody: storableText(string(c.Response().Body())),
			StatusCode:   c.Response().StatusCode(),
			ResponseTime: elapsed.Milliseconds(),
		}

		m.ObserveRequest(entry.Method, c.Route().Path, entry.StatusCode, elapsed)
		sink.Record(entry)
		return nil
	}
}

// requestBody renders the inbound body as stored text: "{}" when empty,
// compacted JSON, form fields as a JSON object, anything else verbatim.
func requestBody(c *fiber.Ctx) string {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return "{}"
	}

	ctype := utils.ToLower(string(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationJSON):
		var buf bytes.Buffer
		if err := json.Compact(&buf, body); err == nil {
			return buf.String()
		}
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm):
		form := map[string]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			form[string(k)] = string(v)
		})
		if data, err := json.Marshal(form); err == nil {
			return string(data)
		}
	}
	return string(body)
}

// storableText returns a copy of s that a postgres TEXT column accepts:
// invalid UTF-8 sequences become U+FFFD and NUL bytes are dropped.
func storableText(s string) string {
	return utils.CopyString(strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", ""))
}

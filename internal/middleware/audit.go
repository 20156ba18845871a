package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/mastrovia/devxtra-team/internal/services"
)

const maxAuditBody = 2000

// ActivityRecorder stores audit entries.
type ActivityRecorder interface {
	Record(ctx context.Context, e services.ActivityEntry)
}

// AuditLog records admin write operations (POST/PUT/PATCH/DELETE) to the
// activity log.
func AuditLog(recorder ActivityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch && method != http.MethodDelete {
			c.Next()
			return
		}

		bodySnippet := captureBody(c)

		c.Next()

		status := c.Writer.Status()
		module, action := parseRouteInfo(c.FullPath(), method)

		level := "info"
		switch {
		case status >= 500:
			level = "error"
		case status >= 400:
			level = "warning"
		}

		recorder.Record(c.Request.Context(), services.ActivityEntry{
			Level:      level,
			Module:     module,
			Action:     action,
			Message:    formatAuditMessage(GetEmail(c), method, c.Request.URL.Path, status),
			ActorID:    GetUserID(c),
			ActorEmail: GetEmail(c),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Extra: map[string]interface{}{
				"method": method,
				"path":   c.Request.URL.Path,
				"status": status,
				"body":   bodySnippet,
			},
		})
	}
}

// captureBody reads the request body for the log and restores it for the
// handler. Multipart uploads are not captured.
func captureBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		return "[multipart]"
	}

	bodyBytes, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return maskSensitiveFields(truncateBody(string(bodyBytes), maxAuditBody))
}

// truncateBody cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateBody(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "...[truncated]"
}

// parseRouteInfo extracts module and action from a gin route pattern.
// e.g. "/api/admin/admins/:id/ban" + "PUT" → module="Admins", action="Update ban"
func parseRouteInfo(fullPath, method string) (module, action string) {
	path := strings.TrimPrefix(fullPath, "/api/admin/")
	path = strings.TrimPrefix(path, "/api/")

	parts := strings.Split(path, "/")
	module = parts[0]
	if module == "" {
		module = "unknown"
	}
	module = titleCase(strings.ReplaceAll(module, "-", " "))

	switch method {
	case http.MethodPost:
		action = "Create"
	case http.MethodPut, http.MethodPatch:
		action = "Update"
	case http.MethodDelete:
		action = "Delete"
	default:
		action = method
	}

	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if last != "" && !strings.HasPrefix(last, ":") {
			action += " " + last
		}
	}
	return module, action
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatAuditMessage(email, method, path string, status int) string {
	var b strings.Builder
	b.WriteString("[Audit] ")
	if email == "" {
		email = "anonymous"
	}
	b.WriteString(email)
	b.WriteString(" ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(path)
	b.WriteString(" → ")
	if status >= 200 && status < 300 {
		b.WriteString("OK")
	} else {
		b.WriteString("Failed")
	}
	return b.String()
}

var sensitiveKeys = []string{"password", "temppassword", "secret", "token", "access_token", "refresh_token"}

// maskSensitiveFields replaces sensitive string values in a JSON body.
func maskSensitiveFields(body string) string {
	for _, key := range sensitiveKeys {
		body = maskJSONValue(body, key)
	}
	return body
}

// maskJSONValue does a best-effort mask of every JSON string value for key.
func maskJSONValue(body, key string) string {
	needle := "\"" + key + "\""
	from := 0
	for {
		idx := indexFoldASCII(body, needle, from)
		if idx == -1 {
			return body
		}
		pos := idx + len(needle)

		for pos < len(body) && (body[pos] == ' ' || body[pos] == '\t') {
			pos++
		}
		if pos >= len(body) || body[pos] != ':' {
			from = idx + len(needle)
			continue
		}
		pos++
		for pos < len(body) && (body[pos] == ' ' || body[pos] == '\t') {
			pos++
		}
		if pos >= len(body) || body[pos] != '"' {
			from = idx + len(needle)
			continue
		}

		end := strings.Index(body[pos+1:], "\"")
		if end == -1 {
			return body
		}
		body = body[:pos+1] + "***" + body[pos+1+end:]
		from = pos + 1 + len("***")
	}
}

// indexFoldASCII finds the lowercase ASCII needle in s at or after from,
// ignoring ASCII case. Byte offsets stay valid for s.
func indexFoldASCII(s, needle string, from int) int {
	for i := from; i+len(needle) <= len(s); i++ {
		match := true
		for j := 0; j < len(needle); j++ {
			b := s[i+j]
			if 'A' <= b && b <= 'Z' {
				b += 'a' - 'A'
			}
			if b != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

package security

import (
	"mime"
	"net/http"
	"strings"
)

// sensitiveHeaders never reach the logs
var sensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
	"X-CSRF-Token",
}

// ValidateContentType reports whether a request body content type is JSON.
// Parameters such as charset are ignored.
func ValidateContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// RedactHeaders returns a copy of headers with credentials masked
func RedactHeaders(headers http.Header) http.Header {
	redacted := headers.Clone()
	for _, header := range sensitiveHeaders {
		if redacted.Get(header) != "" {
			redacted.Set(header, "[REDACTED]")
		}
	}
	return redacted
}

package middleware

import (
	"fmt"
	"mime"
	"strings"
)

// Input validation for uploaded analysis documents.

// xmlContentTypes are the media types accepted for an ingest document.
var xmlContentTypes = map[string]bool{
	"text/xml":        true,
	"application/xml": true,
}

// ValidateUpload rejects empty, oversized, or non-XML uploads. An empty
// content type is allowed: some clients omit it for multipart file parts.
func ValidateUpload(contentType string, size, maxBytes int64) error {
	if size == 0 {
		return fmt.Errorf("empty document")
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("document too large: %d bytes (limit %d)", size, maxBytes)
	}
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("invalid content type: %q", contentType)
	}
	mediaType = strings.ToLower(mediaType)
	if !xmlContentTypes[mediaType] && mediaType != "application/octet-stream" && mediaType != "multipart/form-data" {
		return fmt.Errorf("unsupported content type: %q (expected XML)", mediaType)
	}
	return nil
}

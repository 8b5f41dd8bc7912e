// File: internal/domain/image.go
package domain

import "strings"

// ChatImage is an image attached to a message. Data holds the encoded bytes,
// either as a data URI or as a bare base64 payload. Immutable once attached.
type ChatImage struct {
	ID       string `json:"id"`
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
	Name     string `json:"name,omitempty"`
}

// Payload extracts the wire form of the image: a short format name ("png",
// "jpeg", ...) and the raw base64 bytes, stripped of any data URI prefix.
func (img ChatImage) Payload() (format, data string) {
	data = img.Data
	mime := img.MimeType

	if strings.HasPrefix(data, "data:") {
		rest := strings.TrimPrefix(data, "data:")
		if idx := strings.Index(rest, ","); idx >= 0 {
			header := rest[:idx]
			data = rest[idx+1:]
			if m, _, _ := strings.Cut(header, ";"); mime == "" {
				mime = m
			}
		}
	}

	format = mime
	if idx := strings.Index(format, "/"); idx >= 0 {
		format = format[idx+1:]
	}
	if format == "" {
		format = "png"
	}
	return format, data
}

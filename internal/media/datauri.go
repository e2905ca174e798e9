// Package media provides helpers for the base64 data-URI convention used to move
// audio between the browser, this service, and the AI providers.
package media

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURIPrefix is the scheme prefix of an RFC 2397 data URI.
const DataURIPrefix = "data:"

// ParseDataURI decodes a `data:<mimetype>;base64,<payload>` string into its
// MIME type and raw bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, DataURIPrefix) {
		return "", nil, fmt.Errorf("not a data URI")
	}

	rest := strings.TrimPrefix(uri, DataURIPrefix)
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return "", nil, fmt.Errorf("malformed data URI: missing payload separator")
	}

	meta := rest[:comma]
	payload := rest[comma+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding: %q", meta)
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		return "", nil, fmt.Errorf("malformed data URI: missing MIME type")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	return mimeType, data, nil
}

// FormatDataURI encodes raw bytes as a `data:<mimetype>;base64,<payload>` string.
func FormatDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

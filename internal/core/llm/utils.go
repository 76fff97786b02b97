package llm

import (
	"encoding/base64"
	"time"
)

// DataURL inlines an image for chat APIs that accept image URLs.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ElapsedMS is the log attribute value for a call that started at start.
func ElapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

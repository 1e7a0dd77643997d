package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs any close error at warn level instead of
// returning it. Intended for deferred response-body cleanup where a close
// failure must not override the function's primary error.
//
//	defer utils.CloseWithLog(resp.Body)
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}

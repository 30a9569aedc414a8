package util

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffMIME detects the content type from the leading bytes of a file.
func SniffMIME(b []byte) string {
	if len(b) == 0 {
		return "application/octet-stream"
	}
	return mimetype.Detect(b).String()
}

// SniffMIMEFile is SniffMIME for a file on disk.
func SniffMIMEFile(p string) string {
	mt, err := mimetype.DetectFile(p)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}

// IsAudioMIME reports whether m is an audio or audio-in-video container type.
func IsAudioMIME(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	return strings.HasPrefix(m, "audio/") || strings.HasPrefix(m, "video/")
}

// BaseName returns the last path element of a file name or URL path.
func BaseName(s string) string {
	return path.Base(strings.ReplaceAll(s, `\`, "/"))
}

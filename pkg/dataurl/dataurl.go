// Package dataurl encodes and decodes base64 data URLs (RFC 2397), the
// inline format used to carry product images between surfaces and the
// tagging model.
package dataurl

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

const scheme = "data:"

// Encode renders raw bytes as a base64 data URL with the given mime type.
func Encode(mimeType string, data []byte) string {
	return scheme + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EncodeFile reads a file and encodes it as a data URL, sniffing the mime
// type from the content.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	return Encode(http.DetectContentType(data), data), nil
}

// Decode splits a data URL into its mime type and raw bytes. Only base64
// payloads are supported.
func Decode(s string) (mimeType string, data []byte, err error) {
	if !strings.HasPrefix(s, scheme) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, scheme), ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing payload")
	}
	mimeType = meta
	encoding := ""
	if i := strings.LastIndexByte(meta, ';'); i >= 0 {
		mimeType, encoding = meta[:i], meta[i+1:]
	}
	if encoding != "base64" {
		return "", nil, fmt.Errorf("unsupported data URL encoding %q", encoding)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return mimeType, data, nil
}

// IsDataURL reports whether s uses the data scheme.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, scheme)
}

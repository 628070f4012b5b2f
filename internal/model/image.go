package model

import (
	"encoding/base64"
	"strings"
)

// ComposeImage rebuilds the public image string from its stored parts.
// An asset without an image yields the empty string.
func ComposeImage(imageType string, data []byte) string {
	if imageType == "" {
		return ""
	}
	return imageType + "," + base64.StdEncoding.EncodeToString(data)
}

// SplitImage decomposes a composed image string into the MIME prefix and
// the raw bytes. The expected shape is "<type>,<base64 payload>"; anything
// else is a validation error. An empty input clears both parts.
func SplitImage(image string) (imageType string, data []byte, err error) {
	if image == "" {
		return "", nil, nil
	}
	idx := strings.Index(image, ",")
	if idx < 0 {
		return "", nil, &ValidationError{Field: "image", Msg: "must be a '<type>,<base64>' string"}
	}
	raw, decErr := base64.StdEncoding.DecodeString(image[idx+1:])
	if decErr != nil {
		return "", nil, &ValidationError{Field: "image", Msg: "payload is not valid base64"}
	}
	return image[:idx], raw, nil
}

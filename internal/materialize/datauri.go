package materialize

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const defaultContentType = "image/png"

// EncodeDataURI packs raw image bytes and their content type into one
// self-contained string of the form data:<content-type>;base64,<bytes>.
func EncodeDataURI(contentType string, data []byte) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	// Strip parameters like "; charset=..." so round-trips stay clean.
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI inverts EncodeDataURI, returning the content type and the
// original bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	contentType, encoded := strings.CutSuffix(meta, ";base64")
	if !encoded {
		return "", nil, errors.New("data URI is not base64 encoded")
	}
	if contentType == "" {
		contentType = defaultContentType
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return contentType, data, nil
}

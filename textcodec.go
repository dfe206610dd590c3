package lakegate

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText reads r to the end and decodes it as UTF-8 text. A leading byte
// order mark is dropped and invalid byte sequences become U+FFFD, so binary
// payloads are not preserved.
func DecodeText(r io.Reader) (string, error) {
	b, err := io.ReadAll(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(b), nil
}

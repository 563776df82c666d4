package textcodec

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DescriptionEncoder escapes group descriptions for the destination store.
// Descriptions stay UTF-8: the destination connection has a UTF8 client
// encoding and rejects any other byte sequence.
type DescriptionEncoder struct {
	quoting Quoting
}

func NewDescriptionEncoder(quoting Quoting) *DescriptionEncoder {
	return &DescriptionEncoder{quoting: quoting}
}

func (e *DescriptionEncoder) Encode(text string) (string, error) {
	return e.quoting.Escape(text), nil
}

// FieldNormalizer cleans text columns read from the source roster.
type FieldNormalizer struct {
	charset Charset
}

func NewFieldNormalizer(charset Charset) *FieldNormalizer {
	return &FieldNormalizer{charset: charset}
}

func (n *FieldNormalizer) Normalize(text string) (string, error) {
	decoded, err := n.charset.Decode(text)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(strings.TrimSpace(decoded)), nil
}

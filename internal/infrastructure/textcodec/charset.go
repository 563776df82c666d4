package textcodec

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	ErrUnknownCharset     = errors.New("unknown charset")
	ErrUnsupportedCharset = errors.New("unsupported charset")
	ErrUnknownQuoting     = errors.New("unknown quoting style")
)

// Charset decodes text held in a named character set. The zero value is UTF-8.
type Charset struct {
	name string
	enc  encoding.Encoding
}

func LookupCharset(name string) (Charset, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return Charset{name: "utf-8"}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return Charset{}, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return Charset{name: name, enc: enc}, nil
}

func (c Charset) Name() string {
	if c.name == "" {
		return "utf-8"
	}
	return c.name
}

func (c Charset) IsUTF8() bool {
	return c.enc == nil
}

// Decode turns text held in this charset into UTF-8.
func (c Charset) Decode(text string) (string, error) {
	if c.IsUTF8() {
		return text, nil
	}
	out, err := c.enc.NewDecoder().String(text)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return out, nil
}

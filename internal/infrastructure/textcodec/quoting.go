package textcodec

import (
	"fmt"
	"strings"
)

// Quoting selects how text is escaped before it is stored.
type Quoting string

const (
	QuotingNone      Quoting = "none"
	QuotingStandard  Quoting = "standard"
	QuotingBackslash Quoting = "backslash"
)

var (
	standardReplacer  = strings.NewReplacer("'", "''")
	backslashReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`, "\x00", `\0`)
)

func ParseQuoting(value string) (Quoting, error) {
	switch q := Quoting(strings.ToLower(strings.TrimSpace(value))); q {
	case "":
		return QuotingNone, nil
	case QuotingNone, QuotingStandard, QuotingBackslash:
		return q, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQuoting, value)
	}
}

func (q Quoting) Escape(text string) string {
	switch q {
	case QuotingStandard:
		return standardReplacer.Replace(text)
	case QuotingBackslash:
		return backslashReplacer.Replace(text)
	default:
		return text
	}
}

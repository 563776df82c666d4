package source

import (
	"strings"

	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/textcodec"
)

// rawServerEncoding is the one server encoding PostgreSQL never converts to
// the UTF8 client encoding pgx connects with. Stored bytes come back as is.
const rawServerEncoding = "SQL_ASCII"

// NormalizerFor picks the field normalizer for a source server. The roster
// charset only applies when the server returns raw bytes; any other server
// has already transcoded the text to UTF-8.
func NormalizerFor(serverEncoding string, charset textcodec.Charset) *textcodec.FieldNormalizer {
	if strings.EqualFold(strings.TrimSpace(serverEncoding), rawServerEncoding) {
		return textcodec.NewFieldNormalizer(charset)
	}
	return textcodec.NewFieldNormalizer(textcodec.Charset{})
}

package textcodec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/textcodec"
)

func TestQuotingEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quoting textcodec.Quoting
		in      string
		want    string
	}{
		{textcodec.QuotingNone, `L'atelier "A"`, `L'atelier "A"`},
		{textcodec.QuotingStandard, `L'atelier d'été`, `L''atelier d''été`},
		{textcodec.QuotingBackslash, "a\\b'c\"d\x00", `a\\b\'c\"d\0`},
	}

	for _, tt := range tests {
		t.Run(string(tt.quoting), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.quoting.Escape(tt.in))
		})
	}
}

func TestParseQuoting(t *testing.T) {
	t.Parallel()

	q, err := textcodec.ParseQuoting(" Standard ")
	require.NoError(t, err)
	assert.Equal(t, textcodec.QuotingStandard, q)

	q, err = textcodec.ParseQuoting("")
	require.NoError(t, err)
	assert.Equal(t, textcodec.QuotingNone, q)

	_, err = textcodec.ParseQuoting("sybase-ish")
	assert.True(t, errors.Is(err, textcodec.ErrUnknownQuoting))
}

func TestLookupCharset(t *testing.T) {
	t.Parallel()

	utf8, err := textcodec.LookupCharset("UTF-8")
	require.NoError(t, err)
	assert.True(t, utf8.IsUTF8())

	latin1, err := textcodec.LookupCharset("ISO-8859-1")
	require.NoError(t, err)
	assert.False(t, latin1.IsUTF8())

	_, err = textcodec.LookupCharset("klingon-8")
	assert.ErrorIs(t, err, textcodec.ErrUnknownCharset)
}

func TestCharsetDecodeLatin1(t *testing.T) {
	t.Parallel()

	latin1, err := textcodec.LookupCharset("ISO-8859-1")
	require.NoError(t, err)

	decoded, err := latin1.Decode("\xe9t\xe9")
	require.NoError(t, err)
	assert.Equal(t, "été", decoded)
}

func TestDescriptionEncoderKeepsUTF8(t *testing.T) {
	t.Parallel()

	enc := textcodec.NewDescriptionEncoder(textcodec.QuotingNone)

	out, err := enc.Encode("Module 1 - Mécanique")
	require.NoError(t, err)
	assert.Equal(t, "Module 1 - Mécanique", out)
}

func TestDescriptionEncoderEscapes(t *testing.T) {
	t.Parallel()

	enc := textcodec.NewDescriptionEncoder(textcodec.QuotingStandard)

	out, err := enc.Encode("d'été")
	require.NoError(t, err)
	assert.Equal(t, "d''été", out)
}

func TestFieldNormalizer(t *testing.T) {
	t.Parallel()

	n := textcodec.NewFieldNormalizer(textcodec.Charset{})
	out, err := n.Normalize("  Ce\u0301line \t")
	require.NoError(t, err)
	assert.Equal(t, "C\u00e9line", out)

	latin1, err := textcodec.LookupCharset("ISO-8859-1")
	require.NoError(t, err)
	out, err = textcodec.NewFieldNormalizer(latin1).Normalize("M\xe9canique ")
	require.NoError(t, err)
	assert.Equal(t, "Mécanique", out)
}

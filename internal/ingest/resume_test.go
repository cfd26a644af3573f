package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token := ResumeToken{VideoID: "dQw4w9WgXcQ", PageToken: "QURTSl9p"}
	parsed, err := ParseResumeToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, parsed)
}

func TestResumeTokenEmptyPage(t *testing.T) {
	t.Parallel()

	parsed, err := ParseResumeToken("dQw4w9WgXcQ:")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", parsed.VideoID)
	assert.Empty(t, parsed.PageToken)
}

func TestParseResumeTokenMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "novideotoken", ":page"} {
		_, err := ParseResumeToken(s)
		assert.Error(t, err, s)
	}
}

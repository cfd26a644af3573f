package ingest

import (
	"fmt"
	"strings"
)

// String serializes the token as "<videoID>:<pageToken>". Page tokens issued
// by the upstream API never contain a colon.
func (t ResumeToken) String() string {
	return t.VideoID + ":" + t.PageToken
}

// ParseResumeToken reverses String.
func ParseResumeToken(s string) (ResumeToken, error) {
	videoID, pageToken, ok := strings.Cut(s, ":")
	if !ok || videoID == "" {
		return ResumeToken{}, fmt.Errorf("malformed resume token %q", s)
	}
	return ResumeToken{VideoID: videoID, PageToken: pageToken}, nil
}

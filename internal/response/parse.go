package response

import (
	"regexp"
	"strings"
)

// UpdatedMessage is shown when the assistant sent a payload with no prose.
const UpdatedMessage = "旅程を更新しました。"

var newlinesRe = regexp.MustCompile(`\n{3,}`)

// Parse splits raw assistant output into the user-facing message and the
// structured payload. The first json-tagged fence counts even when
// malformed: it is stripped from the message and yields a nil payload. A
// bare fence counts only when its body parses as a payload; any other
// fence stays in the message untouched. When a payload parses but no
// prose surrounds it, the message falls back to UpdatedMessage.
func Parse(raw string) (string, *ItineraryPayload) {
	pos := 0
	for {
		f, ok := nextFence(raw, pos)
		if !ok {
			return tidyMessage(raw), nil
		}
		if stripFence(f) {
			message := tidyMessage(raw[:f.start] + raw[f.end:])
			payload, ok := fencePayload(f)
			if !ok {
				return message, nil
			}
			if message == "" {
				message = UpdatedMessage
			}
			return message, payload
		}
		pos = f.end
	}
}

// tidyMessage trims the message and collapses runs of blank lines left
// behind by a stripped payload block.
func tidyMessage(s string) string {
	s = newlinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

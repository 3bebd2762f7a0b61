package response

import (
	"encoding/json"
	"strings"
)

const fenceMarker = "```"

// fenceBlock is one complete triple-backtick block inside assistant text.
type fenceBlock struct {
	tag   string // info string after the opening marker, "" for a bare fence
	body  string
	start int // offset of the opening marker
	end   int // offset just past the closing marker
}

// nextFence returns the first complete fenced block at or after pos. A
// fence whose closing marker has not arrived yet reports not-ok.
func nextFence(text string, pos int) (fenceBlock, bool) {
	open := strings.Index(text[pos:], fenceMarker)
	if open < 0 {
		return fenceBlock{}, false
	}
	start := pos + open
	tagEnd := start + len(fenceMarker)
	for tagEnd < len(text) && isTagByte(text[tagEnd]) {
		tagEnd++
	}
	closing := strings.Index(text[tagEnd:], fenceMarker)
	if closing < 0 {
		return fenceBlock{}, false
	}
	return fenceBlock{
		tag:   text[start+len(fenceMarker) : tagEnd],
		body:  text[tagEnd : tagEnd+closing],
		start: start,
		end:   tagEnd + closing + len(fenceMarker),
	}, true
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// fencePayload extracts the itinerary payload a fence carries, if any. A
// json-tagged fence is always a payload slot, so a malformed body reports
// not-ok without falling through to prose. A bare fence counts only when
// its body parses and sets at least one field, which lets the assistant
// fence lists or other verbatim text without it being eaten.
func fencePayload(f fenceBlock) (*ItineraryPayload, bool) {
	if f.tag != "json" && f.tag != "" {
		return nil, false
	}
	var payload ItineraryPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(f.body)), &payload); err != nil {
		return nil, false
	}
	if f.tag == "" && payload.isEmpty() {
		return nil, false
	}
	return &payload, true
}

// stripFence reports whether the fence belongs out of the user-facing
// message: every json-tagged fence, plus bare fences carrying a payload.
func stripFence(f fenceBlock) bool {
	if f.tag == "json" {
		return true
	}
	_, ok := fencePayload(f)
	return ok
}

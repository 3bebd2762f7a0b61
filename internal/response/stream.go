package response

import "strings"

// Accumulator assembles streamed assistant output chunk by chunk and
// surfaces each fenced payload exactly once, as soon as its closing fence
// arrives. Partial state is simply dropped on cancellation via Discard.
type Accumulator struct {
	buf      strings.Builder
	scanFrom int
}

// Feed appends a chunk and returns any payloads whose fences completed
// with this chunk, in order. Malformed and non-payload blocks are skipped
// and never re-reported.
func (a *Accumulator) Feed(chunk string) []*ItineraryPayload {
	a.buf.WriteString(chunk)
	text := a.buf.String()

	var done []*ItineraryPayload
	for {
		f, ok := nextFence(text, a.scanFrom)
		if !ok {
			break
		}
		a.scanFrom = f.end
		if payload, ok := fencePayload(f); ok {
			done = append(done, payload)
		}
	}
	return done
}

// Raw returns everything fed so far.
func (a *Accumulator) Raw() string {
	return a.buf.String()
}

// Message returns the user-facing prose accumulated so far with payload
// blocks stripped. Non-payload fences stay in place; a fence still being
// received is hidden until its closing marker arrives, since it may turn
// out to be a payload. Safe to call mid-stream for live display.
func (a *Accumulator) Message() string {
	text := a.buf.String()

	var b strings.Builder
	pos := 0
	for {
		f, ok := nextFence(text, pos)
		if !ok {
			break
		}
		b.WriteString(text[pos:f.start])
		if !stripFence(f) {
			b.WriteString(text[f.start:f.end])
		}
		pos = f.end
	}
	rest := text[pos:]
	if open := strings.Index(rest, fenceMarker); open >= 0 {
		rest = rest[:open]
	}
	b.WriteString(rest)
	return tidyMessage(b.String())
}

// Discard drops all accumulated state. Used when a stream is canceled so
// a half-received payload can never be merged.
func (a *Accumulator) Discard() {
	a.buf.Reset()
	a.scanFrom = 0
}

package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/errors"
)

func collect(t *testing.T, s Stream) string {
	t.Helper()
	var b strings.Builder
	for s.Next() {
		b.WriteString(s.Text())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	return b.String()
}

func TestScriptedReplaysChunks(t *testing.T) {
	p := NewScripted()
	p.Enqueue("こんに", "ちは")

	stream, err := p.Stream(context.Background(), Request{System: "sys"})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	if got := collect(t, stream); got != "こんにちは" {
		t.Errorf("streamed text = %q", got)
	}

	reqs := p.Requests()
	if len(reqs) != 1 || reqs[0].System != "sys" {
		t.Errorf("recorded requests = %+v", reqs)
	}
}

func TestScriptedRepliesInOrder(t *testing.T) {
	p := NewScripted()
	p.Enqueue("one")
	p.Enqueue("two")

	for _, want := range []string{"one", "two"} {
		stream, err := p.Stream(context.Background(), Request{
			Turns: []conversation.Turn{{Role: conversation.RoleUser, Content: "hi"}},
		})
		if err != nil {
			t.Fatalf("Stream: %v", err)
		}
		if got := collect(t, stream); got != want {
			t.Errorf("reply = %q, want %q", got, want)
		}
	}
}

func TestScriptedFailWith(t *testing.T) {
	p := NewScripted()
	p.FailWith(errors.NewProviderError("down", errors.ErrProviderUnavailable))

	if _, err := p.Stream(context.Background(), Request{}); !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Errorf("err = %v", err)
	}

	// The failure is one-shot; the next call behaves normally.
	p.Enqueue("ok")
	stream, err := p.Stream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Stream after failure: %v", err)
	}
	if got := collect(t, stream); got != "ok" {
		t.Errorf("reply = %q", got)
	}
}

func TestScriptedCancellation(t *testing.T) {
	p := NewScripted()
	p.Enqueue("a", "b", "c")

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := p.Stream(ctx, Request{})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if !stream.Next() {
		t.Fatal("first chunk should arrive")
	}
	cancel()
	if stream.Next() {
		t.Error("canceled stream must stop")
	}
	if !errors.Is(stream.Err(), errors.ErrStreamCanceled) {
		t.Errorf("err = %v, want stream canceled", stream.Err())
	}
}

func TestNoReplyQueued(t *testing.T) {
	p := NewScripted()
	if _, err := p.Stream(context.Background(), Request{}); err == nil {
		t.Error("expected an error with no reply queued")
	}
}

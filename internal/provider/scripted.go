package provider

import (
	"context"
	"sync"

	"github.com/yuta-hayashi/tabiplan/internal/errors"
)

// Scripted is a Provider that replays queued responses. It backs tests and
// offline demos; no network is involved.
type Scripted struct {
	mu       sync.Mutex
	replies  [][]string
	requests []Request
	failWith error
}

// NewScripted creates an empty scripted provider. Queue responses with
// Enqueue before streaming.
func NewScripted() *Scripted {
	return &Scripted{}
}

// Enqueue adds one response, delivered as the given chunks in order.
func (s *Scripted) Enqueue(chunks ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, chunks)
}

// FailWith makes the next Stream call return err instead of a response.
func (s *Scripted) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Requests returns every request seen so far, for assertions.
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Name implements Provider.
func (s *Scripted) Name() string { return "scripted" }

// Stream implements Provider.
func (s *Scripted) Stream(ctx context.Context, req Request) (Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)

	if s.failWith != nil {
		err := s.failWith
		s.failWith = nil
		return nil, err
	}
	if len(s.replies) == 0 {
		return nil, errors.NewProviderError("no scripted reply queued", errors.ErrOperationFailed).
			WithProvider("scripted")
	}

	chunks := s.replies[0]
	s.replies = s.replies[1:]
	return &scriptedStream{ctx: ctx, chunks: chunks}, nil
}

type scriptedStream struct {
	ctx    context.Context
	chunks []string
	pos    int
	err    error
}

func (s *scriptedStream) Next() bool {
	if s.err != nil || s.pos >= len(s.chunks) {
		return false
	}
	select {
	case <-s.ctx.Done():
		s.err = errors.NewProviderError("stream canceled", errors.ErrStreamCanceled).
			WithProvider("scripted")
		return false
	default:
	}
	s.pos++
	return true
}

func (s *scriptedStream) Text() string {
	if s.pos == 0 || s.pos > len(s.chunks) {
		return ""
	}
	return s.chunks[s.pos-1]
}

func (s *scriptedStream) Err() error { return s.err }

func (s *scriptedStream) Close() error { return nil }
